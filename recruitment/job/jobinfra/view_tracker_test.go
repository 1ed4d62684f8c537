package jobinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/job"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordViewFirstTimeIncrements(t *testing.T) {
	db, mock := newMockDB(t)
	tracker := NewPostgresViewTracker(db)
	viewer := kernel.UserID("u-1")
	at := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_views").
		WithArgs(sqlmock.AnyArg(), "j-1", "u-1", "10.0.0.1", "curl", at).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE jobs SET views_count = views_count \+ 1 WHERE id = \$1`).
		WithArgs("j-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counted, err := tracker.RecordView(context.Background(), job.View{
		JobID: "j-1", UserID: &viewer, IPAddress: "10.0.0.1", UserAgent: "curl", ViewedAt: at,
	})
	require.NoError(t, err)
	assert.True(t, counted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordViewRepeatDoesNotIncrement(t *testing.T) {
	db, mock := newMockDB(t)
	tracker := NewPostgresViewTracker(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_views").
		WithArgs(sqlmock.AnyArg(), "j-1", nil, "10.0.0.1", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	counted, err := tracker.RecordView(context.Background(), job.View{
		JobID: "j-1", IPAddress: "10.0.0.1", ViewedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, counted)
	require.NoError(t, mock.ExpectationsWereMet())
}

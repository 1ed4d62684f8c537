package alertinfra

import (
	"context"
	"testing"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/recruitment/alert"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

var alertColumnNames = []string{
	"id", "user_id", "name", "keywords", "locations", "experience_levels", "salary_min",
	"is_remote", "frequency", "is_active", "created_at", "last_sent",
}

func newAlert() *alert.JobAlert {
	return &alert.JobAlert{
		ID:          "a-1",
		UserID:      "u-1",
		Name:        "Go jobs",
		Frequency:   alert.FrequencyDaily,
		IsActive:    true,
		CreatedAt:   time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC),
		CategoryIDs: []kernel.CategoryID{"c-1", "c-2"},
	}
}

func TestCreateLinksCategoriesInTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_alerts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO job_alert_categories .* unnest\(\$2::text\[\]\)`).
		WithArgs("a-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewPostgresAlertRepository(db).Create(context.Background(), newAlert()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownCategoryRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO job_alerts").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO job_alert_categories").
		WillReturnError(&pq.Error{Code: "23503", Constraint: "job_alert_categories_category_id_fkey"})
	mock.ExpectRollback()

	err := NewPostgresAlertRepository(db).Create(context.Background(), newAlert())
	assert.ErrorIs(t, err, alert.ErrInvalidReference())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateReplacesLinks(t *testing.T) {
	db, mock := newMockDB(t)
	a := newAlert()
	a.CategoryIDs = nil
	a.JobTypeIDs = []kernel.JobTypeID{"jt-1"}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE job_alerts SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM job_alert_categories WHERE job_alert_id = \$1`).WithArgs("a-1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM job_alert_job_types WHERE job_alert_id = \$1`).WithArgs("a-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO job_alert_job_types").WithArgs("a-1", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewPostgresAlertRepository(db).Update(context.Background(), a))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailsLoadsLinks(t *testing.T) {
	db, mock := newMockDB(t)
	created := time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM job_alerts WHERE id = \$1`).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(alertColumnNames).AddRow(
			"a-1", "u-1", "Go jobs", "golang", nil, "senior", "90000.00",
			true, "weekly", true, created, nil))
	mock.ExpectQuery(`FROM job_alert_categories l`).
		WillReturnRows(sqlmock.NewRows([]string{"job_alert_id", "id", "name"}).
			AddRow("a-1", "c-1", "Engineering"))
	mock.ExpectQuery(`FROM job_alert_job_types l`).
		WillReturnRows(sqlmock.NewRows([]string{"job_alert_id", "id", "name"}))

	d, err := NewPostgresAlertRepository(db).GetDetails(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, []alert.Ref{{ID: "c-1", Name: "Engineering"}}, d.Categories)
	assert.Equal(t, []kernel.CategoryID{"c-1"}, d.CategoryIDs)
	assert.Empty(t, d.JobTypes)
	assert.Equal(t, "90000", d.SalaryMin.Decimal.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDetailsNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FROM job_alerts WHERE id = \$1`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(alertColumnNames))

	_, err := NewPostgresAlertRepository(db).GetDetails(context.Background(), "nope")
	assert.ErrorIs(t, err, alert.ErrAlertNotFound())
}

package fsxlocal

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/fsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFileSystemRoundTrip(t *testing.T) {
	ctx := context.Background()
	lfs, err := NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	p := lfs.Join("resumes", "app-1", "cv.pdf")
	require.NoError(t, lfs.WriteFileStream(ctx, p, strings.NewReader("%PDF-1.4")))

	ok, err := lfs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := lfs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	rc, err := lfs.ReadFileStream(ctx, p)
	require.NoError(t, err)
	streamed, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, data, streamed)

	require.NoError(t, lfs.DeleteFile(ctx, p))
	require.NoError(t, lfs.DeleteFile(ctx, p))

	_, err = lfs.ReadFile(ctx, p)
	assert.ErrorIs(t, err, fsx.ErrFileNotFound())
}

func TestLocalFileSystemRejectsTraversal(t *testing.T) {
	lfs, err := NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	err = lfs.WriteFile(context.Background(), "../outside.txt", []byte("x"))
	assert.True(t, errx.IsType(err, errx.TypeValidation))
}

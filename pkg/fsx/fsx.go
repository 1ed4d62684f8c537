package fsx

import (
	"context"
	"io"
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// FileReader reads blobs by path
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter stores and removes blobs by path
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem is the blob store used for resumes and company logos
type FileSystem interface {
	FileReader
	FileWriter
	Join(elem ...string) string
	Exists(ctx context.Context, path string) (bool, error)
}

var ErrRegistry = errx.NewRegistry("FILE")

var (
	CodeFileNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "File not found")
	CodeInvalidPath  = ErrRegistry.Register("INVALID_PATH", errx.TypeValidation, http.StatusBadRequest, "Invalid file path")
	CodeStorage      = ErrRegistry.Register("STORAGE_ERROR", errx.TypeExternal, http.StatusBadGateway, "File storage unavailable")
)

func ErrFileNotFound() *errx.Error {
	return ErrRegistry.New(CodeFileNotFound)
}

func ErrInvalidPath() *errx.Error {
	return ErrRegistry.New(CodeInvalidPath)
}

func ErrStorage(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStorage, cause)
}

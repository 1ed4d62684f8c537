package savedjob

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("SAVED_JOB")

// Error codes
var (
	CodeSavedJobNotFound = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Saved job not found")
	CodeAlreadySaved     = ErrRegistry.Register("ALREADY_SAVED", errx.TypeConflict, http.StatusConflict, "Job is already saved")
	CodeJobNotFound      = ErrRegistry.Register("JOB_NOT_FOUND", errx.TypeValidation, http.StatusBadRequest, "Job does not exist")
	CodeNotOwner         = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Saved job belongs to another user")
)

// Helper functions
func ErrSavedJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeSavedJobNotFound)
}

func ErrAlreadySaved() *errx.Error {
	return ErrRegistry.New(CodeAlreadySaved)
}

func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

package alert

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB_ALERT")

// Error codes
var (
	CodeAlertNotFound    = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job alert not found")
	CodeNotOwner         = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Job alert belongs to another user")
	CodeInvalidReference = ErrRegistry.Register("INVALID_REFERENCE", errx.TypeValidation, http.StatusBadRequest, "Unknown category or job type")
)

// Helper functions
func ErrAlertNotFound() *errx.Error {
	return ErrRegistry.New(CodeAlertNotFound)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidReference() *errx.Error {
	return ErrRegistry.New(CodeInvalidReference)
}

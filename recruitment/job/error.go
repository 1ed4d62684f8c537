package job

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("JOB")

// Error codes
var (
	CodeJobNotFound        = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job not found")
	CodeSlugTaken          = ErrRegistry.Register("SLUG_TAKEN", errx.TypeConflict, http.StatusConflict, "A job with this slug already exists")
	CodeInvalidSalaryRange = ErrRegistry.Register("INVALID_SALARY_RANGE", errx.TypeValidation, http.StatusBadRequest, "Minimum salary cannot be greater than maximum salary")
	CodeExpiryInPast       = ErrRegistry.Register("EXPIRY_IN_PAST", errx.TypeValidation, http.StatusBadRequest, "Expiry date must be in the future")
	CodeInvalidFilter      = ErrRegistry.Register("INVALID_FILTER", errx.TypeValidation, http.StatusBadRequest, "Invalid filter parameters")
	CodeInvalidReference   = ErrRegistry.Register("INVALID_REFERENCE", errx.TypeValidation, http.StatusBadRequest, "Referenced company, category or job type does not exist")
	CodeNotOwner           = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Only the poster or staff can modify this job")
)

// Helper functions
func ErrJobNotFound() *errx.Error {
	return ErrRegistry.New(CodeJobNotFound)
}

func ErrSlugTaken() *errx.Error {
	return ErrRegistry.New(CodeSlugTaken)
}

func ErrInvalidSalaryRange() *errx.Error {
	return ErrRegistry.New(CodeInvalidSalaryRange)
}

func ErrExpiryInPast() *errx.Error {
	return ErrRegistry.New(CodeExpiryInPast)
}

func ErrInvalidFilter() *errx.Error {
	return ErrRegistry.New(CodeInvalidFilter)
}

func ErrInvalidReference() *errx.Error {
	return ErrRegistry.New(CodeInvalidReference)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

package catalog

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CATALOG")

// Error codes
var (
	CodeCategoryNotFound = ErrRegistry.Register("CATEGORY_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Category not found")
	CodeJobTypeNotFound  = ErrRegistry.Register("JOB_TYPE_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Job type not found")
	CodeCompanyNotFound  = ErrRegistry.Register("COMPANY_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Company not found")
	CodeNameTaken        = ErrRegistry.Register("NAME_TAKEN", errx.TypeConflict, http.StatusConflict, "Name is already in use")
	CodeNameTooLong      = ErrRegistry.Register("NAME_TOO_LONG", errx.TypeValidation, http.StatusBadRequest, "Name is too long")
	CodeInvalidLogo      = ErrRegistry.Register("INVALID_LOGO", errx.TypeValidation, http.StatusBadRequest, "Logo must be a png, jpeg, gif or webp image")
	CodeLogoTooLarge     = ErrRegistry.Register("LOGO_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "Logo exceeds maximum allowed size")
)

// ErrNotFound returns the not-found error of a term kind
func ErrNotFound(kind Kind) *errx.Error {
	if kind == KindJobType {
		return ErrRegistry.New(CodeJobTypeNotFound)
	}
	return ErrRegistry.New(CodeCategoryNotFound)
}

func ErrCompanyNotFound() *errx.Error {
	return ErrRegistry.New(CodeCompanyNotFound)
}

func ErrNameTaken() *errx.Error {
	return ErrRegistry.New(CodeNameTaken)
}

func ErrNameTooLong() *errx.Error {
	return ErrRegistry.New(CodeNameTooLong)
}

func ErrInvalidLogo() *errx.Error {
	return ErrRegistry.New(CodeInvalidLogo)
}

func ErrLogoTooLarge() *errx.Error {
	return ErrRegistry.New(CodeLogoTooLarge)
}

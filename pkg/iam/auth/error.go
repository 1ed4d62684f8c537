package auth

import (
	"net/http"

	"github.com/Abraxas-365/jobboard/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeUnauthorized, http.StatusUnauthorized, "Invalid username or password")
	CodeMissingToken       = ErrRegistry.Register("MISSING_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Authentication credentials were not provided")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeUnauthorized, http.StatusUnauthorized, "Token is invalid or expired")
	CodeWrongTokenType     = ErrRegistry.Register("WRONG_TOKEN_TYPE", errx.TypeUnauthorized, http.StatusUnauthorized, "Token type is not valid for this operation")
)

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrMissingToken() *errx.Error {
	return ErrRegistry.New(CodeMissingToken)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrWrongTokenType() *errx.Error {
	return ErrRegistry.New(CodeWrongTokenType)
}

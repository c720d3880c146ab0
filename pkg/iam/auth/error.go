package auth

import (
	"net/http"

	"github.com/Abraxas-365/nerdyjobs/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("AUTH")

// Error codes
var (
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeValidation, http.StatusUnauthorized, "Invalid email or password")
	CodeInvalidToken       = ErrRegistry.Register("INVALID_TOKEN", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired token")
	CodeNotAuthorized      = ErrRegistry.Register("NOT_AUTHORIZED", errx.TypeAuthorization, http.StatusForbidden, "Not authorized")
	CodeTokenGeneration    = ErrRegistry.Register("TOKEN_GENERATION", errx.TypeInternal, http.StatusInternalServerError, "Failed to generate token")
)

func ErrInvalidCredentials() *errx.Error {
	return ErrRegistry.New(CodeInvalidCredentials)
}

func ErrInvalidToken() *errx.Error {
	return ErrRegistry.New(CodeInvalidToken)
}

func ErrNotAuthorized() *errx.Error {
	return ErrRegistry.New(CodeNotAuthorized)
}

func ErrTokenGeneration() *errx.Error {
	return ErrRegistry.New(CodeTokenGeneration)
}

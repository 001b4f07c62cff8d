package adapter

import "errors"

// Identity provider errors.
var (
	// ErrIdentityTokenInvalid is returned when an ID token is malformed, has a
	// bad signature or carries claims that do not match the project.
	ErrIdentityTokenInvalid = errors.New("identity token is invalid")

	// ErrIdentityProviderUnavailable is returned when the signing certificates
	// cannot be downloaded or decoded.
	ErrIdentityProviderUnavailable = errors.New("identity provider is unavailable")

	// ErrInvalidServiceKey is returned when the service account key is not
	// base64-encoded JSON or has no project_id.
	ErrInvalidServiceKey = errors.New("invalid identity service key")
)

// API client errors mapped from HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
)

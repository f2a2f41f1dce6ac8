package core

import (
	"errors"
	"net/http"

	"github.com/classlane/classlane/pkg/db"
	"github.com/classlane/classlane/pkg/tenant"
)

// HTTPError represents an HTTP error with status code and a stable machine
// readable key clients can switch on.
type HTTPError struct {
	Code int    // HTTP status code
	Key  string // stable error key (e.g. "not_found", "forbidden")
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Key
}

var (
	ErrBadRequest          = HTTPError{Code: http.StatusBadRequest, Key: "bad_request"}
	ErrUnauthorized        = HTTPError{Code: http.StatusUnauthorized, Key: "unauthorized"}
	ErrForbidden           = HTTPError{Code: http.StatusForbidden, Key: "forbidden"}
	ErrNotFound            = HTTPError{Code: http.StatusNotFound, Key: "not_found"}
	ErrConflict            = HTTPError{Code: http.StatusConflict, Key: "conflict"}
	ErrUnprocessableEntity = HTTPError{Code: http.StatusUnprocessableEntity, Key: "unprocessable_entity"}
	ErrInternalServerError = HTTPError{Code: http.StatusInternalServerError, Key: "internal_server_error"}
	ErrServiceUnavailable  = HTTPError{Code: http.StatusServiceUnavailable, Key: "service_unavailable"}
)

// NewHTTPError creates a custom HTTP error.
func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

// Translate maps service errors to HTTP errors at the response boundary.
// The isolation layer's taxonomy is preserved here:
//
//   - a lookup-store failure is 503, never a silent grant of access;
//   - a cross-tenant guard violation is 403, distinct from not-found,
//     because the caller has already proven the record exists;
//   - a row hidden by the automatic tenant filter is an ordinary 404, which
//     avoids confirming the record's existence in another tenant.
func Translate(err error) HTTPError {
	var httpErr HTTPError
	switch {
	case err == nil:
		return HTTPError{Code: http.StatusOK}
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, tenant.ErrLookupUnavailable):
		return ErrServiceUnavailable
	case errors.Is(err, tenant.ErrCrossTenantAccess),
		errors.Is(err, tenant.ErrNoIdentityInContext),
		errors.Is(err, tenant.ErrInactiveTenant):
		return ErrForbidden
	case errors.Is(err, tenant.ErrTenantNotFound), db.IsNotFoundError(err):
		return ErrNotFound
	case errors.Is(err, tenant.ErrInvalidIdentifier):
		return ErrBadRequest
	case db.IsDuplicateKeyError(err):
		return ErrConflict
	default:
		return ErrInternalServerError
	}
}

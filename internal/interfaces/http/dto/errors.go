package dto

import (
	"net/http"

	"github.com/Codesaur1618/Skandaenterpriese/internal/domain/shared"
)

// Error codes surfaced by the API. The ledger core speaks the shared.Code*
// family; the constants below alias those and add the codes minted at the
// interface layer itself (malformed requests, body caps, rate limits) and
// by the authentication flow.
const (
	ErrCodeValidation          = shared.CodeValidation
	ErrCodeDuplicateKey        = shared.CodeDuplicateKey
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeForbidden           = shared.CodeForbidden
	ErrCodeUnauthorized        = shared.CodeUnauthorized
	ErrCodeInvalidState        = shared.CodeInvalidState
	ErrCodeInvariantViolation  = shared.CodeInvariantViolation
	ErrCodeReferentialConflict = shared.CodeReferentialConflict
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
	ErrCodeInternal            = shared.CodeInternal
)

// Codes minted by the interface layer
const (
	// ErrCodeBadRequest is used when the request body or query cannot be bound
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeRequestTooLarge is used when the request body exceeds the cap
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeRateLimited is used when a client exhausts its request budget
	ErrCodeRateLimited = "RATE_LIMIT_EXCEEDED"
)

// Codes minted by the authentication flow. Values match what the identity
// services attach to their domain errors.
const (
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ACCOUNT_LOCKED"
	ErrCodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	ErrCodeTenantDisabled     = "TENANT_DISABLED"
	ErrCodeTokenExpired       = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeTokenRevoked       = "TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "TOKEN_MAX_REFRESH"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// Malformed input -> 400 Bad Request
	ErrCodeValidation: http.StatusBadRequest,
	ErrCodeBadRequest: http.StatusBadRequest,

	// Missing or dead credentials -> 401 Unauthorized
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,

	// Known caller, refused action -> 403 Forbidden
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountLocked:      http.StatusForbidden,
	ErrCodeAccountDeactivated: http.StatusForbidden,
	ErrCodeTenantDisabled:     http.StatusForbidden,

	ErrCodeNotFound: http.StatusNotFound,

	// Uniqueness, reference and version clashes -> 409 Conflict
	ErrCodeDuplicateKey:        http.StatusConflict,
	ErrCodeReferentialConflict: http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	// Well-formed but unprocessable -> 422
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeInvariantViolation: http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,

	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same domain error code.
// Lets errors.Is match any DomainError against its sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes recognized across the ledger core. The interface layer maps
// these to transport status codes.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeDuplicateKey        = "DUPLICATE_KEY"
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidState        = "INVALID_STATE"
	CodeInvariantViolation  = "INVARIANT_VIOLATION"
	CodeReferentialConflict = "REFERENTIAL_CONFLICT"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeInternal            = "INTERNAL_ERROR"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey        = NewDomainError(CodeDuplicateKey, "Resource with the same key already exists")
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidState        = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrInvariantViolation  = NewDomainError(CodeInvariantViolation, "Ledger invariant violated")
	ErrReferentialConflict = NewDomainError(CodeReferentialConflict, "Resource is referenced by other records")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
)

// NewValidationError creates a validation error with a specific message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewDuplicateKeyError creates a duplicate-key error with a specific message
func NewDuplicateKeyError(message string) *DomainError {
	return NewDomainError(CodeDuplicateKey, message)
}

// NewNotFoundError creates a not-found error with a specific message
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewForbiddenError creates a forbidden error with a specific message
func NewForbiddenError(message string) *DomainError {
	return NewDomainError(CodeForbidden, message)
}

// NewInvariantViolationError creates an invariant-violation error. These
// signal rejected over-payments or reconciliation bugs and are logged
// distinctly from ordinary validation failures.
func NewInvariantViolationError(message string) *DomainError {
	return NewDomainError(CodeInvariantViolation, message)
}

// NewReferentialConflictError creates a referential-conflict error
func NewReferentialConflictError(message string) *DomainError {
	return NewDomainError(CodeReferentialConflict, message)
}

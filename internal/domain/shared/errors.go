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

// Is reports whether target is a DomainError with the same code, so
// errors.Is(err, ErrNotFound) matches any not-found error regardless of message.
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

// Error codes
const (
	CodeNotFound      = "NOT_FOUND"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeValidation    = "VALIDATION_ERROR"
	CodeInvalidFilter = "INVALID_FILTER"
	CodeInvalidSort   = "INVALID_SORT"
	CodeInvalidPatch  = "INVALID_PATCH"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "No data found!")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized  = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrInvalidPage   = NewDomainError(CodeInvalidInput, "Page number invalid.")
	ErrInvalidSize   = NewDomainError(CodeInvalidInput, "Page size invalid.")
	ErrMismatchedID  = NewDomainError(CodeInvalidInput, "Mismatched Id")
	ErrPatchMissing  = NewDomainError(CodeInvalidPatch, "Patch document is missing.")
	ErrInvalidOrder  = NewDomainError(CodeInvalidSort, "Invalid sort order. Use 'asc' or 'desc'")
	ErrMalformedJSON = NewDomainError(CodeInvalidFilter, "Filters must be a JSON array of {PropertyName, Operator, Value}")
)

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewFilterError creates an error describing an unusable filter criterion
func NewFilterError(message string) *DomainError {
	return NewDomainError(CodeInvalidFilter, message)
}

// NewSortError creates an error describing an unusable sort field
func NewSortError(message string) *DomainError {
	return NewDomainError(CodeInvalidSort, message)
}

// NewPatchError creates an error describing a patch document that cannot be applied
func NewPatchError(message string) *DomainError {
	return NewDomainError(CodeInvalidPatch, message)
}

package dto

import (
	"net/http"
	"strings"

	"github.com/campus/backend/internal/domain/shared"
)

// Error codes returned in the error envelope. Domain error codes are used as-is.
const (
	ErrCodeInternal      = "INTERNAL_ERROR"
	ErrCodeNotFound      = shared.CodeNotFound
	ErrCodeInvalidInput  = shared.CodeInvalidInput
	ErrCodeValidation    = shared.CodeValidation
	ErrCodeInvalidFilter = shared.CodeInvalidFilter
	ErrCodeInvalidSort   = shared.CodeInvalidSort
	ErrCodeInvalidPatch  = shared.CodeInvalidPatch
	ErrCodeInvalidJSON   = "INVALID_JSON"
	ErrCodeUnauthorized  = shared.CodeUnauthorized
	ErrCodeTokenExpired  = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid  = "INVALID_TOKEN"
	ErrCodeTokenRevoked  = "TOKEN_REVOKED"
	ErrCodeForbidden     = shared.CodeForbidden
	ErrCodeRateLimited   = "RATE_LIMITED"
	ErrCodeTooLarge      = "PAYLOAD_TOO_LARGE"
	ErrCodeTimeout       = "REQUEST_TIMEOUT"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeInvalidInput:  http.StatusBadRequest,
	ErrCodeValidation:    http.StatusBadRequest,
	ErrCodeInvalidFilter: http.StatusBadRequest,
	ErrCodeInvalidSort:   http.StatusBadRequest,
	ErrCodeInvalidPatch:  http.StatusBadRequest,
	ErrCodeInvalidJSON:   http.StatusBadRequest,

	ErrCodeNotFound: http.StatusNotFound,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeTokenRevoked: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeRateLimited: http.StatusTooManyRequests,
	ErrCodeTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeTimeout:     http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// errorCodeAliases maps alternative spellings onto the codes above
var errorCodeAliases = map[string]string{
	"BAD_REQUEST":    ErrCodeInvalidInput,
	"INTERNAL":       ErrCodeInternal,
	"INVALID_TOKEN":  ErrCodeTokenInvalid,
	"TOO_MANY":       ErrCodeRateLimited,
	"UNPROCESSABLE":  ErrCodeValidation,
	"ALREADY_EXISTS": ErrCodeInvalidInput,
}

// NormalizeErrorCode upper-cases code, strips an "ERR_" prefix and resolves aliases.
// Unknown codes are returned in their cleaned form.
func NormalizeErrorCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	code = strings.TrimPrefix(code, "ERR_")
	if alias, ok := errorCodeAliases[code]; ok {
		return alias
	}
	return code
}

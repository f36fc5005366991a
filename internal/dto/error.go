package dto

import "github.com/SscSPs/empower_finance_app/internal/apperrors"

// Error kinds reported in ErrorResponse.Kind.
const (
	ErrorKindValidation   = "validation"
	ErrorKindInvalidRange = "invalid_range"
	ErrorKindNotFound     = "not_found"
	ErrorKindConflict     = "conflict"
	ErrorKindUnauthorized = "unauthorized"
	ErrorKindRateLimited  = "rate_limited"
	ErrorKindInternal     = "internal"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Kind   string                 `json:"kind"`
	Error  string                 `json:"error"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}

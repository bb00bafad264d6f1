package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation   = "ERR_VALIDATION"
	ErrCodeBadRequest   = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON  = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	ErrCodeNotFound            = "ERR_NOT_FOUND"
	ErrCodeSessionNotFound     = "ERR_SESSION_NOT_FOUND"
	ErrCodeAlreadyExists       = "ERR_ALREADY_EXISTS"
	ErrCodeConflict            = "ERR_CONFLICT"
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	ErrCodeInvalidState       = "ERR_INVALID_STATE"
	ErrCodeBusinessRule       = "ERR_BUSINESS_RULE"
	ErrCodeCustomerLocked     = "ERR_CUSTOMER_LOCKED"
	ErrCodeInvalidLineIndex   = "ERR_INVALID_LINE_INDEX"
	ErrCodeInvalidDocType     = "ERR_INVALID_DOCUMENT_TYPE"
	ErrCodeUnsupportedField   = "ERR_UNSUPPORTED_FIELD"
	ErrCodeRequestTooLarge    = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited        = "ERR_RATE_LIMITED"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeSessionNotFound:     http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	ErrCodeInvalidState:     http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:     http.StatusUnprocessableEntity,
	ErrCodeCustomerLocked:   http.StatusUnprocessableEntity,
	ErrCodeInvalidLineIndex: http.StatusBadRequest,
	ErrCodeInvalidDocType:   http.StatusBadRequest,
	ErrCodeUnsupportedField: http.StatusBadRequest,

	ErrCodeRequestTooLarge:    http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:        http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes.
// Field-level domain validation codes collapse to ERR_INVALID_INPUT.
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"SESSION_NOT_FOUND":     ErrCodeSessionNotFound,
	"ALREADY_EXISTS":        ErrCodeAlreadyExists,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"INVALID_STATE":         ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT":  ErrCodeConcurrencyConflict,
	"CUSTOMER_LOCKED":       ErrCodeCustomerLocked,
	"INVALID_LINE_INDEX":    ErrCodeInvalidLineIndex,
	"INVALID_DOCUMENT_TYPE": ErrCodeInvalidDocType,
	"UNSUPPORTED_FIELD":     ErrCodeUnsupportedField,
	"INVALID_CODE":          ErrCodeInvalidInput,
	"INVALID_NAME":          ErrCodeInvalidInput,
	"INVALID_NUMBER":        ErrCodeInvalidInput,
	"INVALID_COMPANY":       ErrCodeInvalidInput,
	"INVALID_CREDIT_LIMIT":  ErrCodeInvalidInput,
	"INVALID_LINE_FIELD":    ErrCodeInvalidInput,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"BAD_REQUEST":           ErrCodeBadRequest,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

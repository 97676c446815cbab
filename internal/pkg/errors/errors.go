package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// Error codes
const (
	CodeInternal     = "INTERNAL_ERROR"
	CodeMissingField = "MISSING_FIELD"
	CodeInvalidField = "INVALID_FIELD"
	CodeBadRequest   = "BAD_REQUEST"
	CodeNotFound     = "NOT_FOUND"
	CodeRateLimited  = "RATE_LIMITED"
)

// AppError represents an application error with context
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     []string          `json:"fields,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
	StatusCode int               `json:"-"`
	Err        error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Field returns the first field the error refers to, if any
func (e *AppError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// MissingField creates an error for required fields that were not supplied
func MissingField(message string, fields ...string) *AppError {
	if message == "" && len(fields) > 0 {
		message = fields[0] + " is required"
	}
	e := New(CodeMissingField, message, http.StatusBadRequest)
	e.Fields = fields
	return e
}

// InvalidField creates an error for a field that breaks the positivity constraint
func InvalidField(field string, value float64) *AppError {
	e := New(CodeInvalidField, field+" must be a finite number greater than zero", http.StatusBadRequest)
	e.Fields = []string{field}
	return e.
		WithDetail("field", field).
		WithDetail("value", strconv.FormatFloat(value, 'g', -1, 64))
}

// InternalComputation creates a server error carrying the underlying failure's message
func InternalComputation(err error) *AppError {
	msg := "internal computation error"
	if err != nil {
		msg = err.Error()
	}
	return Internal(msg).WithError(err)
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// BadRequest creates a bad request error
func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

// NotFound creates a not found error
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// RateLimited creates a rate limited error
func RateLimited() *AppError {
	return New(CodeRateLimited, "rate limit exceeded", http.StatusTooManyRequests)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsMissingField checks if the error is a missing field error
func IsMissingField(err error) bool {
	return hasCode(err, CodeMissingField)
}

// IsInvalidField checks if the error is an invalid field error
func IsInvalidField(err error) bool {
	return hasCode(err, CodeInvalidField)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return hasCode(err, CodeInternal)
}

// IsBadRequest checks if the error is a bad request error
func IsBadRequest(err error) bool {
	return hasCode(err, CodeBadRequest)
}

func hasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

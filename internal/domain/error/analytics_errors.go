// Package error defines domain-specific errors for the Finsight application.
package error

import "errors"

// Analytics domain errors.
var (
	// ErrMissingStartDate is returned when from is not provided but required.
	ErrMissingStartDate = errors.New("from date is required")

	// ErrInvalidDateRange is returned when to is before from.
	ErrInvalidDateRange = errors.New("to date must not be before from date")

	// ErrInvalidDateFormat is returned when a date parameter does not parse.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidTrendMonths is returned when the trend month count is out of range.
	ErrInvalidTrendMonths = errors.New("months must be between 1 and 24")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate  AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidDateRange  AnalyticsErrorCode = "ANL-010002"
	ErrCodeInvalidDateFormat AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidTrendMonths AnalyticsErrorCode = "ANL-010004"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

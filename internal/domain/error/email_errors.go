package error

// EmailErrorCode defines error codes for email delivery errors.
// Format: EMAIL-XXYYYY where XX is the operation and YYYY is the error.
type EmailErrorCode string

const (
	// ErrCodePermanentEmailFailure indicates a failure that will not succeed on retry.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-010001"

	// ErrCodeTemporaryEmailFailure indicates a failure that may succeed on retry.
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-010002"
)

// EmailError represents an email delivery error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// IsPermanent reports whether the failure should not be retried.
func (e *EmailError) IsPermanent() bool {
	return e.Code == ErrCodePermanentEmailFailure
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

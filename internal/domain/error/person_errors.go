package error

import "errors"

// Person domain errors.
var (
	// ErrPersonNotFound is returned when a person is not found in the system.
	ErrPersonNotFound = errors.New("person not found")

	// ErrPersonNameRequired is returned when a person is created without a name.
	ErrPersonNameRequired = errors.New("person name is required")
)

// PersonErrorCode defines error codes for person errors.
// Format: PER-XXYYYY where XX is category and YYYY is specific error.
type PersonErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodePersonNotFound     PersonErrorCode = "PER-010001"
	ErrCodePersonNameRequired PersonErrorCode = "PER-010002"
)

// PersonError represents a person error with code and message.
type PersonError struct {
	Code    PersonErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *PersonError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *PersonError) Unwrap() error {
	return e.Err
}

// NewPersonError creates a new PersonError with the given code and message.
func NewPersonError(code PersonErrorCode, message string, err error) *PersonError {
	return &PersonError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

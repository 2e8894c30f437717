// Package error defines domain-specific errors for the Offer Tracker application.
package error

import "errors"

// Offer domain errors.
var (
	// ErrOfferNotFound is returned when an offer is not found in the system.
	ErrOfferNotFound = errors.New("offer not found")

	// ErrInvalidOfferDates is returned when an offer window is malformed.
	ErrInvalidOfferDates = errors.New("invalid offer dates")

	// ErrInvalidOfferType is returned when the offer type is not recognized.
	ErrInvalidOfferType = errors.New("invalid offer type")

	// ErrInvalidOfferTarget is returned when a target or reward amount is invalid.
	ErrInvalidOfferTarget = errors.New("invalid offer target")
)

// OfferErrorCode defines error codes for offer errors.
// Format: OFR-XXYYYY where XX is category and YYYY is specific error.
type OfferErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeOfferNotFound      OfferErrorCode = "OFR-010001"
	ErrCodeInvalidOfferDates  OfferErrorCode = "OFR-010002"
	ErrCodeInvalidOfferType   OfferErrorCode = "OFR-010003"
	ErrCodeInvalidOfferTarget OfferErrorCode = "OFR-010004"
	ErrCodeMissingOfferFields OfferErrorCode = "OFR-010005"
)

// OfferError represents an offer error with code and message.
type OfferError struct {
	Code    OfferErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *OfferError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *OfferError) Unwrap() error {
	return e.Err
}

// NewOfferError creates a new OfferError with the given code and message.
func NewOfferError(code OfferErrorCode, message string, err error) *OfferError {
	return &OfferError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

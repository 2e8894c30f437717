package error

import "errors"

// Recommendation engine errors.
var (
	// ErrTooManyActiveOffers is returned when the active-offer set exceeds the
	// combinatorial search cap.
	ErrTooManyActiveOffers = errors.New("too many active offers for overlap search")

	// ErrRateLimited is returned when the recommendations endpoint is called
	// more often than the configured limit allows.
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RecommendationErrorCode defines error codes for recommendation errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecommendationErrorCode string

const (
	ErrCodeTooManyActiveOffers RecommendationErrorCode = "REC-010001"
	ErrCodeRateLimited         RecommendationErrorCode = "REC-020001"
)

// RecommendationError represents a recommendation error with code and message.
type RecommendationError struct {
	Code    RecommendationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecommendationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecommendationError) Unwrap() error {
	return e.Err
}

// NewRecommendationError creates a new RecommendationError with the given code and message.
func NewRecommendationError(code RecommendationErrorCode, message string, err error) *RecommendationError {
	return &RecommendationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

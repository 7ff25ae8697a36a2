package model

import "fmt"

// Validation failure reasons.
const (
	ReasonRequired     = "is required"
	ReasonNonNumeric   = "non-numeric amount"
	ReasonNotPositive  = "amount must be positive"
	ReasonTooLarge     = "amount too large"
	ReasonPercentRange = "percentage must be an integer between 0 and 100"
)

// ValidationError reports a raw input field that could not be normalized.
// Field carries the display name, e.g. "Crop Name".
type ValidationError struct {
	Field  string
	Key    string
	Reason string
	Value  string
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s: %s (got %q)", e.Field, e.Reason, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a field key.
func NewValidationError(key, reason, value string) *ValidationError {
	return &ValidationError{
		Field:  DisplayName(key),
		Key:    key,
		Reason: reason,
		Value:  value,
	}
}

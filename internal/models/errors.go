package models

import "fmt"

// ValidationError means a required form field is missing. The keys point
// into the translation table so the caller can render a localized toast.
type ValidationError struct {
	Field          string
	TitleKey       string
	DescriptionKey string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Field)
}

package validation

import (
	"fmt"
	"math"
	"strings"
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validator collects field errors in the order they were found.
type Validator struct {
	Errors []FieldError
}

func New() *Validator {
	return &Validator{
		Errors: make([]FieldError, 0),
	}
}

func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

func (v *Validator) AddError(field, message string) {
	v.Errors = append(v.Errors, FieldError{
		Field:   field,
		Message: message,
	})
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required rejects blank strings.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "is required")
}

// Present rejects a missing value.
func (v *Validator) Present(field string, value *float64) bool {
	v.Check(value != nil, field, "is required")
	return value != nil
}

// Min rejects values below min, NaN and infinities.
func (v *Validator) Min(field string, value, min float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.AddError(field, "must be a finite number")
		return
	}
	v.Check(value >= min, field, fmt.Sprintf("must be greater than or equal to %v", min))
}

// Error joins all field errors into one message.
func (v *Validator) Error() string {
	msgs := make([]string, len(v.Errors))
	for i, e := range v.Errors {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

package transaction

import (
	"errors"
	"fmt"

	"fraudscope/internal/validation"
)

// Service errors
var (
	ErrValidation = errors.New("validation failed")
	ErrStorage    = errors.New("storage failure")
)

// ValidationError reports rejected input. Nothing was persisted.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	v := validation.Validator{Errors: e.Fields}
	return fmt.Sprintf("%s: %s", ErrValidation, v.Error())
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError reports a failed store operation on one collection.
type StorageError struct {
	Op         string
	Collection string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrStorage, e.Op, e.Collection, e.Err)
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package utils

import (
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground/validator behind the one method handlers use.
type Validator struct {
	validate *validator.Validate
}

// Validate checks struct tags on i and returns the underlying validation
// error verbatim; handlers surface it as a 400.
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

var (
	validatorOnce sync.Once
	instance      *Validator
)

// GetValidator returns the process-wide validator instance.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		instance = &Validator{validate: validator.New()}
	})
	return instance
}

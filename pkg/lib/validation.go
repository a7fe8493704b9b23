// Package lib holds small shared helpers.
package lib

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var goValidator = validator.New()

// ValidationErrors aggregates field-level validation failures.
type ValidationErrors struct {
	Errors []string
}

func (ve ValidationErrors) Error() string {
	if len(ve.Errors) == 0 {
		return "no validation errors"
	}
	return strings.Join(ve.Errors, "; ")
}

// ValidateStruct validates s using go-playground/validator tags. Returns nil
// when validation passes.
func ValidateStruct(s any) error {
	if err := goValidator.Struct(s); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			out := ValidationErrors{}
			for _, e := range ve {
				out.Errors = append(out.Errors, fmt.Sprintf("%s failed %s", e.Field(), e.ActualTag()))
			}
			return out
		}
		return err
	}
	return nil
}

// Package validation checks request shapes at the HTTP boundary and reports
// every failing field at once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// FieldError lists the problems found with a single input field.
type FieldError struct {
	Field  string   `json:"field"`
	Errors []string `json:"errors"`
}

// Errors is returned when an input fails validation.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, f := range e {
		parts = append(parts, f.Field+": "+strings.Join(f.Errors, ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends msg to field, keeping fields in first-seen order.
func (e Errors) Add(field, msg string) Errors {
	for i := range e {
		if e[i].Field == field {
			e[i].Errors = append(e[i].Errors, msg)
			return e
		}
	}
	return append(e, FieldError{Field: field, Errors: []string{msg}})
}

// Err returns e as an error, or nil when nothing was recorded.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// Fields extracts the field errors from err when it is a validation failure.
func Fields(err error) (Errors, bool) {
	var verr Errors
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	var out Errors
	for _, fe := range verrs {
		out = out.Add(fe.Field(), message(fe))
	}
	return out
}

// NotBlank records an error for every provided value that is empty after
// trimming. Nil values are skipped.
func NotBlank(errs Errors, field string, value *string) Errors {
	if value != nil && strings.TrimSpace(*value) == "" {
		return errs.Add(field, "must not be empty")
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "notblank":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

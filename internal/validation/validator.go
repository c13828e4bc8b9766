// Package validation checks model fields with go-playground/validator and
// reports failures as *common.ValidationError keyed by JSON field name.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its `validate` tags. It returns nil or a
// *common.ValidationError.
func Struct(v any) error {
	return toValidationError(engine().Struct(v))
}

// Var validates a single value and reports failures under field.
func Var(field string, v any, tag string) error {
	err := engine().Var(v, tag)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return common.NewValidationError(field, formatFieldError(verrs[0]))
	}
	return common.NewValidationError(field, "is invalid")
}

// Merge combines several validation errors into one. Nil entries are
// skipped; it returns nil when nothing is left.
func Merge(errs ...error) error {
	var out *common.ValidationError
	for _, err := range errs {
		var ve *common.ValidationError
		if !errors.As(err, &ve) {
			continue
		}
		if out == nil {
			out = &common.ValidationError{Fields: map[string]string{}}
		}
		for k, v := range ve.Fields {
			if _, seen := out.Fields[k]; !seen {
				out.Fields[k] = v
			}
		}
	}
	if out == nil {
		return nil
	}
	return out
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewValidationError("payload", "is invalid")
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = formatFieldError(fe)
	}
	return &common.ValidationError{Fields: fields}
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "is invalid"
	}
}

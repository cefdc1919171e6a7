package kling

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/maauso/kling-go/internal/apierr"
)

var validate = newValidator()

// newValidator reports fields by their JSON names so errors match the wire
// request the caller is building.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest checks req against its validate tags and converts failures
// into a *ValidationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return &apierr.ValidationError{Fields: []apierr.FieldError{{Message: err.Error()}}}
	}

	fields := make([]apierr.FieldError, 0, len(ves))
	for _, fe := range ves {
		field := fe.Namespace()
		// Drop the root struct name.
		if _, rest, ok := strings.Cut(field, "."); ok {
			field = rest
		}
		fields = append(fields, apierr.FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(field, fe.Tag(), fe.Param()),
		})
	}
	return &apierr.ValidationError{Fields: fields}
}

func fieldMessage(field, rule, param string) string {
	switch rule {
	case "required", "required_without", "required_if":
		return field + " is required"
	case "excluded_with":
		return field + " cannot be combined with " + param
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "len":
		return fmt.Sprintf("%s must have exactly %s items", field, param)
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, rule)
	}
}

func requiredField(field string) error {
	return &apierr.ValidationError{Fields: []apierr.FieldError{{
		Field:   field,
		Rule:    "required",
		Message: field + " is required",
	}}}
}

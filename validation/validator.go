// Package validation runs struct tag validation and reports failures as
// invalid_options application errors.
package validation

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"

	validatorV10 "github.com/go-playground/validator/v10"
	"github.com/leeforge/devkit/errors"
)

var validator *validatorV10.Validate

func init() {
	validator = validatorV10.New(validatorV10.WithRequiredStructEnabled())
	validator.RegisterTagNameFunc(fieldName)
}

// fieldName reports fields by their json name so messages match what callers send.
func fieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// Struct validates v. The first failing field becomes the error message; all
// failures are attached under the "fields" detail.
func Struct(v any) error {
	err := validator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validatorV10.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.NewInvalidOptions(err.Error()).WithInnerError(err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = getValidationMessage(fe)
	}

	first := fieldErrs[0]
	return errors.NewInvalidOptions(fmt.Sprintf("%s %s", first.Field(), getValidationMessage(first))).
		WithDetail("fields", fields).
		WithInnerError(err)
}

// Var validates a single value against tag, reporting it as name.
func Var(name string, value any, tag string) error {
	err := validator.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validatorV10.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.NewInvalidOptions(fmt.Sprintf("%s %s", name, getValidationMessage(fieldErrs[0]))).
			WithInnerError(err)
	}
	return errors.NewInvalidOptions(err.Error()).WithInnerError(err)
}

func getValidationMessage(fe validatorV10.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "lt":
		return fmt.Sprintf("must be less than %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "dir":
		return "must be an existing directory"
	default:
		return fmt.Sprintf("failed validation for tag '%s'", fe.Tag())
	}
}

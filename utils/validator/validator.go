package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom tags.
const (
	TagShortcode = "shortcode"
	TagURLPrefix = "url_prefix"
)

var (
	shortcodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	prefixPattern    = regexp.MustCompile(`^/[A-Za-z0-9/_-]*$`)
)

// Validator wraps the go-playground validator with the custom rules used here.
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator. Field names in errors follow the json tag.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation(TagShortcode, func(fl validator.FieldLevel) bool {
		return shortcodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(TagURLPrefix, func(fl validator.FieldLevel) bool {
		return prefixPattern.MatchString(fl.Field().String())
	})

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate validates a struct. Rule violations are returned as *ValidationError.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		return NewValidationError(errs)
	}
	return err
}

// ValidateVar validates a single value against tag.
func (v *Validator) ValidateVar(field any, tag string) error {
	return v.validate.Var(field, tag)
}

// IsShortcode reports whether s is a well-formed organization shortcode.
func (v *Validator) IsShortcode(s string) bool {
	return v.ValidateVar(s, "required,"+TagShortcode) == nil
}

// ValidationError maps field names to user-facing messages.
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, ", "))
}

// NewValidationError builds a ValidationError from validator output.
func NewValidationError(errs validator.ValidationErrors) *ValidationError {
	out := make(map[string]string, len(errs))
	for _, err := range errs {
		field := err.Field()
		switch err.Tag() {
		case "required":
			out[field] = fmt.Sprintf("%s is required", field)
		case "min":
			out[field] = fmt.Sprintf("%s must be at least %s characters long", field, err.Param())
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters long", field, err.Param())
		case "url":
			out[field] = fmt.Sprintf("%s must be a valid URL", field)
		case "ne":
			out[field] = fmt.Sprintf("%s must not be %s", field, err.Param())
		case "gt":
			out[field] = fmt.Sprintf("%s must be greater than %s", field, err.Param())
		case TagShortcode:
			out[field] = "shortcode must contain only letters, numbers, hyphens and underscores"
		case TagURLPrefix:
			out[field] = fmt.Sprintf("%s must be an absolute path", field)
		default:
			out[field] = fmt.Sprintf("%s is invalid", field)
		}
	}
	return &ValidationError{Errors: out}
}

package validator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// TagPositiveFinite is the tag for the dimension positivity rule
const TagPositiveFinite = "positive_finite"

// V is the singleton validator instance
var V *validator.Validate

func init() {
	V = validator.New(validator.WithRequiredStructEnabled())
	V.RegisterTagNameFunc(jsonTagName)

	if err := V.RegisterValidation(TagPositiveFinite, positiveFinite); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", TagPositiveFinite, err))
	}
}

// jsonTagName names fields by their json tag so errors match request keys
func jsonTagName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return strings.ToLower(f.Name[:1]) + f.Name[1:]
	}
	return name
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"-"`
	Value   any    `json:"-"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Field + ": " + err.Message
	}
	return strings.Join(msgs, "; ")
}

// Validate validates a struct and returns ValidationErrors if invalid
func Validate(v any) error {
	err := V.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	return formatValidationErrors(verrs)
}

// PositiveFinite reports whether v satisfies the positive_finite rule
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func positiveFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return PositiveFinite(field.Float())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return field.Int() > 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return field.Uint() > 0
	}
	return false
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, e := range errs {
		out = append(out, ValidationError{
			Field:   e.Field(),
			Message: message(e),
			Tag:     e.Tag(),
			Value:   e.Value(),
		})
	}
	return out
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case TagPositiveFinite:
		return "must be a finite number greater than zero"
	case "required":
		return "is required"
	}
	return "failed validation: " + e.Tag()
}

// FloatValue unwraps a validation error value into a float64 when it holds one
func FloatValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case *float64:
		if n == nil {
			return 0, false
		}
		return *n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

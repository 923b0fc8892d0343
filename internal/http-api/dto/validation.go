package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
)

var (
	registerOnce sync.Once
	registerErr  error
)

var customTags = map[string]validator.Func{
	"username": func(fl validator.FieldLevel) bool {
		return models.ValidateUsername(fl.Field().String()) == ""
	},
	"slug": func(fl validator.FieldLevel) bool {
		return models.ValidateSlug(fl.Field().String()) == ""
	},
	"pastyear": func(fl validator.FieldLevel) bool {
		return models.ValidateYear(int(fl.Field().Int()), time.Now()) == ""
	},
}

// RegisterValidators installs the custom tags on gin's validator and makes
// it report JSON field names. Safe to call more than once; every call
// returns the outcome of the first.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerOn(binding.Validator.Engine())
	})
	return registerErr
}

func registerOn(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("register validators: unexpected binding engine %T", engine)
	}
	v.RegisterTagNameFunc(jsonFieldName)
	for tag, fn := range customTags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %q validator: %w", tag, err)
		}
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

// BindingError turns a decoding or validation failure into the per-field
// validation body. Unknown errors end up under non_field_errors.
func BindingError(err error) *apperr.ValidationError {
	out := apperr.NewValidationError()

	var verrs validator.ValidationErrors
	var roleErr *models.InvalidRoleError
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &verrs):
		for _, fe := range verrs {
			out.Add(fieldKey(fe), fieldMessage(fe))
		}
	case errors.As(err, &roleErr):
		out.Add("role", roleErr.Error())
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = apperr.NonFieldKey
		}
		out.Add(field, fmt.Sprintf("A valid %s is required.", typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr):
		out.Add(apperr.NonFieldKey, "JSON parse error - "+syntaxErr.Error())
	default:
		out.Add(apperr.NonFieldKey, err.Error())
	}
	return out
}

// fieldKey strips the slice index of dive errors, genre[1] becomes genre.
func fieldKey(fe validator.FieldError) string {
	key, _, _ := strings.Cut(fe.Field(), "[")
	return key
}

func fieldMessage(fe validator.FieldError) string {
	value := fmt.Sprint(fe.Value())
	if rv := reflect.ValueOf(fe.Value()); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		value = fmt.Sprint(rv.Elem().Interface())
	}

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "username":
		return models.ValidateUsername(value)
	case "slug":
		return models.ValidateSlug(value)
	case "pastyear":
		return "Invalid year."
	case "max":
		if fe.Kind() == reflect.String {
			return "Ensure this field has no more than " + fe.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	case "min":
		if fe.Kind() == reflect.String {
			return "Ensure this field has at least " + fe.Param() + " characters."
		}
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	}
	return fmt.Sprintf("Failed on the %q rule.", fe.Tag())
}

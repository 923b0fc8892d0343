package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/repository"
	"yamdb/internal/sanitize"
)

const (
	msgFieldRequired = "This field is required."
	msgUsernameTaken = "A user with that username already exists."
	msgEmailTaken    = "user with this email already exists."
	msgMarkup        = "HTML markup is not allowed."
)

// notFound maps a missing row to apperr.ErrNotFound and leaves other
// errors untouched.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return err
}

// duplicateField turns a unique violation into a field error on the
// colliding column.
func duplicateField(err error, messages map[string]string) error {
	var dup *repository.DuplicateError
	if !errors.As(err, &dup) {
		return err
	}
	column := dup.Column()
	if msg, ok := messages[column]; ok {
		return apperr.FieldError(column, msg)
	}
	return apperr.FieldError(apperr.NonFieldKey, "This record already exists.")
}

func doesNotExist(slug string) string {
	return fmt.Sprintf("Object with slug=%s does not exist.", slug)
}

// plainText trims a user supplied text field. Markup is refused with a
// message on field instead of being stripped.
func plainText(v *apperr.ValidationError, field, input string) string {
	text, err := sanitize.Text(input)
	if err != nil {
		v.Add(field, msgMarkup)
	}
	return text
}

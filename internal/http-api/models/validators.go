package models

import (
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"

	"yamdb/internal/http-api/apperr"
)

const (
	UsernameMinLength = 3
	UsernameMaxLength = 150
	EmailMaxLength    = 254
	NameMaxLength     = 150
	SlugMaxLength     = 50
	TitleNameMaxLen   = 200
	DescriptionMaxLen = 200
	ScoreMin          = 1
	ScoreMax          = 10
)

var (
	usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Messages are part of the wire contract, clients match on them.
const (
	msgUsernameLength = "Username length must be at least 3 chars!"
	msgUsernameChars  = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	msgInvalidYear    = "Invalid year."
	msgInvalidSlug    = "Enter a valid \"slug\" consisting of letters, numbers, underscores or hyphens."
	msgRequired       = "This field may not be blank."
)

// ValidateUsername checks length and charset. It returns a single message
// or the empty string when the username is acceptable.
func ValidateUsername(username string) string {
	n := utf8.RuneCountInString(username)
	switch {
	case n < UsernameMinLength:
		return msgUsernameLength
	case n > UsernameMaxLength:
		return tooLong(UsernameMaxLength)
	case !usernamePattern.MatchString(username):
		return msgUsernameChars
	}
	return ""
}

// ValidateYear accepts 0 < year <= current calendar year of now.
func ValidateYear(year int, now time.Time) string {
	if year <= 0 || year > now.Year() {
		return msgInvalidYear
	}
	return ""
}

func ValidateSlug(slug string) string {
	if slug == "" {
		return msgRequired
	}
	if utf8.RuneCountInString(slug) > SlugMaxLength {
		return tooLong(SlugMaxLength)
	}
	if !slugPattern.MatchString(slug) {
		return msgInvalidSlug
	}
	return ""
}

func maxLength(v *apperr.ValidationError, field, value string, limit int) {
	if utf8.RuneCountInString(value) > limit {
		v.Add(field, tooLong(limit))
	}
}

func tooLong(limit int) string {
	return "Ensure this field has no more than " + strconv.Itoa(limit) + " characters."
}

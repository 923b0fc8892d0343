package sanitize

import (
	"errors"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// StrictPolicy removes all HTML tags and attributes.
var StrictPolicy = bluemonday.StrictPolicy()

// ErrMarkup is returned for text the strict policy would alter.
var ErrMarkup = errors.New("text contains markup")

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// HasMarkup reports whether the strict policy would drop anything from s.
// Both sides are compared in decoded form, so entities and bare
// ampersands count as plain text.
func HasMarkup(s string) bool {
	kept := html.UnescapeString(StrictPolicy.Sanitize(s))
	return newlines.Replace(kept) != newlines.Replace(html.UnescapeString(s))
}

// Text trims input and otherwise returns it as submitted. Input carrying
// tags, comments or script content is refused with ErrMarkup.
func Text(input string) (string, error) {
	text := strings.TrimSpace(input)
	if HasMarkup(text) {
		return "", ErrMarkup
	}
	return text, nil
}

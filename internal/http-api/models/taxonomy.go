package models

import (
	"strings"

	"yamdb/internal/http-api/apperr"
)

// Tag is the shared shape of categories and genres: a display name plus a
// unique slug used as the public reference key.
type Tag struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"size:150;not null" json:"name"`
	Slug string `gorm:"uniqueIndex;size:50;not null" json:"slug"`
}

func (t *Tag) Validate() error {
	v := apperr.NewValidationError()
	if strings.TrimSpace(t.Name) == "" {
		v.Add("name", msgRequired)
	}
	maxLength(v, "name", t.Name, NameMaxLength)
	if msg := ValidateSlug(t.Slug); msg != "" {
		v.Add("slug", msg)
	}
	return v.OrNil()
}

type Category struct {
	Tag
}

func (Category) TableName() string {
	return "categories"
}

type Genre struct {
	Tag
}

func (Genre) TableName() string {
	return "genres"
}

// Taxonomy names the table a Tag lives in.
type Taxonomy string

const (
	TaxonomyCategory Taxonomy = "categories"
	TaxonomyGenre    Taxonomy = "genres"
)

// Noun is the singular, used in messages.
func (t Taxonomy) Noun() string {
	if t == TaxonomyCategory {
		return "category"
	}
	return "genre"
}

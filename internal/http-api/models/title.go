package models

import (
	"strings"
	"time"

	"yamdb/internal/http-api/apperr"
)

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:200;not null;index"`
	Year        int       `json:"year" gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"size:200"`
	CategoryID  *int64    `json:"-" gorm:"index"`
	Category    *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres      []Genre   `json:"genre,omitempty" gorm:"many2many:titles_genres;constraint:OnDelete:CASCADE;"`

	// Rating is the average review score, filled by the select of the read
	// queries. Nil when the title has no reviews.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`
}

func (Title) TableName() string {
	return "titles"
}

// Validate checks the title invariants against the calendar of now.
func (t *Title) Validate(now time.Time) error {
	v := apperr.NewValidationError()
	if strings.TrimSpace(t.Name) == "" {
		v.Add("name", msgRequired)
	}
	maxLength(v, "name", t.Name, TitleNameMaxLen)
	if msg := ValidateYear(t.Year, now); msg != "" {
		v.Add("year", msg)
	}
	if t.Description != nil {
		maxLength(v, "description", *t.Description, DescriptionMaxLen)
	}
	return v.OrNil()
}

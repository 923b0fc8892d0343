package models

import (
	"strings"
	"time"

	"yamdb/internal/http-api/apperr"
)

type Review struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID  int64     `json:"title_id" gorm:"not null;index"`
	AuthorID string    `json:"author_id" gorm:"type:uuid;not null;index"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Author User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Title  Title `json:"title,omitempty" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) AuthoredBy() string {
	return r.AuthorID
}

func (r *Review) Validate() error {
	v := apperr.NewValidationError()
	if strings.TrimSpace(r.Text) == "" {
		v.Add("text", msgRequired)
	}
	if r.Score < ScoreMin || r.Score > ScoreMax {
		v.Add("score", "Ensure this value is between 1 and 10.")
	}
	return v.OrNil()
}

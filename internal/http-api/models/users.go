package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yamdb/internal/http-api/apperr"
)

type User struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	Username    string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName   string    `gorm:"size:150;not null;default:''" json:"first_name"`
	LastName    string    `gorm:"size:150;not null;default:''" json:"last_name"`
	Bio         string    `gorm:"type:text;not null;default:''" json:"bio"`
	Role        Role      `gorm:"not null" json:"role"`
	IsSuperuser bool      `gorm:"not null;default:false" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}

// EnforceRoleInvariant pins superusers to the admin role. Every write of a
// user record goes through it.
func (user *User) EnforceRoleInvariant() {
	if user.IsSuperuser {
		user.Role = RoleAdmin
	}
}

// Validate checks the field invariants of a user record before it is stored.
func (user *User) Validate() error {
	v := apperr.NewValidationError()
	if msg := ValidateUsername(user.Username); msg != "" {
		v.Add("username", msg)
	}
	if strings.TrimSpace(user.Email) == "" {
		v.Add("email", msgRequired)
	} else if _, err := mail.ParseAddress(user.Email); err != nil {
		v.Add("email", "Enter a valid email address.")
	}
	maxLength(v, "email", user.Email, EmailMaxLength)
	maxLength(v, "first_name", user.FirstName, NameMaxLength)
	maxLength(v, "last_name", user.LastName, NameMaxLength)
	if !user.Role.Valid() {
		v.Add("role", (&InvalidRoleError{Label: user.Role.String()}).Error())
	}
	return v.OrNil()
}

// SubjectID identifies the account for ownership checks.
func (user *User) SubjectID() string {
	return user.ID
}

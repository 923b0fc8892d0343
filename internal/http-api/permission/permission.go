// Package permission decides whether a subject may perform an action on a
// resource. Every decision is made twice: once per request, before anything
// is loaded, and once per object after the target has been fetched.
package permission

import "yamdb/internal/http-api/models"

type Action uint8

const (
	ActionList Action = iota
	ActionCreate
	ActionRetrieve
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionCreate:
		return "create"
	case ActionRetrieve:
		return "retrieve"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	}
	return "unknown"
}

// Safe reports whether the action only reads.
func (a Action) Safe() bool {
	return a == ActionList || a == ActionRetrieve
}

// Subject is the caller of a request. The zero value is anonymous.
type Subject struct {
	ID        string
	Username  string
	Role      models.Role
	Superuser bool
}

func Anonymous() Subject {
	return Subject{}
}

func SubjectFromUser(u *models.User) Subject {
	if u == nil {
		return Anonymous()
	}
	return Subject{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Superuser: u.IsSuperuser,
	}
}

func (s Subject) Authenticated() bool {
	return s.ID != ""
}

// Admin covers both the admin role and the superuser flag.
func (s Subject) Admin() bool {
	return s.Authenticated() && (s.Superuser || s.Role == models.RoleAdmin)
}

func (s Subject) Moderator() bool {
	return s.Authenticated() && s.Role == models.RoleModerator
}

// Identity is implemented by records that are themselves an account.
type Identity interface {
	SubjectID() string
}

// Authored is implemented by records written by an account.
type Authored interface {
	AuthoredBy() string
}

// CanAssignRole reports whether s may set the role of an account to role,
// given the role the account currently has.
func CanAssignRole(s Subject, current, role models.Role) bool {
	return current == role || s.Admin()
}

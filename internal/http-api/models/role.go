package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Role is the access level of a user account.
// It travels on the wire and in the database as its lowercase label.
type Role uint8

const (
	RoleUser Role = iota
	RoleModerator
	RoleAdmin
)

var roleLabels = [...]string{
	RoleUser:      "user",
	RoleModerator: "moderator",
	RoleAdmin:     "admin",
}

// InvalidRoleError is returned when a label does not name a known role.
type InvalidRoleError struct {
	Label string
}

func (e *InvalidRoleError) Error() string {
	return fmt.Sprintf("%q is not a valid choice.", e.Label)
}

// ParseRole maps a wire label back to its Role.
func ParseRole(label string) (Role, error) {
	for r, l := range roleLabels {
		if l == label {
			return Role(r), nil
		}
	}
	return RoleUser, &InvalidRoleError{Label: label}
}

func (r Role) String() string {
	if int(r) < len(roleLabels) {
		return roleLabels[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	return int(r) < len(roleLabels)
}

func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("marshal role: unknown role %d", uint8(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return &InvalidRoleError{Label: string(data)}
	}
	parsed, err := ParseRole(label)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Value stores the role as its label so the column stays readable.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("store role: unknown role %d", uint8(r))
	}
	return r.String(), nil
}

func (r *Role) Scan(src any) error {
	var label string
	switch v := src.(type) {
	case string:
		label = v
	case []byte:
		label = string(v)
	case nil:
		*r = RoleUser
		return nil
	default:
		return fmt.Errorf("scan role: unsupported type %T", src)
	}
	parsed, err := ParseRole(label)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (Role) GormDataType() string {
	return "varchar(9)"
}

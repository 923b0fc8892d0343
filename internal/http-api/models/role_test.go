package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_RoundTrip(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleModerator, RoleAdmin} {
		t.Run(role.String(), func(t *testing.T) {
			data, err := json.Marshal(role)
			require.NoError(t, err)
			assert.Equal(t, `"`+role.String()+`"`, string(data))

			var decoded Role
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, role, decoded)
		})
	}
}

func TestRole_WireLabels(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "moderator", RoleModerator.String())
	assert.Equal(t, "admin", RoleAdmin.String())
}

func TestRole_UnmarshalUnknownLabel(t *testing.T) {
	tests := []string{`"superadmin"`, `"Admin"`, `""`, `2`}

	for _, raw := range tests {
		var r Role
		err := json.Unmarshal([]byte(raw), &r)

		var invalid *InvalidRoleError
		require.ErrorAs(t, err, &invalid, raw)
		assert.Contains(t, invalid.Error(), "is not a valid choice")
	}
}

func TestRole_MarshalUnknown(t *testing.T) {
	_, err := json.Marshal(Role(42))
	assert.Error(t, err)
}

func TestRole_ScanAndValue(t *testing.T) {
	var r Role
	require.NoError(t, r.Scan("moderator"))
	assert.Equal(t, RoleModerator, r)

	require.NoError(t, r.Scan([]byte("admin")))
	assert.Equal(t, RoleAdmin, r)

	assert.Error(t, r.Scan("root"))
	assert.Error(t, r.Scan(12))

	v, err := RoleModerator.Value()
	require.NoError(t, err)
	assert.Equal(t, "moderator", v)
}

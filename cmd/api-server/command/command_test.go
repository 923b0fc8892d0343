package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yamdb/internal/http-api/models"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["createsuperuser"])

	sub, _, err := rootCmd.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	assert.Equal(t, "down", sub.Name())
	assert.NotNil(t, sub.Flags().Lookup("steps"))
}

func TestNewSuperuser(t *testing.T) {
	user := newSuperuser("", "root@example.com")
	assert.Equal(t, "root@example.com", user.Username)
	assert.True(t, user.IsSuperuser)

	user.EnforceRoleInvariant()
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestLoadRuntime_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, _, err := loadRuntime()
	assert.Error(t, err)
}

func TestLoadRuntime_FlagOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	logLevel, logFormat = "debug", "console"
	t.Cleanup(func() { logLevel, logFormat = "", "" })

	cfg, _, err := loadRuntime()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

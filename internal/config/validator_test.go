package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestValidateEnv_MissingVersion(t *testing.T) {
	unsetEnv(t, "ENV_SCHEMA_VERSION")

	err := ValidateEnv(RequiredDiscordEnvVars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION is not set")
}

func TestValidateEnv_VersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")

	err := ValidateEnv(RequiredDiscordEnvVars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1.0, got 0.9")
}

func TestValidateEnv_MissingRequired(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DISCORD_TOKEN", "token")
	unsetEnv(t, "DISCORD_APP_ID", "API_URL")

	err := ValidateEnv(RequiredDiscordEnvVars)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_APP_ID, API_URL")
}

func TestValidateEnvWithWarnings(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("DISCORD_APP_ID", "123")
	t.Setenv("API_URL", "localhost:8080")
	t.Setenv("API_KEY", "generate_with_openssl_rand_hex_32")

	warnings, err := ValidateEnvWithWarnings(RequiredDiscordEnvVars)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}

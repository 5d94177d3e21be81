package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
)

var configEnvVars = []string{
	"PORT", "LOG_LEVEL", "LOG_FORMAT", "ENVIRONMENT", "SERVICE_NAME", "VERSION",
	"API_KEY", "TRUSTED_PROXIES", "RECIPES_PATH", "RAW_MATERIALS_PATH", "CATALOG_HCL_PATH",
	"MAX_EXPANSION_STEPS", "UNKNOWN_ITEM_POLICY", "ALLOW_PARTIAL_RESULTS", "MEMO_SIZE",
	"SESSION_CAPACITY", "SESSION_TTL",
}

// clearEnvVars unsets every variable Load reads and then applies set.
// t.Setenv registers the restore of the original values.
func clearEnvVars(t *testing.T, set map[string]string) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	for key, v := range set {
		t.Setenv(key, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnvVars(t, nil)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultRecipesPath, cfg.RecipesPath)
	assert.Equal(t, DefaultRawMaterialsPath, cfg.RawMaterialsPath)
	assert.Equal(t, calculator.DefaultMaxSteps, cfg.MaxExpansionSteps)
	assert.Equal(t, calculator.DefaultMemoSize, cfg.MemoSize)
	assert.Equal(t, "raw", cfg.UnknownItemPolicy)
	assert.False(t, cfg.AllowPartialResults)
	assert.Equal(t, DefaultSessionTTL, cfg.SessionTTL)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnvVars(t, map[string]string{
		"PORT":                  "3000",
		"LOG_LEVEL":             "debug",
		"LOG_FORMAT":            "json",
		"ENVIRONMENT":           "prod",
		"API_KEY":               "secret",
		"TRUSTED_PROXIES":       "10.0.0.1, 10.0.0.2",
		"CATALOG_HCL_PATH":      "configs/catalog.hcl",
		"MAX_EXPANSION_STEPS":   "250",
		"UNKNOWN_ITEM_POLICY":   "ERROR",
		"ALLOW_PARTIAL_RESULTS": "true",
		"MEMO_SIZE":             "0",
		"SESSION_CAPACITY":      "5",
		"SESSION_TTL":           "90m",
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxies)
	assert.Equal(t, "configs/catalog.hcl", cfg.CatalogHCLPath)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)

	opts := cfg.EngineOptions()
	assert.Equal(t, 250, opts.MaxSteps)
	assert.Equal(t, calculator.UnknownAsError, opts.UnknownItems)
	assert.True(t, opts.AllowPartialOnStepLimit)
	assert.Equal(t, 0, opts.MemoSize)

	logCfg := cfg.LoggerConfig()
	assert.True(t, logCfg.IsJSON())
	assert.False(t, logCfg.AddSource)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{name: "non-numeric port", env: map[string]string{"PORT": "abc"}, wantMsg: "invalid PORT"},
		{name: "port out of range", env: map[string]string{"PORT": "70000"}, wantMsg: "out of range"},
		{name: "zero max steps", env: map[string]string{"MAX_EXPANSION_STEPS": "0"}, wantMsg: "MAX_EXPANSION_STEPS"},
		{name: "negative memo", env: map[string]string{"MEMO_SIZE": "-1"}, wantMsg: "MEMO_SIZE"},
		{name: "bad policy", env: map[string]string{"UNKNOWN_ITEM_POLICY": "ignore"}, wantMsg: "UNKNOWN_ITEM_POLICY"},
		{name: "bad partial flag", env: map[string]string{"ALLOW_PARTIAL_RESULTS": "maybe"}, wantMsg: "ALLOW_PARTIAL_RESULTS"},
		{name: "bad ttl", env: map[string]string{"SESSION_TTL": "forever"}, wantMsg: "SESSION_TTL"},
		{name: "zero capacity", env: map[string]string{"SESSION_CAPACITY": "0"}, wantMsg: "SESSION_CAPACITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t, tt.env)

			cfg, err := Load()
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a,,b ,"))
}

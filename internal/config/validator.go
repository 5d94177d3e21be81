package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredDiscordEnvVars lists the variables the Discord bot cannot start without
var RequiredDiscordEnvVars = []string{
	"ENV_SCHEMA_VERSION",
	"DISCORD_TOKEN",
	"DISCORD_APP_ID",
	"API_URL",
}

// ValidateEnv checks the schema version and that every variable in required is set
func ValidateEnv(required []string) error {
	schemaVersion := os.Getenv("ENV_SCHEMA_VERSION")
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}
	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	var missing []string
	for _, envVar := range required {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and reports non-fatal problems
func ValidateEnvWithWarnings(required []string) ([]string, error) {
	if err := ValidateEnv(required); err != nil {
		return nil, err
	}

	var warnings []string
	if os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}
	if url := os.Getenv("API_URL"); url != "" && !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		warnings = append(warnings, fmt.Sprintf("API_URL %q has no http:// or https:// scheme", url))
	}
	return warnings, nil
}

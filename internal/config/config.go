package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/osse101/CraftCalc_Go/internal/calculator"
	"github.com/osse101/CraftCalc_Go/internal/logger"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string
	ServiceName string
	Version     string

	APIKey         string // optional; when set, /api/v1 requires X-API-Key
	TrustedProxies []string

	RecipesPath      string
	RawMaterialsPath string
	CatalogHCLPath   string // takes precedence over the JSON pair when set

	MaxExpansionSteps   int
	UnknownItemPolicy   string
	AllowPartialResults bool
	MemoSize            int

	SessionCapacity int
	SessionTTL      time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:          getEnv("LOG_LEVEL", logger.LogLevelInfo),
		LogFormat:         getEnv("LOG_FORMAT", logger.LogFormatText),
		Environment:       getEnv("ENVIRONMENT", logger.EnvironmentDev),
		ServiceName:       getEnv("SERVICE_NAME", logger.DefaultServiceName),
		Version:           getEnv("VERSION", logger.DefaultVersion),
		APIKey:            getEnv("API_KEY", ""),
		TrustedProxies:    splitList(getEnv("TRUSTED_PROXIES", "")),
		RecipesPath:       getEnv("RECIPES_PATH", DefaultRecipesPath),
		RawMaterialsPath:  getEnv("RAW_MATERIALS_PATH", DefaultRawMaterialsPath),
		CatalogHCLPath:    getEnv("CATALOG_HCL_PATH", ""),
		UnknownItemPolicy: strings.ToLower(getEnv("UNKNOWN_ITEM_POLICY", "raw")),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.MaxExpansionSteps, err = getEnvInt("MAX_EXPANSION_STEPS", calculator.DefaultMaxSteps); err != nil {
		return nil, err
	}
	if cfg.MemoSize, err = getEnvInt("MEMO_SIZE", calculator.DefaultMemoSize); err != nil {
		return nil, err
	}
	if cfg.SessionCapacity, err = getEnvInt("SESSION_CAPACITY", DefaultSessionCapacity); err != nil {
		return nil, err
	}

	partial := getEnv("ALLOW_PARTIAL_RESULTS", "false")
	if cfg.AllowPartialResults, err = strconv.ParseBool(partial); err != nil {
		return nil, fmt.Errorf("invalid ALLOW_PARTIAL_RESULTS value: %w", err)
	}

	ttl := getEnv("SESSION_TTL", DefaultSessionTTL.String())
	if cfg.SessionTTL, err = time.ParseDuration(ttl); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL value: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that parsing alone cannot catch
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT value: %d out of range", c.Port)
	}
	if c.MaxExpansionSteps <= 0 {
		return fmt.Errorf("MAX_EXPANSION_STEPS must be positive, got %d", c.MaxExpansionSteps)
	}
	if c.MemoSize < 0 {
		return fmt.Errorf("MEMO_SIZE must not be negative, got %d", c.MemoSize)
	}
	if c.SessionCapacity <= 0 {
		return fmt.Errorf("SESSION_CAPACITY must be positive, got %d", c.SessionCapacity)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if _, err := calculator.ParseUnknownItemPolicy(c.UnknownItemPolicy); err != nil {
		return fmt.Errorf("invalid UNKNOWN_ITEM_POLICY: %w", err)
	}
	return nil
}

// EngineOptions translates the expansion settings into calculator options
func (c *Config) EngineOptions() calculator.Options {
	policy, _ := calculator.ParseUnknownItemPolicy(c.UnknownItemPolicy)
	return calculator.Options{
		MaxSteps:                c.MaxExpansionSteps,
		UnknownItems:            policy,
		AllowPartialOnStepLimit: c.AllowPartialResults,
		MemoSize:                c.MemoSize,
	}
}

// LoggerConfig returns the logger settings
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, c.Environment == logger.EnvironmentDev)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	n, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"admin-hub/utils/validator"
)

// Config holds the application configuration
type Config struct {
	BackendURL         string        `validate:"required,url"`
	Port               string        `validate:"required,numeric"`
	Environment        string        `validate:"required"`
	BackendTimeout     time.Duration `validate:"gt=0"`
	SessionFallbackTTL time.Duration `validate:"gt=0"`
	ProtectedPrefix    string        `validate:"required,url_prefix,ne=/"`
	LoginPath          string        `validate:"required,url_prefix"`
	OrgCacheSize       int           `validate:"gt=0"`
	OrgCacheTTL        time.Duration `validate:"gt=0"`
	CSRFSecret         string        `validate:"required_unless=Environment development"`
	InternalAuthSecret string
	LoginRatePerMin    int `validate:"gt=0"`
	LoginBurst         int `validate:"gt=0"`
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	config := &Config{
		BackendURL:         strings.TrimSuffix(getEnv("BACKEND_URL", "http://backend:8000/api/v1"), "/"),
		Port:               getEnv("PORT", "8080"),
		Environment:        getEnv("APP_ENV", "production"),
		ProtectedPrefix:    getEnv("PROTECTED_PREFIX", "/admin"),
		LoginPath:          getEnv("LOGIN_PATH", "/login"),
		CSRFSecret:         getEnv("CSRF_SECRET", ""),
		InternalAuthSecret: getEnv("INTERNAL_AUTH_SECRET", ""),
	}

	durations := []struct {
		key      string
		fallback time.Duration
		dst      *time.Duration
	}{
		{"BACKEND_TIMEOUT", 5 * time.Second, &config.BackendTimeout},
		{"SESSION_FALLBACK_TTL", 15 * time.Minute, &config.SessionFallbackTTL},
		{"ORG_CACHE_TTL", 10 * time.Minute, &config.OrgCacheTTL},
	}
	for _, d := range durations {
		v, err := getDuration(d.key, d.fallback)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	ints := []struct {
		key      string
		fallback int
		dst      *int
	}{
		{"ORG_CACHE_SIZE", 256, &config.OrgCacheSize},
		{"LOGIN_RATE_PER_MIN", 10, &config.LoginRatePerMin},
		{"LOGIN_BURST", 5, &config.LoginBurst},
	}
	for _, i := range ints {
		v, err := getInt(i.key, i.fallback)
		if err != nil {
			return nil, err
		}
		*i.dst = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validator.New().Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	// The login page must stay reachable without a session.
	prefix := strings.TrimSuffix(c.ProtectedPrefix, "/")
	if c.LoginPath == prefix || strings.HasPrefix(c.LoginPath, prefix+"/") {
		return fmt.Errorf("invalid configuration: LOGIN_PATH %q lies under PROTECTED_PREFIX %q", c.LoginPath, c.ProtectedPrefix)
	}
	return nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s format: %w", key, err)
	}
	return n, nil
}

// getEnv retrieves an environment variable or returns a fallback value
func getEnv(key, fallback string) string {
	// Check for _FILE suffix
	if fileValue := os.Getenv(key + "_FILE"); fileValue != "" {
		content, err := os.ReadFile(fileValue)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

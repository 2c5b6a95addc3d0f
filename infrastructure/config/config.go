package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration, loaded from the environment
// with an optional .env file for development.
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// CORS
	CORSAllowedOrigins []string

	// Supabase backend. The service key is server-side only and must never
	// reach a client; the anon key is what the front end uses directly.
	SupabaseURL        string
	SupabaseServiceKey string
	SupabaseAnonKey    string

	// Local state
	DataDir string

	// Content generation strategy: "template" is the only built-in.
	Generator string

	// Admin authentication
	JWTSecret string
	JWTIssuer string

	// Runtime-tunable settings file, watched when set
	RuntimeConfigPath string

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from the environment. A .env file in the
// working directory is merged in first when present.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:      getEnv("SERVER_ADDRESS", ":3001"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		SupabaseURL:        getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		SupabaseAnonKey:    getEnv("SUPABASE_ANON_KEY", ""),
		DataDir:            getEnv("DATA_DIR", "./data"),
		Generator:          getEnv("CONTENT_GENERATOR", "template"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "studymesh-backend"),
		RuntimeConfigPath:  getEnv("RUNTIME_CONFIG_PATH", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required configuration per environment.
func (c *Config) Validate() error {
	if c.Environment == "production" {
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.SupabaseURL == "" || c.SupabaseServiceKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required in production")
		}
	}
	if c.Generator != "template" {
		return fmt.Errorf("unknown content generator %q", c.Generator)
	}
	return nil
}

// HasSupabase reports whether the remote backend is configured. Without
// it the service runs against memory and the local state file only.
func (c *Config) HasSupabase() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

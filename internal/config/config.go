package config

import (
	"fmt"
	"os"
	"strconv"
)

// Storage backend names.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Counter  CounterConfig
	Store    StoreConfig
	Database DatabaseConfig
	Menu     MenuConfig
	Logger   LoggerConfig
}

// CounterConfig holds the takeaway counter's business rules and identity.
type CounterConfig struct {
	Name           string
	Address        string
	Phone          string
	OrderTag       string // prefix for generated order IDs
	OpenHour       int    // first pickup hour, inclusive
	CloseHour      int    // last pickup hour, exclusive
	MinLeadMinutes int
}

// StoreConfig holds order persistence configuration.
type StoreConfig struct {
	Backend string // "file" or "postgres"
	DataDir string // order and statistics files for the file backend
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// MenuConfig holds the catalogue source configuration. With no path and S3
// disabled, the built-in catalogue is used.
type MenuConfig struct {
	Path      string // local JSON catalogue file
	S3Enabled bool
	S3Bucket  string
	S3Region  string
	S3Key     string
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Counter: CounterConfig{
			Name:           getEnv("COUNTER_NAME", "BISTROT Zinal"),
			Address:        getEnv("COUNTER_ADDRESS", "Route de Zinal XX, 3961 Zinal"),
			Phone:          getEnv("COUNTER_PHONE", "+41XXXXXXXXX"),
			OrderTag:       getEnv("COUNTER_ORDER_TAG", "BZ"),
			OpenHour:       getEnvAsInt("COUNTER_OPEN_HOUR", 7),
			CloseHour:      getEnvAsInt("COUNTER_CLOSE_HOUR", 18),
			MinLeadMinutes: getEnvAsInt("COUNTER_MIN_LEAD_MINUTES", 30),
		},
		Store: StoreConfig{
			Backend: getEnv("STORE_BACKEND", BackendFile),
			DataDir: getEnv("STORE_DATA_DIR", "orders"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvAsInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Database:        getEnv("DB_NAME", "bistrot"),
			MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
			MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
		},
		Menu: MenuConfig{
			Path:      getEnv("MENU_PATH", ""),
			S3Enabled: getEnvAsBool("MENU_S3_ENABLED", false),
			S3Bucket:  getEnv("MENU_S3_BUCKET", ""),
			S3Region:  getEnv("MENU_S3_REGION", "eu-central-1"),
			S3Key:     getEnv("MENU_S3_KEY", "menu/catalogue.json"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Counter.OpenHour < 0 || c.Counter.OpenHour > 23 {
		return fmt.Errorf("invalid opening hour: %d", c.Counter.OpenHour)
	}

	if c.Counter.CloseHour < 1 || c.Counter.CloseHour > 24 {
		return fmt.Errorf("invalid closing hour: %d", c.Counter.CloseHour)
	}

	if c.Counter.OpenHour >= c.Counter.CloseHour {
		return fmt.Errorf("opening hour %d must be before closing hour %d", c.Counter.OpenHour, c.Counter.CloseHour)
	}

	if c.Counter.MinLeadMinutes < 0 {
		return fmt.Errorf("minimum lead minutes cannot be negative: %d", c.Counter.MinLeadMinutes)
	}

	if c.Counter.OrderTag == "" {
		return fmt.Errorf("order tag is required")
	}

	switch c.Store.Backend {
	case BackendFile:
		if c.Store.DataDir == "" {
			return fmt.Errorf("data directory is required for the file backend")
		}
	case BackendPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", c.Database.Port)
		}
		if c.Database.User == "" {
			return fmt.Errorf("database user is required")
		}
		if c.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if c.Database.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}
		if c.Database.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}
		if c.Database.MinConnections > c.Database.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	default:
		return fmt.Errorf("invalid store backend: %s (must be file or postgres)", c.Store.Backend)
	}

	if c.Menu.S3Enabled {
		if c.Menu.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when the S3 menu source is enabled")
		}
		if c.Menu.S3Region == "" {
			return fmt.Errorf("S3 region is required when the S3 menu source is enabled")
		}
		if c.Menu.S3Key == "" {
			return fmt.Errorf("S3 key is required when the S3 menu source is enabled")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

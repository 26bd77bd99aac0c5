package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"adminSeeder/internal/db"
	"adminSeeder/internal/password"
	"adminSeeder/models"
)

// Defaults for the bootstrap administrator account.
const (
	DefaultAdminUsername = "dortusnimely"
	DefaultAdminPassword = "dortusnimely"
	DefaultAdminRole     = models.RoleAdmin
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig
	Admin    AdminConfig
	Log      LogConfig
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Path        string // SQLite database file path
	AutoMigrate bool   // apply embedded migrations before seeding
}

// AdminConfig describes the account written by the seeder.
type AdminConfig struct {
	Username   string
	Password   string
	Role       string
	BcryptCost int
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string // debug, info, warn, error
}

// Load reads an optional .env file, then builds the configuration from
// environment variables falling back to the built-in defaults.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cost, err := getEnvInt("BCRYPT_COST", password.DefaultCost)
	if err != nil {
		return nil, err
	}
	migrate, err := getEnvBool("DB_AUTO_MIGRATE", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Path:        getEnv("DB_PATH", db.DefaultPath),
			AutoMigrate: migrate,
		},
		Admin: AdminConfig{
			Username:   getEnv("ADMIN_USERNAME", DefaultAdminUsername),
			Password:   getEnv("ADMIN_PASSWORD", DefaultAdminPassword),
			Role:       strings.ToLower(getEnv("ADMIN_ROLE", DefaultAdminRole)),
			BcryptCost: cost,
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the seeder cannot work without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Admin.Username) == "" {
		return fmt.Errorf("ADMIN_USERNAME must not be empty")
	}
	if c.Admin.Password == "" {
		return fmt.Errorf("ADMIN_PASSWORD must not be empty")
	}
	if len(c.Admin.Password) > password.MaxLength {
		return fmt.Errorf("ADMIN_PASSWORD must be at most %d bytes", password.MaxLength)
	}
	if !models.ValidRole(c.Admin.Role) {
		return fmt.Errorf("invalid ADMIN_ROLE %q", c.Admin.Role)
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
		}
		return b, nil
	}
	return defaultVal, nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s, AutoMigrate: %t, Admin: %s/%s, Password: *** (masked) ***}",
		c.Database.Path, c.Database.AutoMigrate, c.Admin.Username, c.Admin.Role)
}

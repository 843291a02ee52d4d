package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const devTokenSecret = "dev-secret-change-me"

// Config holds all application configuration.
type Config struct {
	BindAddr       string
	AllowedOrigins string
	Database       DatabaseConfig
	Auth           AuthConfig
	Admin          AdminConfig
	RedisURL       string
}

type DatabaseConfig struct {
	Driver string // "postgres" or "sqlite"
	URL    string
}

type AuthConfig struct {
	BcryptCost  int
	TokenSecret string
	TokenTTL    time.Duration
}

// AdminConfig is the optional bootstrap account; both fields or neither.
type AdminConfig struct {
	Username string
	Password string
}

func (a AdminConfig) Enabled() bool {
	return a.Username != ""
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load .env: %w", err)
		}
		log.Println("No .env file found, using environment only")
	}

	return FromEnv()
}

func FromEnv() (*Config, error) {
	bcryptCost, err := getEnvInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}

	tokenTTL, err := getEnvDuration("TOKEN_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BindAddr:       getEnv("BIND_ADDR", ""),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		Database: DatabaseConfig{
			Driver: getEnv("DATABASE_DRIVER", "postgres"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		Auth: AuthConfig{
			BcryptCost:  bcryptCost,
			TokenSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:    tokenTTL,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		RedisURL: getEnv("REDIS_URL", ""),
	}

	if cfg.BindAddr == "" {
		port := getEnv("PORT", "")
		if port == "" {
			port = "3000"
			log.Println("BIND_ADDR and PORT not set, defaulting to :3000")
		}
		cfg.BindAddr = ":" + port
	}

	if cfg.Auth.TokenSecret == "" && getEnv("GIN_MODE", "debug") == "debug" {
		log.Println("JWT_SECRET not set, using development secret")
		cfg.Auth.TokenSecret = devTokenSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if c.Database.Driver != "postgres" && c.Database.Driver != "sqlite" {
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}

	if c.Auth.TokenSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}

	if (c.Admin.Username == "") != (c.Admin.Password == "") {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return nil
}

// String masks secrets.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, DB: %s, Redis: %t, Admin: %t, Auth: *** (masked) ***}",
		c.BindAddr, c.Database.Driver, c.RedisURL != "", c.Admin.Enabled())
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

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

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

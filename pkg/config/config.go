package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Storage   StorageConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	// PublicBaseURL is the externally visible origin, used for local upload URLs
	PublicBaseURL string
}

// DatabaseConfig selects and addresses the job store
type DatabaseConfig struct {
	Driver     string // postgres, sqlite or memory
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

type RedisConfig struct {
	Addr     string
	Password string
}

// StorageConfig selects where company logos are kept
type StorageConfig struct {
	Driver      string // s3 or local
	AWSRegion   string
	AWSBucket   string
	S3PublicURL string
	Dir         string
}

type AuthConfig struct {
	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string
}

// RateLimitConfig bounds job submissions per client
type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	StorageS3    = "s3"
	StorageLocal = "local"
)

// DefaultConfig returns a configuration suitable for local development
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:          "8080",
			PublicBaseURL: "http://localhost:8080",
		},
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			Host:       "localhost",
			Port:       "5432",
			SQLitePath: "nerdyjobs.db",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Driver: StorageS3,
			Dir:    "uploads",
		},
		RateLimit: RateLimitConfig{
			Max:    5,
			Window: time.Hour,
		},
		LogLevel: "info",
	}
}

// Load reads envFile (if present) into the process environment and
// overlays every set variable on the defaults
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	cfg := DefaultConfig()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("PORT", &c.Server.Port)
	str("PUBLIC_BASE_URL", &c.Server.PublicBaseURL)

	str("DB_DRIVER", &c.Database.Driver)
	str("DB_HOST", &c.Database.Host)
	str("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASS", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	str("SQLITE_PATH", &c.Database.SQLitePath)

	str("REDIS_ADDR", &c.Redis.Addr)
	str("REDIS_PASS", &c.Redis.Password)

	str("STORAGE_DRIVER", &c.Storage.Driver)
	str("AWS_REGION", &c.Storage.AWSRegion)
	str("AWS_BUCKET", &c.Storage.AWSBucket)
	str("S3_PUBLIC_URL", &c.Storage.S3PublicURL)
	str("STORAGE_DIR", &c.Storage.Dir)

	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("ADMIN_EMAIL", &c.Auth.AdminEmail)
	str("ADMIN_PASSWORD_HASH", &c.Auth.AdminPasswordHash)

	str("LOG_LEVEL", &c.LogLevel)

	if v, ok := lookup("SUBMISSION_RATE_LIMIT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SUBMISSION_RATE_LIMIT: %w", err)
		}
		c.RateLimit.Max = n
	}
	if v, ok := lookup("SUBMISSION_RATE_WINDOW"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SUBMISSION_RATE_WINDOW: %w", err)
		}
		c.RateLimit.Window = d
	}

	c.Database.Driver = strings.ToLower(c.Database.Driver)
	c.Storage.Driver = strings.ToLower(c.Storage.Driver)
	return nil
}

// PostgresDSN builds the lib/pq connection string
func (d DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("port is required")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case StorageS3:
		if c.Storage.AWSBucket == "" {
			return fmt.Errorf("AWS_BUCKET is required for the s3 storage driver")
		}
	case StorageLocal:
		if c.Storage.Dir == "" {
			return fmt.Errorf("STORAGE_DIR is required for the local storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	if c.RateLimit.Max <= 0 {
		return fmt.Errorf("submission rate limit must be positive")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("submission rate window must be positive")
	}

	return nil
}

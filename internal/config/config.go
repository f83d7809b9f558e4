package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// DefaultGenres seed an empty genres table.
var DefaultGenres = []string{
	"Action", "Animation", "Comedy", "Documentary", "Drama",
	"Fantasy", "Horror", "Romance", "Science Fiction", "Thriller",
}

// Config holds all runtime configuration values.
type Config struct {
	AppPort        string
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	DBLogLevel     string
	JWTSecret      string
	SessionTTL     time.Duration
	BcryptCost     int
	RabbitMQURL    string // empty disables event publishing
	SeedGenres     []string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:moviedb.sqlite?_foreign_keys=on")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "change_me")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_GENRES", DefaultGenres)
}

// LoadDotEnv copies variables from .env style files into the process
// environment. Variables that are already set are kept; missing files are skipped.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Load reads configuration from the environment and, when CONFIG_FILE is
// set, from that file. Environment variables win over the file.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DBLogLevel:     strings.ToLower(v.GetString("DB_LOG_LEVEL")),
		JWTSecret:      v.GetString("JWT_SECRET"),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		SeedGenres:     v.GetStringSlice("SEED_GENRES"),
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}

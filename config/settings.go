package config

import (
	"fmt"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Settings holds the process configuration, read from the environment after
// an optional .env file has been loaded.
type Settings struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	DebugSQL    bool   `env:"DEBUG_SQL" env-default:"false"`
	LogFile     string `env:"LOG_FILE" env-default:"logs/knowledge.log"`

	Database DatabaseSettings

	// DotenvLoaded reports whether a .env file was found.
	DotenvLoaded bool
}

// DatabaseSettings selects and addresses the relational store.
type DatabaseSettings struct {
	Driver   string `env:"DB_DRIVER" env-default:"mysql"`
	Host     string `env:"DB_HOST" env-default:"127.0.0.1"`
	Port     string `env:"DB_PORT"`
	Database string `env:"DB_DATABASE" env-default:"knowledge"`
	Username string `env:"DB_USERNAME" env-default:"knowledge"`
	Password string `env:"DB_PASSWORD"`
	// Path is the sqlite database file (or a file: URI).
	Path string `env:"DB_PATH" env-default:"knowledge.db"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Option adjusts Settings after the environment has been read and before
// driver defaults are applied.
type Option func(*Settings)

// WithDriver overrides DB_DRIVER when driver is not empty.
func WithDriver(driver string) Option {
	return func(s *Settings) {
		if driver != "" {
			s.Database.Driver = driver
		}
	}
}

// Load reads .env (if present) and the environment into Settings.
func Load(opts ...Option) (*Settings, error) {
	loaded := godotenv.Load() == nil

	var settings Settings
	if err := cleanenv.ReadEnv(&settings); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	settings.DotenvLoaded = loaded
	for _, opt := range opts {
		opt(&settings)
	}

	if err := settings.normalize(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// IsProduction reports whether ENVIRONMENT is production.
func (s *Settings) IsProduction() bool {
	return s.Environment == "production"
}

func (s *Settings) normalize() error {
	s.Environment = strings.ToLower(strings.TrimSpace(s.Environment))
	s.Database.Driver = strings.ToLower(strings.TrimSpace(s.Database.Driver))

	switch s.Database.Driver {
	case DriverMySQL:
		if s.Database.Port == "" {
			s.Database.Port = "3306"
		}
	case DriverPostgres:
		if s.Database.Port == "" {
			s.Database.Port = "5432"
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", s.Database.Driver)
	}
	return nil
}

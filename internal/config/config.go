// Package config provides configuration for the application.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

var (
	// ErrDBUriNotSetInProduction is returned when DB_URI is not set in production. A production deployment must never
	// fall back to a scratch database file in the working directory.
	ErrDBUriNotSetInProduction = errors.New("DB_URI must be set in production")
	// ErrInvalidLeaderboardSize is returned when LEADERBOARD_SIZE is smaller than one.
	ErrInvalidLeaderboardSize = errors.New("LEADERBOARD_SIZE must be at least 1")
	// ErrInvalidSessionTTL is returned when SESSION_TTL is not positive.
	ErrInvalidSessionTTL = errors.New("SESSION_TTL must be positive")
)

const (
	// AppEnvironmentDefault is the default application environment.
	AppEnvironmentDefault = "development"
	// AppEnvironmentProduction is the value of APP_ENV that enables production behavior.
	AppEnvironmentProduction = "production"
	// HostDefault is the default host to listen on. Can be an IP address or hostname.
	HostDefault = "localhost"
	// PortDefault is the default port to listen on.
	PortDefault = "8080"

	// DBDriverDefault is the default database driver. Only sqlite is supported.
	DBDriverDefault = "sqlite"
	// DBURIDefault is the default database URI. Default is quizgame.sqlite in the current directory.
	DBURIDefault = "file:quizgame.sqlite?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	// DBMaxOpenConnsDefault is the default maximum number of open database connections.
	DBMaxOpenConnsDefault = 10
	// DBMaxIdleConnsDefault is the default maximum number of idle database connections.
	DBMaxIdleConnsDefault = 10
	// DBConnMaxLifetimeDefault is the default maximum lifetime of a database connection.
	DBConnMaxLifetimeDefault = 5 * time.Minute

	// SessionTTLDefault is how long an idle quiz session is kept in memory.
	SessionTTLDefault = 30 * time.Minute
	// LeaderboardSizeDefault is the number of entries shown on the leaderboard.
	LeaderboardSizeDefault = 10
	// SeedOnEmptyDefault controls whether an empty question table is seeded at startup.
	SeedOnEmptyDefault = true
)

// Config represents the application configuration.
type Config struct {
	AppEnvironment string

	Host string
	Port string

	DBDriver string
	DBURI    string

	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration

	SessionTTL      time.Duration
	LeaderboardSize int

	SeedOnEmpty bool
	// SeedFile is a JSON question bank. Empty means the embedded bank.
	SeedFile string
}

// IsProduction reports whether the application runs in production.
func (c *Config) IsProduction() bool {
	return c.AppEnvironment == AppEnvironmentProduction
}

// Parse parses environment variables into the config.
func Parse(getenv func(string) string) (*Config, error) {
	c := Config{
		AppEnvironment:    AppEnvironmentDefault,
		Host:              HostDefault,
		Port:              PortDefault,
		DBDriver:          DBDriverDefault,
		DBURI:             DBURIDefault,
		DBMaxOpenConns:    DBMaxOpenConnsDefault,
		DBMaxIdleConns:    DBMaxIdleConnsDefault,
		DBConnMaxLifetime: DBConnMaxLifetimeDefault,
		SessionTTL:        SessionTTLDefault,
		LeaderboardSize:   LeaderboardSizeDefault,
		SeedOnEmpty:       SeedOnEmptyDefault,
	}
	// Overwrite defaults with environment variables.
	if val := getenv("APP_ENV"); val != "" {
		c.AppEnvironment = val
	}
	if val := getenv("HOST"); val != "" {
		c.Host = val
	}
	if val := getenv("PORT"); val != "" {
		c.Port = val
	}
	if val := getenv("DB_URI"); val != "" {
		c.DBURI = val
	}
	if val := getenv("SEED_FILE"); val != "" {
		c.SeedFile = val
	}

	// Strict validation for types
	var err error
	if val := getenv("DB_MAX_OPEN_CONNS"); val != "" {
		if c.DBMaxOpenConns, err = strconv.Atoi(val); err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %q, err: %w", val, err)
		}
	}
	if val := getenv("DB_MAX_IDLE_CONNS"); val != "" {
		if c.DBMaxIdleConns, err = strconv.Atoi(val); err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %q, err: %w", val, err)
		}
	}
	if val := getenv("DB_CONN_MAX_LIFETIME"); val != "" {
		if c.DBConnMaxLifetime, err = time.ParseDuration(val); err != nil {
			return nil, fmt.Errorf("invalid DB_CONN_MAX_LIFETIME: %q, err: %w", val, err)
		}
	}
	if val := getenv("SESSION_TTL"); val != "" {
		if c.SessionTTL, err = time.ParseDuration(val); err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL: %q, err: %w", val, err)
		}
		if c.SessionTTL <= 0 {
			return nil, fmt.Errorf("%w: got %s", ErrInvalidSessionTTL, c.SessionTTL)
		}
	}
	if val := getenv("LEADERBOARD_SIZE"); val != "" {
		if c.LeaderboardSize, err = strconv.Atoi(val); err != nil {
			return nil, fmt.Errorf("invalid LEADERBOARD_SIZE: %q, err: %w", val, err)
		}
		if c.LeaderboardSize < 1 {
			return nil, fmt.Errorf("%w: got %d", ErrInvalidLeaderboardSize, c.LeaderboardSize)
		}
	}
	if val := getenv("SEED_ON_EMPTY"); val != "" {
		if c.SeedOnEmpty, err = strconv.ParseBool(val); err != nil {
			return nil, fmt.Errorf("invalid SEED_ON_EMPTY: %q, err: %w", val, err)
		}
	}

	// Mandatory fields
	if c.IsProduction() && getenv("DB_URI") == "" {
		return nil, ErrDBUriNotSetInProduction
	}

	return &c, nil
}

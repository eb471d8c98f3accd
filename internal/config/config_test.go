package config_test

import (
	"errors"
	"testing"
	"time"

	. "github.com/starquake/quizgame/internal/config"
)

func testEnv() map[string]string {
	return map[string]string{
		"APP_ENV":              "test",
		"HOST":                 "127.0.0.1",
		"PORT":                 "9090",
		"DB_URI":               "file:test.sqlite",
		"DB_MAX_OPEN_CONNS":    "100",
		"DB_MAX_IDLE_CONNS":    "200",
		"DB_CONN_MAX_LIFETIME": "10m",
		"SESSION_TTL":          "1h",
		"LEADERBOARD_SIZE":     "25",
		"SEED_ON_EMPTY":        "false",
		"SEED_FILE":            "questions.json",
	}
}

func getenvOverride(key, value string) func(string) string {
	envs := testEnv()

	return func(k string) string {
		if k == key {
			return value
		}

		return envs[k]
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("parse config", func(t *testing.T) {
		t.Parallel()

		envs := testEnv()
		c, err := Parse(func(key string) string { return envs[key] })
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if got, want := c.AppEnvironment, envs["APP_ENV"]; got != want {
			t.Errorf("AppEnvironment = %q, want %q", got, want)
		}
		if got, want := c.Host, envs["HOST"]; got != want {
			t.Errorf("Host = %q, want %q", got, want)
		}
		if got, want := c.Port, envs["PORT"]; got != want {
			t.Errorf("Port = %q, want %q", got, want)
		}
		if got, want := c.DBURI, envs["DB_URI"]; got != want {
			t.Errorf("DBURI = %q, want %q", got, want)
		}
		if got, want := c.DBMaxOpenConns, 100; got != want {
			t.Errorf("DBMaxOpenConns = %d, want %d", got, want)
		}
		if got, want := c.DBConnMaxLifetime, 10*time.Minute; got != want {
			t.Errorf("DBConnMaxLifetime = %v, want %v", got, want)
		}
		if got, want := c.SessionTTL, time.Hour; got != want {
			t.Errorf("SessionTTL = %v, want %v", got, want)
		}
		if got, want := c.LeaderboardSize, 25; got != want {
			t.Errorf("LeaderboardSize = %d, want %d", got, want)
		}
		if c.SeedOnEmpty {
			t.Error("SeedOnEmpty = true, want false")
		}
		if got, want := c.SeedFile, "questions.json"; got != want {
			t.Errorf("SeedFile = %q, want %q", got, want)
		}
		if c.IsProduction() {
			t.Error("IsProduction() = true, want false")
		}
	})

	t.Run("fallback values", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			key    string
			wantFn func(c Config) bool
		}{
			{"fallback App Environment", "APP_ENV", func(c Config) bool { return c.AppEnvironment == AppEnvironmentDefault }},
			{"fallback Host", "HOST", func(c Config) bool { return c.Host == HostDefault }},
			{"fallback Port", "PORT", func(c Config) bool { return c.Port == PortDefault }},
			{"fallback DB URI", "DB_URI", func(c Config) bool { return c.DBURI == DBURIDefault }},
			{"fallback Max Open Connections", "DB_MAX_OPEN_CONNS", func(c Config) bool {
				return c.DBMaxOpenConns == DBMaxOpenConnsDefault
			}},
			{"fallback Max Idle Connections", "DB_MAX_IDLE_CONNS", func(c Config) bool {
				return c.DBMaxIdleConns == DBMaxIdleConnsDefault
			}},
			{"fallback Connection Max Lifetime", "DB_CONN_MAX_LIFETIME", func(c Config) bool {
				return c.DBConnMaxLifetime == DBConnMaxLifetimeDefault
			}},
			{"fallback Session TTL", "SESSION_TTL", func(c Config) bool { return c.SessionTTL == SessionTTLDefault }},
			{"fallback Leaderboard Size", "LEADERBOARD_SIZE", func(c Config) bool {
				return c.LeaderboardSize == LeaderboardSizeDefault
			}},
			{"fallback Seed On Empty", "SEED_ON_EMPTY", func(c Config) bool { return c.SeedOnEmpty == SeedOnEmptyDefault }},
			{"fallback Seed File", "SEED_FILE", func(c Config) bool { return c.SeedFile == "" }},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				c, err := Parse(getenvOverride(tt.key, ""))
				if err != nil {
					t.Fatalf("error parsing config: %v", err)
				}
				if !tt.wantFn(*c) {
					t.Errorf("unexpected fallback for %s: %+v", tt.key, c)
				}
			})
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			getenv func(string) string
		}{
			{"DB_MAX_OPEN_CONNS is not an int", getenvOverride("DB_MAX_OPEN_CONNS", "One")},
			{"DB_MAX_IDLE_CONNS is not an int", getenvOverride("DB_MAX_IDLE_CONNS", "Two")},
			{"DB_CONN_MAX_LIFETIME is not a duration", getenvOverride("DB_CONN_MAX_LIFETIME", "Three")},
			{"SESSION_TTL is not a duration", getenvOverride("SESSION_TTL", "forever")},
			{"SESSION_TTL is zero", getenvOverride("SESSION_TTL", "0s")},
			{"LEADERBOARD_SIZE is not an int", getenvOverride("LEADERBOARD_SIZE", "ten")},
			{"LEADERBOARD_SIZE is zero", getenvOverride("LEADERBOARD_SIZE", "0")},
			{"SEED_ON_EMPTY is not a bool", getenvOverride("SEED_ON_EMPTY", "maybe")},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				if _, err := Parse(tt.getenv); err == nil {
					t.Fatal("expected error parsing config")
				}
			})
		}
	})

	t.Run("leaderboard size below one", func(t *testing.T) {
		t.Parallel()

		_, err := Parse(getenvOverride("LEADERBOARD_SIZE", "-3"))
		if got, want := err, ErrInvalidLeaderboardSize; !errors.Is(got, want) {
			t.Fatalf("got error %v, want %v", got, want)
		}
	})

	t.Run("empty DB URI in production", func(t *testing.T) {
		t.Parallel()

		getenv := func(key string) string {
			envs := map[string]string{
				"APP_ENV": "production", // Notice: testing for production
				"DB_URI":  "",           // Notice: empty DB URI
			}

			return envs[key]
		}

		_, err := Parse(getenv)
		if got, want := err, ErrDBUriNotSetInProduction; !errors.Is(got, want) {
			t.Fatalf("got error %v, want %v", got, want)
		}
	})

	t.Run("production", func(t *testing.T) {
		t.Parallel()

		c, err := Parse(getenvOverride("APP_ENV", "production"))
		if err != nil {
			t.Fatalf("error parsing config: %v", err)
		}
		if !c.IsProduction() {
			t.Error("IsProduction() = false, want true")
		}
	})
}

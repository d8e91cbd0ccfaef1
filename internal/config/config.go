package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root of the configuration tree. Values come from three
// layers, each overriding the previous one: built-in defaults, the YAML
// file named by CONFIG_PATH (config.yml by default, optional), and
// environment variables.
type Config struct {
	Profile   string      `yaml:"profile"`
	Server    Server      `yaml:"server"`
	Database  Database    `yaml:"database"`
	Auth      Auth        `yaml:"auth"`
	CORS      CORS        `yaml:"cors"`
	RateLimit RateLimit   `yaml:"rate_limit"`
	Log       Log         `yaml:"log"`
	Menu      []MenuEntry `yaml:"menu"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type Database struct {
	// Driver is "sqlite" (embedded, the dev default) or "postgres".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type Auth struct {
	Enabled bool   `yaml:"enabled"`
	Secret  string `yaml:"secret"`
	// Token validity in seconds; the remember-me variant is used when a
	// login asks for it.
	TokenValiditySeconds    int64 `yaml:"token_validity_seconds"`
	RememberValiditySeconds int64 `yaml:"remember_validity_seconds"`
}

type CORS struct {
	Origins []string `yaml:"origins"`
}

type RateLimit struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type Log struct {
	Level string `yaml:"level"`
}

// MenuEntry overrides one row of the entities menu. Route, label key and
// API path are derived from the name.
type MenuEntry struct {
	Name string `yaml:"name"`
	Icon string `yaml:"icon"`
}

// Default returns the dev-profile configuration: embedded SQLite and an
// open API, so a checkout runs with no setup.
func Default() Config {
	return Config{
		Profile: "dev",
		Server:  Server{Addr: ":8080"},
		Database: Database{
			Driver: "sqlite",
			DSN:    "file:bookmanagerrmh2.db",
		},
		Auth: Auth{
			Enabled:                 false,
			TokenValiditySeconds:    86400,
			RememberValiditySeconds: 2592000,
		},
		CORS:      CORS{Origins: []string{"http://localhost:9000"}},
		RateLimit: RateLimit{Enabled: false, RPS: 50, Burst: 100},
		Log:       Log{Level: "debug"},
	}
}

// Load builds the effective configuration. A missing YAML file is fine;
// a malformed one is not.
func Load() (Config, error) {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := Default()

	path := getEnv("CONFIG_PATH", "config.yml")
	if raw, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Profile = getEnv("PROFILE", c.Profile)
	c.Server.Addr = getEnv("APP_ADDR", c.Server.Addr)
	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_DSN", c.Database.DSN)
	c.Auth.Secret = getEnv("JWT_SECRET", c.Auth.Secret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	if v := os.Getenv("AUTH_ENABLED"); v != "" {
		c.Auth.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORS.Origins = splitAndTrim(v)
	}
	if v := os.Getenv("RATE_LIMIT_ENABLED"); v != "" {
		c.RateLimit.Enabled, _ = strconv.ParseBool(v)
	}
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	// The prod profile never runs an open API.
	if c.Profile == "prod" {
		c.Auth.Enabled = true
	}
	if c.Auth.Enabled && c.Auth.Secret == "" {
		return fmt.Errorf("auth is enabled but JWT_SECRET is not set")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Package config loads application settings from defaults, an optional YAML
// file and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and addresses the event store.
type DatabaseConfig struct {
	// Driver is one of postgres, mongo or memory. Empty means derive it
	// from the URL scheme.
	Driver string `yaml:"driver"`
	// URL is a full connection string. When empty, the PostgreSQL DSN is
	// assembled from the individual fields below.
	URL string `yaml:"url"`
	// Name is the MongoDB database name.
	Name string `yaml:"name"`

	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// Config is the top-level application configuration.
type Config struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	// FrontendURLs are the origins allowed by CORS.
	FrontendURLs []string `yaml:"frontend_urls"`

	LogLevel string `yaml:"log_level"`

	// APIURL is the base URL the client and UI talk to.
	APIURL string `yaml:"api_url"`

	Database DatabaseConfig `yaml:"database"`
}

// Default returns the local-development configuration.
func Default() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         "5000",
		FrontendURLs: []string{"http://localhost:5173"},
		LogLevel:     "info",
		APIURL:       "http://localhost:5000",
		Database: DatabaseConfig{
			Name:     "event_calendar",
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "eventcalendar",
			SSLMode:  "disable",
		},
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// DSN returns the database connection string, building a libpq-style DSN
// from the parts when no URL is configured.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Load builds a Config from defaults, then the YAML file at path (if path
// is non-empty and the file exists), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Host, "HOST")
	setString(&cfg.Port, "PORT")
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.APIURL, "API_URL")
	if v := os.Getenv("FRONTEND_URL"); v != "" {
		cfg.FrontendURLs = splitList(v)
	}

	db := &cfg.Database
	setString(&db.Driver, "DB_DRIVER")
	setString(&db.URL, "MONGODB_URI")
	setString(&db.URL, "DATABASE_URL")
	setString(&db.Name, "MONGODB_DB")
	setString(&db.Host, "DB_HOST")
	setString(&db.Port, "DB_PORT")
	setString(&db.User, "DB_USER")
	setString(&db.Password, "DB_PASSWORD")
	setString(&db.DBName, "DB_NAME")
	setString(&db.SSLMode, "DB_SSLMODE")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalize fills derived values and rejects unusable settings.
func (c *Config) normalize() error {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == "" {
		c.Port = "5000"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = driverFromURL(c.Database.URL)
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverMemory:
	case DriverMongo:
		if c.Database.URL == "" {
			return errors.New("config: mongo driver requires MONGODB_URI or DATABASE_URL")
		}
		if c.Database.Name == "" {
			c.Database.Name = "event_calendar"
		}
	default:
		return fmt.Errorf("config: unknown database driver %q", c.Database.Driver)
	}
	return nil
}

func driverFromURL(raw string) string {
	if raw == "" {
		return DriverPostgres
	}
	u, err := url.Parse(raw)
	if err != nil {
		return DriverPostgres
	}
	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return DriverMongo
	case "memory":
		return DriverMemory
	default:
		return DriverPostgres
	}
}

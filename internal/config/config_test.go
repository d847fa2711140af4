package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/event-calendar/internal/config"
)

var envKeys = []string{
	"HOST", "PORT", "LOG_LEVEL", "API_URL", "FRONTEND_URL",
	"DB_DRIVER", "DATABASE_URL", "MONGODB_URI", "MONGODB_DB",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Addr() != "0.0.0.0:5000" {
		t.Errorf("addr = %s", cfg.Addr())
	}
	if cfg.Database.Driver != config.DriverPostgres {
		t.Errorf("driver = %s", cfg.Database.Driver)
	}
	if len(cfg.FrontendURLs) != 1 || cfg.FrontendURLs[0] != "http://localhost:5173" {
		t.Errorf("frontend urls = %v", cfg.FrontendURLs)
	}
	want := "host=localhost port=5432 user=postgres password=postgres dbname=eventcalendar sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("dsn = %q", got)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	writeFile(t, path, `
port: "7000"
log_level: debug
frontend_urls: ["https://cal.example.com"]
database:
  url: mongodb://db.example.com:27017
`)
	t.Setenv("PORT", "8081")
	t.Setenv("FRONTEND_URL", "https://a.example.com, https://b.example.com")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8081" {
		t.Errorf("env must override file: port = %s", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("log level = %s", cfg.LogLevel)
	}
	if len(cfg.FrontendURLs) != 2 || cfg.FrontendURLs[1] != "https://b.example.com" {
		t.Errorf("frontend urls = %v", cfg.FrontendURLs)
	}
	if cfg.Database.Driver != config.DriverMongo {
		t.Errorf("driver = %s, want derived mongo", cfg.Database.Driver)
	}
	if cfg.Database.Name != "event_calendar" {
		t.Errorf("mongo db name = %s", cfg.Database.Name)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %s", cfg.Port)
	}
}

func TestLoad_Rejects(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "sqlite")
	if _, err := config.Load(""); err == nil {
		t.Error("unknown driver accepted")
	}

	t.Setenv("DB_DRIVER", "mongo")
	if _, err := config.Load(""); err == nil {
		t.Error("mongo without a URL accepted")
	}

	t.Setenv("DB_DRIVER", "")
	path := filepath.Join(t.TempDir(), "broken.yaml")
	writeFile(t, path, "port: [")
	if _, err := config.Load(path); err == nil {
		t.Error("broken YAML accepted")
	}
}

func TestLoader_WatchReloads(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "calendar.yaml")
	writeFile(t, path, "log_level: info\n")

	l, err := config.NewLoader(path)
	if err != nil {
		t.Fatal(err)
	}
	changed := make(chan *config.Config, 4)
	l.OnChange(func(c *config.Config) { changed <- c })

	stop, err := l.Watch()
	if err != nil {
		t.Skipf("fsnotify unavailable: %v", err)
	}
	defer stop()

	writeFile(t, path, "log_level: debug\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.LogLevel == "debug" {
				if l.Config().LogLevel != "debug" {
					t.Error("Config() not updated after reload")
				}
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

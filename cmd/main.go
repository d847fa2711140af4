// cmd/main.go is the application entry point.
// It wires the sub-commands: the HTTP server, the terminal calendar and a
// scripting client for the API.
package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/Shivanand-hulikatti/event-calendar/internal/config"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "event-calendar",
		Usage: "Single-user event calendar: REST API, terminal UI and client.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file.",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			uiCommand(),
			eventsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Application failed", "error", err)
		os.Exit(1)
	}
}

// apiURL resolves the API base URL from --api-url, then config.
func apiURL(c *cli.Context) (string, error) {
	if c.IsSet("api-url") {
		return c.String("api-url"), nil
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return "", err
	}
	return cfg.APIURL, nil
}

func apiURLFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "api-url",
		Usage: "Base URL of the calendar API (default from API_URL or config).",
	}
}

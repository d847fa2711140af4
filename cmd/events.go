package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/Shivanand-hulikatti/event-calendar/internal/client"
	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
)

func eventsCommand() *cli.Command {
	return &cli.Command{
		Name:  "events",
		Usage: "Call the event API and print the JSON result.",
		Flags: []cli.Flag{apiURLFlag()},
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all events ordered by start.",
				Action: withClient(listEvents),
			},
			{
				Name:      "get",
				Usage:     "Show one event.",
				ArgsUsage: "ID",
				Action:    withClient(getEvent),
			},
			{
				Name:   "create",
				Usage:  "Create an event.",
				Flags:  eventFlags(true),
				Action: withClient(createEvent),
			},
			{
				Name:      "update",
				Usage:     "Change the given fields of an event.",
				ArgsUsage: "ID",
				Flags:     eventFlags(false),
				Action:    withClient(updateEvent),
			},
			{
				Name:      "delete",
				Usage:     "Delete an event.",
				ArgsUsage: "ID",
				Action:    withClient(deleteEvent),
			},
		},
	}
}

func eventFlags(required bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Required: required, Usage: "Event title (1-100 characters)."},
		&cli.StringFlag{Name: "description", Usage: "Optional description (up to 500 characters)."},
		&cli.StringFlag{Name: "start", Required: required, Usage: "Start, RFC 3339 or YYYY-MM-DD[ HH:MM]."},
		&cli.StringFlag{Name: "end", Required: required, Usage: "End, same formats as --start."},
		&cli.BoolFlag{Name: "all-day", Usage: "Mark as an all-day event."},
	}
}

// inputFromFlags sends only the flags the user set.
func inputFromFlags(c *cli.Context) model.EventInput {
	var in model.EventInput
	if c.IsSet("title") {
		in.Title = model.String(c.String("title"))
	}
	if c.IsSet("description") {
		in.Description = model.String(c.String("description"))
	}
	if c.IsSet("start") {
		in.Start = model.String(c.String("start"))
	}
	if c.IsSet("end") {
		in.End = model.String(c.String("end"))
	}
	if c.IsSet("all-day") {
		in.AllDay = model.Bool(c.Bool("all-day"))
	}
	return in
}

func withClient(fn func(*cli.Context, *client.Client) (any, error)) cli.ActionFunc {
	return func(c *cli.Context) error {
		base, err := apiURL(c)
		if err != nil {
			return err
		}
		out, err := fn(c, client.New(base))
		if err != nil {
			return cli.Exit(client.Message(err), 1)
		}
		buf, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(c.App.Writer, string(buf))
		return err
	}
}

func requireID(c *cli.Context) (string, error) {
	id := c.Args().First()
	if id == "" {
		return "", cli.Exit("missing event ID", 2)
	}
	return id, nil
}

func listEvents(c *cli.Context, api *client.Client) (any, error) {
	return api.List(c.Context)
}

func getEvent(c *cli.Context, api *client.Client) (any, error) {
	id, err := requireID(c)
	if err != nil {
		return nil, err
	}
	return api.Get(c.Context, id)
}

func createEvent(c *cli.Context, api *client.Client) (any, error) {
	return api.Create(c.Context, inputFromFlags(c))
}

func updateEvent(c *cli.Context, api *client.Client) (any, error) {
	id, err := requireID(c)
	if err != nil {
		return nil, err
	}
	return api.Update(c.Context, id, inputFromFlags(c))
}

func deleteEvent(c *cli.Context, api *client.Client) (any, error) {
	id, err := requireID(c)
	if err != nil {
		return nil, err
	}
	return api.Delete(c.Context, id)
}

package main

import (
	"github.com/urfave/cli/v2"

	"github.com/Shivanand-hulikatti/event-calendar/internal/client"
	"github.com/Shivanand-hulikatti/event-calendar/internal/ui"
)

func uiCommand() *cli.Command {
	return &cli.Command{
		Name:  "ui",
		Usage: "Open the interactive month calendar.",
		Flags: []cli.Flag{apiURLFlag()},
		Action: func(c *cli.Context) error {
			base, err := apiURL(c)
			if err != nil {
				return err
			}
			return ui.Run(client.New(base))
		},
	}
}

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/erikgeiser/promptkit/confirmation"
	"github.com/urfave/cli/v2"
	"leguru.net/keybindd/logger"
	"leguru.net/keybindd/rpc"
)

type ctl struct {
	client  *rpc.Client
	timeout time.Duration
	yes     bool
}

func (c *ctl) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}

// confirm asks before destructive commands unless --yes was given.
func (c *ctl) confirm(question string) (bool, error) {
	if c.yes {
		return true, nil
	}
	return confirmation.New(question, confirmation.No).RunPrompt()
}

func newApp(c *ctl) *cli.App {
	var server string
	return &cli.App{
		Name:  "keybindctl",
		Usage: "control a running keybindd",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "server",
				Aliases:     []string{"s"},
				Value:       "localhost:50051",
				Usage:       "Address of the keybindd rpc server",
				Destination: &server,
			},
			&cli.DurationFlag{
				Name:        "timeout",
				Value:       5 * time.Second,
				Destination: &c.timeout,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "Do not ask for confirmation",
				Destination: &c.yes,
			},
		},
		Before: func(cCtx *cli.Context) error {
			if c.client != nil {
				return nil
			}
			client, err := rpc.Dial(server)
			if err != nil {
				return fmt.Errorf("dial %s: %w", server, err)
			}
			c.client = client
			return nil
		},
		After: func(cCtx *cli.Context) error {
			if c.client != nil {
				return c.client.Close()
			}
			return nil
		},
		Commands: c.commands(),
	}
}

func main() {
	app := newApp(&ctl{})
	if err := app.Run(os.Args); err != nil {
		logger.Log().Fatal(err)
	}
}

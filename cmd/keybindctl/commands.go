package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/urfave/cli/v2"
	"leguru.net/keybindd/binding"
	"leguru.net/keybindd/profile"
	"leguru.net/keybindd/rpc"
	"leguru.net/keybindd/utils"
)

var errAborted = errors.New("aborted")

func argError(cCtx *cli.Context, want int) error {
	if cCtx.NArg() < want {
		return fmt.Errorf("need %d arguments, got %d", want, cCtx.NArg())
	}
	return nil
}

func parseMapRef(cCtx *cli.Context) (rpc.MapRef, error) {
	if err := argError(cCtx, 2); err != nil {
		return rpc.MapRef{}, err
	}
	id, err := profile.ParseID(cCtx.Args().Get(0))
	if err != nil {
		return rpc.MapRef{}, err
	}
	return rpc.MapRef{ProfileID: id, Map: cCtx.Args().Get(1)}, nil
}

func parseKeyRef(cCtx *cli.Context) (rpc.KeyRef, error) {
	if err := argError(cCtx, 3); err != nil {
		return rpc.KeyRef{}, err
	}
	ref, err := parseMapRef(cCtx)
	if err != nil {
		return rpc.KeyRef{}, err
	}
	key, err := utils.ParseKeyCode(cCtx.Args().Get(2))
	if err != nil {
		return rpc.KeyRef{}, err
	}
	return rpc.KeyRef{ProfileID: ref.ProfileID, Map: ref.Map, Key: key}, nil
}

// parseAction reads "<type> <value>" starting at argument n.
func parseAction(cCtx *cli.Context, n int) (profile.Action, error) {
	if err := argError(cCtx, n+2); err != nil {
		return profile.Action{}, err
	}
	t, err := profile.ParseActionType(cCtx.Args().Get(n))
	if err != nil {
		return profile.Action{}, err
	}
	a := profile.Action{Type: t, Value: cCtx.Args().Get(n + 1)}
	return a, a.Validate()
}

func parsePosition(cCtx *cli.Context, n int) (int, error) {
	if err := argError(cCtx, n+1); err != nil {
		return 0, err
	}
	return strconv.Atoi(cCtx.Args().Get(n))
}

func (c *ctl) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "hello",
			Usage: "show the daemon name and version",
			Action: func(cCtx *cli.Context) error {
				ctx, cancel := c.context()
				defer cancel()
				rep, err := c.client.SayHello(ctx, "keybindctl")
				if err != nil {
					return err
				}
				fmt.Fprintf(cCtx.App.Writer, "%s %s\n", rep.Name, rep.Version)
				return nil
			},
		},
		{
			Name:  "status",
			Usage: "show the session, pressed keys and layer warnings",
			Action: func(cCtx *cli.Context) error {
				ctx, cancel := c.context()
				defer cancel()
				st, err := c.client.GetStatus(ctx)
				if err != nil {
					return err
				}
				return printJSON(cCtx.App.Writer, st)
			},
		},
		c.profilesCommand(),
		c.mapsCommand(),
		c.actionsCommand(),
		c.ledsCommand(),
		c.matrixCommand(),
		c.macroCommand(),
	}
}

func (c *ctl) profilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "list and edit profiles",
		Subcommands: []*cli.Command{
			{
				Name: "list",
				Action: func(cCtx *cli.Context) error {
					ctx, cancel := c.context()
					defer cancel()
					profiles, err := c.client.GetProfiles(ctx)
					if err != nil {
						return err
					}
					active, err := c.client.GetActiveProfile(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, profilesTable(profiles, active.ID))
					return nil
				},
			},
			{
				Name:      "add",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "default-map", Value: profile.DefaultMapName},
				},
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					id, err := c.client.AddProfile(ctx, cCtx.Args().First(), cCtx.String("default-map"))
					if err != nil {
						return err
					}
					fmt.Fprintf(cCtx.App.Writer, "profile %d added\n", id)
					return nil
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<id>",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					id, err := profile.ParseID(cCtx.Args().First())
					if err != nil {
						return err
					}
					ok, err := c.confirm(fmt.Sprintf("Remove profile %d?", id))
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.RemoveProfile(ctx, id)
				},
			},
			{
				Name:      "use",
				ArgsUsage: "<id>",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					id, err := profile.ParseID(cCtx.Args().First())
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.SetActiveProfile(ctx, id)
				},
			},
		},
	}
}

func (c *ctl) mapsCommand() *cli.Command {
	return &cli.Command{
		Name:  "maps",
		Usage: "list, show and switch maps",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<profile>",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					id, err := profile.ParseID(cCtx.Args().First())
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					maps, err := c.client.GetMaps(ctx, id)
					if err != nil {
						return err
					}
					for _, m := range maps {
						fmt.Fprintln(cCtx.App.Writer, m)
					}
					return nil
				},
			},
			{
				Name:      "show",
				ArgsUsage: "<profile> <map>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					m, err := c.client.GetMap(ctx, ref.ProfileID, ref.Map)
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, bindingsTable(m.Binding))
					return nil
				},
			},
			{
				Name:      "add",
				ArgsUsage: "<profile> <map>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.AddMap(ctx, ref.ProfileID, ref.Map)
				},
			},
			{
				Name:      "use",
				ArgsUsage: "<map>",
				Usage:     "activate a map of the active profile",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.SetActiveMap(ctx, cCtx.Args().First())
				},
			},
		},
	}
}

func (c *ctl) actionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "actions",
		Usage: "edit the actions bound to a key",
		Subcommands: []*cli.Command{
			{
				Name:      "list",
				ArgsUsage: "<profile> <map> <key>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseKeyRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					actions, err := c.client.GetActions(ctx, ref)
					if err != nil {
						return err
					}
					fmt.Fprintln(cCtx.App.Writer, actionsTable(actions))
					return nil
				},
			},
			{
				Name:      "add",
				ArgsUsage: "<profile> <map> <key> <type> <value>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseKeyRef(cCtx)
					if err != nil {
						return err
					}
					action, err := parseAction(cCtx, 3)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					pos, err := c.client.AddAction(ctx, ref, action)
					if err != nil {
						return err
					}
					fmt.Fprintf(cCtx.App.Writer, "action %d added\n", pos)
					return nil
				},
			},
			{
				Name:      "update",
				ArgsUsage: "<profile> <map> <key> <position> <type> <value>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseKeyRef(cCtx)
					if err != nil {
						return err
					}
					pos, err := parsePosition(cCtx, 3)
					if err != nil {
						return err
					}
					action, err := parseAction(cCtx, 4)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.UpdateAction(ctx, ref, pos, action)
				},
			},
			{
				Name:      "remove",
				ArgsUsage: "<profile> <map> <key> <position>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseKeyRef(cCtx)
					if err != nil {
						return err
					}
					pos, err := parsePosition(cCtx, 3)
					if err != nil {
						return err
					}
					ok, err := c.confirm(fmt.Sprintf("Remove action %d of key %d?", pos, ref.Key))
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.RemoveAction(ctx, ref, pos)
				},
			},
			{
				Name:      "clear",
				ArgsUsage: "<profile> <map> <key>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseKeyRef(cCtx)
					if err != nil {
						return err
					}
					ok, err := c.confirm(fmt.Sprintf("Clear every action of key %d?", ref.Key))
					if err != nil {
						return err
					}
					if !ok {
						return errAborted
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.ClearActions(ctx, ref)
				},
			},
		},
	}
}

func (c *ctl) ledsCommand() *cli.Command {
	return &cli.Command{
		Name:  "leds",
		Usage: "read or set the profile LEDs of a map",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "<profile> <map>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					leds, err := c.client.GetProfileLEDs(ctx, ref)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, leds)
				},
			},
			{
				Name:      "set",
				ArgsUsage: "<profile> <map>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "red"},
					&cli.BoolFlag{Name: "green"},
					&cli.BoolFlag{Name: "blue"},
				},
				Action: func(cCtx *cli.Context) error {
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					leds := binding.LEDs{Red: cCtx.Bool("red"), Green: cCtx.Bool("green"), Blue: cCtx.Bool("blue")}
					return c.client.SetProfileLEDs(ctx, ref, leds)
				},
			},
		},
	}
}

func (c *ctl) matrixCommand() *cli.Command {
	return &cli.Command{
		Name:  "matrix",
		Usage: "read or set the colour matrix of a map",
		Subcommands: []*cli.Command{
			{
				Name:      "get",
				ArgsUsage: "<profile> <map>",
				Action: func(cCtx *cli.Context) error {
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					ctx, cancel := c.context()
					defer cancel()
					matrix, err := c.client.GetMatrix(ctx, ref)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, matrix)
				},
			},
			{
				Name:      "set",
				ArgsUsage: "<profile> <map> <file.json>",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 3); err != nil {
						return err
					}
					ref, err := parseMapRef(cCtx)
					if err != nil {
						return err
					}
					data, err := os.ReadFile(cCtx.Args().Get(2))
					if err != nil {
						return err
					}
					var matrix profile.Matrix
					if err := json.Unmarshal(data, &matrix); err != nil {
						return fmt.Errorf("matrix file: %w", err)
					}
					ctx, cancel := c.context()
					defer cancel()
					return c.client.SetMatrix(ctx, ref, matrix)
				},
			},
		},
	}
}

func (c *ctl) macroCommand() *cli.Command {
	return &cli.Command{
		Name:  "macro",
		Usage: "control macro recording",
		Subcommands: []*cli.Command{
			{
				Name: "on",
				Action: func(cCtx *cli.Context) error {
					ctx, cancel := c.context()
					defer cancel()
					rep, err := c.client.SetMacroMode(ctx, true)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, rep)
				},
			},
			{
				Name: "off",
				Action: func(cCtx *cli.Context) error {
					ctx, cancel := c.context()
					defer cancel()
					rep, err := c.client.SetMacroMode(ctx, false)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, rep)
				},
			},
			{
				Name:      "key",
				ArgsUsage: "<key|none>",
				Usage:     "record into key, clearing its actions in the active map",
				Action: func(cCtx *cli.Context) error {
					if err := argError(cCtx, 1); err != nil {
						return err
					}
					var key *int
					if arg := cCtx.Args().First(); arg != "none" {
						code, err := utils.ParseKeyCode(arg)
						if err != nil {
							return err
						}
						ok, err := c.confirm(fmt.Sprintf("Clear the actions of key %d and record into it?", code))
						if err != nil {
							return err
						}
						if !ok {
							return errAborted
						}
						key = &code
					}
					ctx, cancel := c.context()
					defer cancel()
					rep, err := c.client.SetMacroKey(ctx, key)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, rep)
				},
			},
		},
	}
}

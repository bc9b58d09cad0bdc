package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/core/command"
)

// PingCommand returns the ping command.
func PingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: "Check that the server is alive",
		Action: func(c *cli.Context) error {
			return run(c, 0, func([]string) command.Command { return command.Ping{} })
		},
	}
}

// SetCommand returns the set command.
func SetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Store a value under a key",
		ArgsUsage: "KEY VALUE",
		Action: func(c *cli.Context) error {
			return run(c, 2, func(args []string) command.Command {
				return command.Set{Key: args[0], Value: []byte(args[1])}
			})
		},
	}
}

// GetCommand returns the get command.
func GetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Fetch the value stored under a key",
		ArgsUsage: "KEY",
		Action: func(c *cli.Context) error {
			return run(c, 1, func(args []string) command.Command {
				return command.Get{Key: args[0]}
			})
		},
	}
}

// RawCommand returns the raw command, which sends its arguments unchanged.
func RawCommand() *cli.Command {
	return &cli.Command{
		Name:      "raw",
		Usage:     "Send arbitrary arguments as a command",
		ArgsUsage: "ARG...",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("raw: at least one argument required")
			}
			return run(c, c.NArg(), command.FromArgs)
		},
	}
}

// run checks the argument count, builds the command and prints the reply.
func run(c *cli.Context, nargs int, build func([]string) command.Command) error {
	if c.NArg() != nargs {
		return fmt.Errorf("%s: expected %d arguments, got %d", c.Command.Name, nargs, c.NArg())
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}
	return s.do(c.Context, build(c.Args().Slice()))
}

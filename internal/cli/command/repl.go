package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/repl"
	"github.com/yndnr/respkv/internal/core/command"
)

// ReplCommand returns the repl command. It is also the default action.
func ReplCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Start the interactive shell",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	if c.NArg() > 0 {
		return fmt.Errorf("unknown command %q", c.Args().First())
	}
	s, err := getSession(c)
	if err != nil {
		return err
	}

	in := c.App.Reader
	if in == nil {
		in = os.Stdin
	}
	shell := repl.New(s.eval, in, s.out, repl.WithHistory(repl.NewHistory(c.String("history-file"))))
	return shell.Run(c.Context)
}

// eval runs one shell line. connect switches servers, accepting a saved
// connection name; anything else is sent as a command.
func (s *session) eval(ctx context.Context, args []string) error {
	if strings.EqualFold(args[0], "connect") {
		if len(args) != 2 {
			return fmt.Errorf("usage: connect ADDR")
		}
		addr := s.cfg.Resolve(args[1])
		if _, err := s.mgr.Connect(ctx, addr); err != nil {
			return err
		}
		s.server = addr
		_, err := fmt.Fprintf(s.out, "connected to %s\n", addr)
		return err
	}
	return s.do(ctx, command.FromArgs(args))
}

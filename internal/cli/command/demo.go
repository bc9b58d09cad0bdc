package command

import (
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/core/command"
)

// demoScript exercises each reply kind, including the error for an
// unknown command.
var demoScript = [][]string{
	{"PING"},
	{"nonsense"},
	{"SET", "mykey", "hello"},
	{"GET", "mykey"},
}

// DemoCommand returns the demo command.
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:   "demo",
		Usage:  "Run a short script of commands and show each reply",
		Action: demoAction,
	}
}

func demoAction(c *cli.Context) error {
	s, err := getSession(c)
	if err != nil {
		return err
	}
	client, err := s.client(c.Context)
	if err != nil {
		return err
	}

	exchanges := make([]output.Exchange, 0, len(demoScript))
	for _, args := range demoScript {
		reply, err := client.Do(command.FromArgs(args))
		if err != nil {
			return err
		}
		exchanges = append(exchanges, output.Exchange{
			Command: strings.Join(args, " "),
			Reply:   output.FromReply(reply),
		})
	}
	return s.formatter.Format(s.out, exchanges)
}

package command

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/cli/config"
	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/cli/output"
	"github.com/yndnr/respkv/internal/cli/repl"
	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

// DefaultServer is the server address used when none is given.
const DefaultServer = "127.0.0.1:6379"

const sessionKey = "session"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "respkv-cli",
		Usage:   "command-line client for respkv-server",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			PingCommand(),
			SetCommand(),
			GetCommand(),
			RawCommand(),
			DemoCommand(),
			ReplCommand(),
		},
		Before: before,
		After:  after,
		Action: replAction,
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Usage:   "cli configuration file",
			EnvVars: []string{"RESPKV_CLI_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "server address (host:port, unix:/path/to/socket or a saved connection name)",
			EnvVars: []string{"RESPKV_SERVER"},
			Value:   DefaultServer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json, yaml",
			EnvVars: []string{"RESPKV_OUTPUT"},
			Value:   string(output.FormatText),
		},
		&cli.StringFlag{
			Name:    "history-file",
			Usage:   "shell history file, empty to disable",
			EnvVars: []string{"RESPKV_HISTORY_FILE"},
			Value:   repl.DefaultHistoryFile(),
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "per-request timeout, 0 to wait forever",
			Value: 5 * time.Second,
		},
	}
}

// session is the per-invocation state shared by the commands.
type session struct {
	cfg       *config.CLIConfig
	server    string
	mgr       *connection.Manager
	formatter output.Formatter
	out       io.Writer
}

func before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	server, outputFormat, timeout := cfg.DefaultServer, cfg.DefaultOutput, cfg.Timeout
	if c.IsSet("server") {
		server = c.String("server")
	}
	if c.IsSet("output") {
		outputFormat = c.String("output")
	}
	if c.IsSet("timeout") {
		timeout = c.Duration("timeout")
	}

	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]any)
	}
	c.App.Metadata[sessionKey] = &session{
		cfg:       cfg,
		server:    cfg.Resolve(server),
		mgr:       connection.NewManager(connection.WithTimeout(timeout)),
		formatter: output.NewFormatter(format),
		out:       c.App.Writer,
	}
	return nil
}

func after(c *cli.Context) error {
	if s, ok := c.App.Metadata[sessionKey].(*session); ok {
		return s.mgr.Close()
	}
	return nil
}

func getSession(c *cli.Context) (*session, error) {
	s, ok := c.App.Metadata[sessionKey].(*session)
	if !ok {
		return nil, fmt.Errorf("session not initialized")
	}
	return s, nil
}

// client returns the current client, connecting to the configured server
// on first use.
func (s *session) client(ctx context.Context) (*connection.Client, error) {
	if c, err := s.mgr.Current(); err == nil {
		return c, nil
	}
	return s.mgr.Connect(ctx, s.server)
}

// do sends cmd and prints the reply.
func (s *session) do(ctx context.Context, cmd command.Command) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}
	reply, err := client.Do(cmd)
	if err != nil {
		return err
	}
	return s.formatter.Format(s.out, output.FromReply(reply))
}

package config

import "time"

// CLIConfig is the configuration for respkv-cli.
type CLIConfig struct {
	DefaultServer string        `yaml:"default_server"`
	DefaultOutput string        `yaml:"default_output"` // text, json, yaml
	Timeout       time.Duration `yaml:"timeout"`

	// Connections maps a name to a server address.
	Connections map[string]string `yaml:"connections"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		DefaultServer: "127.0.0.1:6379",
		DefaultOutput: "text",
		Timeout:       5 * time.Second,
		Connections:   make(map[string]string),
	}
}

// Resolve returns the address saved under name, or name itself when no
// connection has that name.
func (c *CLIConfig) Resolve(name string) string {
	if addr, ok := c.Connections[name]; ok {
		return addr
	}
	return name
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultServer != "127.0.0.1:6379" {
		t.Errorf("DefaultServer = %q, want %q", cfg.DefaultServer, "127.0.0.1:6379")
	}
	if cfg.DefaultOutput != "text" {
		t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, "text")
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
	}
	if cfg.Connections == nil {
		t.Error("Connections should not be nil")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if !filepath.IsAbs(path) {
		t.Errorf("path %q should be absolute", path)
	}
	if filepath.Base(path) != "cli.yaml" || filepath.Base(filepath.Dir(path)) != ".respkv" {
		t.Errorf("path = %q, want .respkv/cli.yaml suffix", path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		wantServer string
		wantOutput string
		wantErr    bool
	}{
		{
			name:       "missing file",
			wantServer: "127.0.0.1:6379",
			wantOutput: "text",
		},
		{
			name:       "partial file keeps defaults",
			content:    "default_output: json\n",
			wantServer: "127.0.0.1:6379",
			wantOutput: "json",
		},
		{
			name:       "full file",
			content:    "default_server: unix:/tmp/respkv.sock\ndefault_output: yaml\ntimeout: 1s\n",
			wantServer: "unix:/tmp/respkv.sock",
			wantOutput: "yaml",
		},
		{
			name:    "invalid yaml",
			content: "default_server: [\n",
			wantErr: true,
		},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "cli-"+string(rune('a'+i))+".yaml")
			if tt.content != "" {
				if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
					t.Fatal(err)
				}
			}

			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.DefaultServer != tt.wantServer {
				t.Errorf("DefaultServer = %q, want %q", cfg.DefaultServer, tt.wantServer)
			}
			if cfg.DefaultOutput != tt.wantOutput {
				t.Errorf("DefaultOutput = %q, want %q", cfg.DefaultOutput, tt.wantOutput)
			}
			if cfg.Connections == nil {
				t.Error("Connections should not be nil")
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "cli.yaml")

	cfg := Default()
	cfg.DefaultServer = "10.0.0.1:6379"
	cfg.Connections["staging"] = "10.0.0.2:6379"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.DefaultServer != "10.0.0.1:6379" {
		t.Errorf("DefaultServer = %q", got.DefaultServer)
	}
	if got.Resolve("staging") != "10.0.0.2:6379" {
		t.Errorf("Resolve(staging) = %q", got.Resolve("staging"))
	}
}

func TestResolve(t *testing.T) {
	cfg := Default()
	cfg.Connections["local"] = "unix:/run/respkv.sock"

	tests := []struct {
		in, want string
	}{
		{"local", "unix:/run/respkv.sock"},
		{"127.0.0.1:7000", "127.0.0.1:7000"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := cfg.Resolve(tt.in); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

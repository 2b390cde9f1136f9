package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "none.yaml"))
	cfg, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.Scan.Jobs != 8 || cfg.Output.Format != "default" || cfg.Watch.Debounce != 200*time.Millisecond {
		t.Fatalf("scan/output/watch=%+v %+v %+v", cfg.Scan, cfg.Output, cfg.Watch)
	}
	if cfg.Daemon.Listen != "127.0.0.1:7347" || cfg.Daemon.MaxDocuments != 256 {
		t.Fatalf("daemon=%+v", cfg.Daemon)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("log=%+v", cfg.Log)
	}
}

func TestReadInMissingExplicitFile(t *testing.T) {
	v := NewViper(filepath.Join(t.TempDir(), "none.yaml"))
	if err := ReadIn(v); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "funcfold.yaml")
	body := "scan:\n  jobs: 2\n  exclude: [\"*.min.js\"]\noutput:\n  format: jsonl\nwatch:\n  debounce: 1s\n"
	if err := os.WriteFile(file, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FUNCFOLD_DAEMON_LISTEN", "127.0.0.1:9999")

	v := NewViper(file)
	if err := ReadIn(v); err != nil {
		t.Fatalf("ReadIn: %v", err)
	}
	cfg, err := New(v)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if cfg.Scan.Jobs != 2 || !reflect.DeepEqual(cfg.Scan.Exclude, []string{"*.min.js"}) {
		t.Fatalf("scan=%+v", cfg.Scan)
	}
	if cfg.Output.Format != "jsonl" || cfg.Watch.Debounce != time.Second {
		t.Fatalf("output=%+v watch=%+v", cfg.Output, cfg.Watch)
	}
	if cfg.Daemon.Listen != "127.0.0.1:9999" {
		t.Fatalf("listen=%q", cfg.Daemon.Listen)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Scan:   ScanConfig{Jobs: 1},
		Output: OutputConfig{Format: "csv"},
		Daemon: DaemonConfig{Listen: ":0", MaxDocuments: 1},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base: %v", err)
	}

	cases := []struct {
		key    string
		mutate func(*Config)
	}{
		{"scan.jobs", func(c *Config) { c.Scan.Jobs = 0 }},
		{"output.format", func(c *Config) { c.Output.Format = "xml" }},
		{"daemon.max_documents", func(c *Config) { c.Daemon.MaxDocuments = 0 }},
	}
	for _, tc := range cases {
		bad := base
		tc.mutate(&bad)
		err := bad.Validate()
		if err == nil || !strings.Contains(err.Error(), tc.key) {
			t.Fatalf("%s: err=%v", tc.key, err)
		}
	}
}

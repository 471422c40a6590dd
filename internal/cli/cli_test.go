package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"
)

func TestNew(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c == nil || c.Logger == nil {
		t.Fatal("New() should return a CLI with a logger")
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)

	c.Logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Error("debug message should be filtered at info level")
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("visible")
	if buf.Len() == 0 {
		t.Error("debug message should pass after SetLogLevel(LogDebug)")
	}
}

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "sparqlkit" {
		t.Errorf("Use = %q, want sparqlkit", root.Use)
	}
	if root.Version == "" {
		t.Error("root command should carry a version")
	}

	want := map[string]bool{
		"query":      false,
		"update":     false,
		"endpoints":  false,
		"serve-mock": false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("XDGConfigHome", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

		got, err := configPath()
		if err != nil {
			t.Fatalf("configPath() error = %v", err)
		}
		want := filepath.Join("/tmp/xdg-test", appName, configFileName)
		if got != want {
			t.Errorf("configPath() = %q, want %q", got, want)
		}
	})

	t.Run("HomeFallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/tester")

		got, err := configPath()
		if err != nil {
			t.Fatalf("configPath() error = %v", err)
		}
		want := filepath.Join("/home/tester", ".config", appName, configFileName)
		if got != want {
			t.Errorf("configPath() = %q, want %q", got, want)
		}
	})
}

package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeEndpointsFile writes content as the endpoints file inside a fresh
// XDG_CONFIG_HOME and returns its path.
func writeEndpointsFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, appName, configFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const testEndpointsTOML = `default = "local"

[endpoints.local]
url = "http://localhost:3030/ds/sparql"
update_url = "http://localhost:3030/ds/update"
timeout = "45s"
headers = { "X-Api-Key" = "k1" }

[endpoints.wikidata]
url = "https://query.wikidata.org/sparql"
method = "GET"
`

func TestLoadEndpoints(t *testing.T) {
	path := writeEndpointsFile(t, testEndpointsTOML)

	cfg, err := loadEndpoints(path)
	if err != nil {
		t.Fatalf("loadEndpoints() error = %v", err)
	}

	if cfg.Default != "local" {
		t.Errorf("Default = %q, want %q", cfg.Default, "local")
	}
	if len(cfg.Endpoints) != 2 {
		t.Fatalf("got %d endpoints, want 2", len(cfg.Endpoints))
	}

	local := cfg.Endpoints["local"]
	if local.URL != "http://localhost:3030/ds/sparql" {
		t.Errorf("local.URL = %q", local.URL)
	}
	if local.UpdateURL != "http://localhost:3030/ds/update" {
		t.Errorf("local.UpdateURL = %q", local.UpdateURL)
	}
	if time.Duration(local.Timeout) != 45*time.Second {
		t.Errorf("local.Timeout = %v, want 45s", time.Duration(local.Timeout))
	}
	if local.Headers["X-Api-Key"] != "k1" {
		t.Errorf("local.Headers = %v", local.Headers)
	}

	if got := cfg.Endpoints["wikidata"].Method; got != "GET" {
		t.Errorf("wikidata.Method = %q, want GET", got)
	}
}

func TestLoadEndpointsMissing(t *testing.T) {
	_, err := loadEndpoints(filepath.Join(t.TempDir(), "nope.toml"))
	if !os.IsNotExist(err) {
		t.Errorf("error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadEndpointsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("default = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := loadEndpoints(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("error = %v, want parse failure", err)
	}
}

func TestEndpointEntryConfig(t *testing.T) {
	entry := endpointEntry{
		URL:         "http://example.org/sparql",
		UpdateURL:   "http://example.org/update",
		QueryParam:  "q",
		UpdateParam: "u",
		Method:      "GET",
		Proxy:       "http://proxy.example.org:8080",
		Timeout:     duration(10 * time.Second),
		Headers:     map[string]string{"X-Token": "abc"},
	}

	cfg := entry.config()
	if cfg.URL != entry.URL || cfg.UpdateURL != entry.UpdateURL {
		t.Errorf("URLs not carried over: %+v", cfg)
	}
	if cfg.QueryParam != "q" || cfg.UpdateParam != "u" {
		t.Errorf("params not carried over: %+v", cfg)
	}
	if cfg.Method != "GET" || cfg.Proxy != entry.Proxy {
		t.Errorf("method/proxy not carried over: %+v", cfg)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.Headers["X-Token"] != "abc" {
		t.Errorf("Headers = %v", cfg.Headers)
	}
}

func TestEndpointNames(t *testing.T) {
	cfg := endpointsConfig{Endpoints: map[string]endpointEntry{
		"zeta": {}, "alpha": {}, "mid": {},
	}}

	got := endpointNames(cfg)
	want := []string{"alpha", "mid", "zeta"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		name         string
		toml         string // "" means no file
		flagEndpoint string
		flagURL      string
		wantURL      string
		wantLabel    string
		wantErr      string
	}{
		{
			name:      "URLFlagWins",
			toml:      testEndpointsTOML,
			flagURL:   "http://direct.example.org/sparql",
			wantURL:   "http://direct.example.org/sparql",
			wantLabel: "http://direct.example.org/sparql",
		},
		{
			name:         "NamedEndpoint",
			toml:         testEndpointsTOML,
			flagEndpoint: "wikidata",
			wantURL:      "https://query.wikidata.org/sparql",
			wantLabel:    "wikidata",
		},
		{
			name:         "NamedEndpointMissing",
			toml:         testEndpointsTOML,
			flagEndpoint: "staging",
			wantErr:      "local, wikidata",
		},
		{
			name:      "DefaultEntry",
			toml:      testEndpointsTOML,
			wantURL:   "http://localhost:3030/ds/sparql",
			wantLabel: "local",
		},
		{
			name:    "DefaultNamesMissingEntry",
			toml:    "default = \"ghost\"\n\n[endpoints.local]\nurl = \"http://localhost:3030/ds/sparql\"\n",
			wantErr: `default endpoint "ghost" not found`,
		},
		{
			// Under go test, stdout is not a terminal, so the picker
			// never engages and resolution falls through to the error.
			name:    "NoDefaultNoFlags",
			toml:    "[endpoints.local]\nurl = \"http://localhost:3030/ds/sparql\"\n",
			wantErr: "set default",
		},
		{
			name:    "NoFileNoFlags",
			wantErr: "pass --url",
		},
		{
			name:         "NoFileNamedEndpoint",
			flagEndpoint: "local",
			wantErr:      "no config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.toml != "" {
				writeEndpointsFile(t, tt.toml)
			} else {
				t.Setenv("XDG_CONFIG_HOME", t.TempDir())
			}

			c := New(io.Discard, LogInfo)
			cfg, label, err := c.resolveEndpoint(tt.flagEndpoint, tt.flagURL)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("resolveEndpoint() = %+v, want error containing %q", cfg, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want it to contain %q", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("resolveEndpoint() error = %v", err)
			}
			if cfg.URL != tt.wantURL {
				t.Errorf("URL = %q, want %q", cfg.URL, tt.wantURL)
			}
			if label != tt.wantLabel {
				t.Errorf("label = %q, want %q", label, tt.wantLabel)
			}
		})
	}
}

package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// =============================================================================
// Endpoints File
// =============================================================================

// endpointsConfig is the schema of the endpoints TOML file:
//
//	default = "local"
//
//	[endpoints.local]
//	url = "http://localhost:3030/ds/sparql"
//	update_url = "http://localhost:3030/ds/update"
//
//	[endpoints.wikidata]
//	url = "https://query.wikidata.org/sparql"
//	method = "GET"
type endpointsConfig struct {
	Default   string                   `toml:"default"`
	Endpoints map[string]endpointEntry `toml:"endpoints"`
}

// endpointEntry configures a single named endpoint. Zero fields fall back to
// the client's defaults.
type endpointEntry struct {
	URL         string            `toml:"url"`
	UpdateURL   string            `toml:"update_url"`
	QueryParam  string            `toml:"query_param"`
	UpdateParam string            `toml:"update_param"`
	Method      string            `toml:"method"`
	Proxy       string            `toml:"proxy"`
	Timeout     duration          `toml:"timeout"`
	Headers     map[string]string `toml:"headers"`
}

// duration decodes TOML strings like "30s" or "2m" into a time.Duration.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(parsed)
	return nil
}

// config converts the entry into a client configuration.
func (e endpointEntry) config() sparql.Config {
	return sparql.Config{
		URL:         e.URL,
		UpdateURL:   e.UpdateURL,
		QueryParam:  e.QueryParam,
		UpdateParam: e.UpdateParam,
		Method:      e.Method,
		Proxy:       e.Proxy,
		Timeout:     time.Duration(e.Timeout),
		Headers:     e.Headers,
	}
}

// loadEndpoints reads and parses the endpoints file at path.
// A missing file surfaces as os.ErrNotExist for callers to handle.
func loadEndpoints(path string) (endpointsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return endpointsConfig{}, err
	}

	var cfg endpointsConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return endpointsConfig{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// endpointNames returns the configured endpoint names in sorted order.
func endpointNames(cfg endpointsConfig) []string {
	names := make([]string, 0, len(cfg.Endpoints))
	for name := range cfg.Endpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Endpoint Selection
// =============================================================================

// resolveEndpoint turns the --url/--endpoint flag pair into a client
// configuration and a short label for status messages.
//
// Precedence: --url wins outright, then --endpoint looks up a named entry,
// then the file's default entry. With none of those and a terminal attached,
// an interactive picker lists the configured endpoints.
func (c *CLI) resolveEndpoint(flagEndpoint, flagURL string) (sparql.Config, string, error) {
	if flagURL != "" {
		return sparql.Config{URL: flagURL}, flagURL, nil
	}

	path, err := configPath()
	if err != nil {
		return sparql.Config{}, "", fmt.Errorf("failed to locate config: %w", err)
	}

	cfg, err := loadEndpoints(path)
	if err != nil {
		if os.IsNotExist(err) && flagEndpoint == "" {
			return sparql.Config{}, "", fmt.Errorf("no endpoint selected: pass --url, or configure endpoints in %s", path)
		}
		if os.IsNotExist(err) {
			return sparql.Config{}, "", fmt.Errorf("endpoint %q not found: no config file at %s", flagEndpoint, path)
		}
		return sparql.Config{}, "", err
	}

	if flagEndpoint != "" {
		entry, ok := cfg.Endpoints[flagEndpoint]
		if !ok {
			return sparql.Config{}, "", fmt.Errorf("endpoint %q not found in %s (have: %s)",
				flagEndpoint, path, strings.Join(endpointNames(cfg), ", "))
		}
		return entry.config(), flagEndpoint, nil
	}

	if cfg.Default != "" {
		entry, ok := cfg.Endpoints[cfg.Default]
		if !ok {
			return sparql.Config{}, "", fmt.Errorf("default endpoint %q not found in %s", cfg.Default, path)
		}
		c.Logger.Debugf("using default endpoint %q", cfg.Default)
		return entry.config(), cfg.Default, nil
	}

	if len(cfg.Endpoints) > 0 && isTerminal(os.Stdout) {
		name, err := pickEndpoint(cfg)
		if err != nil {
			return sparql.Config{}, "", err
		}
		if name == "" {
			return sparql.Config{}, "", fmt.Errorf("no endpoint selected")
		}
		return cfg.Endpoints[name].config(), name, nil
	}

	return sparql.Config{}, "", fmt.Errorf("no endpoint selected: pass --url or --endpoint, or set default in %s", path)
}

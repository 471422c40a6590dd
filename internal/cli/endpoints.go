package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

// endpointsCommand creates the endpoints command for listing configured
// endpoints.
func (c *CLI) endpointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List endpoints from the configuration file",
		Long: `List the endpoints configured in the endpoints file
(~/.config/sparqlkit/endpoints.toml by default, honoring XDG_CONFIG_HOME).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEndpoints()
		},
	}
}

// runEndpoints renders the endpoints table, or a hint when no file exists.
func (c *CLI) runEndpoints() error {
	path, err := configPath()
	if err != nil {
		return fmt.Errorf("failed to locate config: %w", err)
	}

	cfg, err := loadEndpoints(path)
	if err != nil {
		if os.IsNotExist(err) {
			printWarning("no endpoints file at %s", path)
			printNextStep("create one", "mkdir -p "+filepath.Dir(path)+" && $EDITOR "+path)
			printDetail(`a minimal file: [endpoints.local] then url = "http://localhost:3030/ds/sparql"`)
			return nil
		}
		return err
	}

	if len(cfg.Endpoints) == 0 {
		printWarning("endpoints file %s declares no endpoints", path)
		return nil
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, 0, len(cfg.Endpoints))
	for _, name := range endpointNames(cfg) {
		entry := cfg.Endpoints[name]

		marker := ""
		if name == cfg.Default {
			marker = StyleSuccess.Render(iconSuccess)
		}

		method := entry.Method
		if method == "" {
			method = "POST"
		}

		updateURL := entry.UpdateURL
		if updateURL == "" {
			updateURL = StyleDim.Render("(query url)")
		}

		rows = append(rows, []string{marker, name, entry.URL, updateURL, method})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Name", "URL", "Update URL", "Method").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return StyleValue
		})

	fmt.Println(t.Render())
	printKeyValue("config", path)
	printNewline()
	return nil
}

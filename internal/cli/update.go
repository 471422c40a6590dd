package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// updateCommand creates the update command for running update operations.
func (c *CLI) updateCommand() *cobra.Command {
	var (
		endpoint    string
		endpointURL string
		file        string
	)

	cmd := &cobra.Command{
		Use:   "update [text]",
		Short: "Run an update operation against a SPARQL endpoint",
		Long: `Run an update operation (INSERT DATA, DELETE DATA, CLEAR, DROP, ...)
against a SPARQL endpoint.

Updates always go over POST, to the endpoint's update URL when one is
configured. The operation text comes from the argument, from --file, or
from stdin when --file is "-".

Examples:
  sparqlkit update --endpoint local 'INSERT DATA { <urn:s> <urn:p> "o" }'
  sparqlkit update --url http://localhost:3030/ds/update --file load.ru`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := operationText(args, file)
			if err != nil {
				return err
			}
			cfg, label, err := c.resolveEndpoint(endpoint, endpointURL)
			if err != nil {
				return err
			}
			return c.runUpdate(cmd.Context(), cfg, label, text)
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "named endpoint from the config file")
	cmd.Flags().StringVarP(&endpointURL, "url", "u", "", "endpoint URL (overrides --endpoint)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the operation from a file (\"-\" for stdin)")

	return cmd
}

// runUpdate executes the update operation.
func (c *CLI) runUpdate(ctx context.Context, cfg sparql.Config, label, text string) error {
	client, err := c.newClient(cfg)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Updating "+label)
	spinner.Start()

	if err := client.Update(ctx, text); err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Update failed")
		return fmt.Errorf("update failed: %w", err)
	}

	spinner.StopWithSuccess("Update acknowledged")
	return nil
}

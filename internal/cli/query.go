package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/geoknoesis/rdf-go/rdf"
	"github.com/spf13/cobra"

	"github.com/graphbound/sparqlkit/pkg/sparql"
)

// queryCommand creates the query command for running queries and rendering
// their results.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		endpoint    string
		endpointURL string
		file        string
		format      string
		graphFormat string
		method      string
	)

	cmd := &cobra.Command{
		Use:   "query [text]",
		Short: "Run a query against a SPARQL endpoint",
		Long: `Run a query against a SPARQL endpoint and render the result.

ASK queries print true or false, SELECT queries print a solution table
(or json/csv with --format), and CONSTRUCT/DESCRIBE queries print the
resulting graph (turtle by default, see --graph-format).

The operation text comes from the argument, from --file, or from stdin
when --file is "-".

Examples:
  sparqlkit query --url http://localhost:3030/ds/sparql 'SELECT * WHERE { ?s ?p ?o } LIMIT 10'
  sparqlkit query --endpoint wikidata --format csv --file query.rq
  cat query.rq | sparqlkit query --file -`,
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
			if method != "" {
				cfg.Method = method
			}
			return c.runQuery(cmd.Context(), cfg, label, text, format, graphFormat)
		},
	}

	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "named endpoint from the config file")
	cmd.Flags().StringVarP(&endpointURL, "url", "u", "", "endpoint URL (overrides --endpoint)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the operation from a file (\"-\" for stdin)")
	cmd.Flags().StringVarP(&format, "format", "o", formatTable, "solutions output format (table, json, csv)")
	cmd.Flags().StringVar(&graphFormat, "graph-format", "turtle", "graph output format (turtle, ntriples, rdfxml, jsonld, trig, nquads)")
	cmd.Flags().StringVar(&method, "method", "", "HTTP method override (GET or POST)")

	return cmd
}

// runQuery executes the query and renders its result to stdout.
func (c *CLI) runQuery(ctx context.Context, cfg sparql.Config, label, text, format, graphFormat string) error {
	switch format {
	case formatTable, formatJSON, formatCSV:
	default:
		return fmt.Errorf("unknown output format %q (want table, json, or csv)", format)
	}
	if _, err := rdf.ResolveAnyFormat(graphFormat); err != nil {
		return fmt.Errorf("unknown graph format %q (want turtle, ntriples, rdfxml, jsonld, trig, or nquads)", graphFormat)
	}

	client, err := c.newClient(cfg)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Querying "+label)
	spinner.Start()

	start := time.Now()
	res, err := client.Query(ctx, text)
	elapsed := time.Since(start).Round(time.Millisecond)

	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return err
		}
		spinner.StopWithError("Query failed")
		return fmt.Errorf("query failed: %w", err)
	}
	spinner.Stop()

	c.Logger.Debugf("received %s result from %s in %s", res.Kind, label, elapsed)

	if err := writeResult(ctx, os.Stdout, res, format, graphFormat); err != nil {
		return err
	}

	// The stats line only accompanies the human-oriented table view. The
	// pipe formats (json, csv, graph serializations) stay clean.
	if res.Kind == sparql.BindingsResult && format == formatTable {
		printDetail("%d solutions · %s", len(res.Solutions), elapsed)
	}
	return nil
}

// operationText resolves the query or update text from the positional
// argument, a file, or stdin.
func operationText(args []string, file string) (string, error) {
	hasArg := len(args) > 0 && strings.TrimSpace(args[0]) != ""

	switch {
	case hasArg && file != "":
		return "", fmt.Errorf("provide the operation as an argument or via --file, not both")
	case hasArg:
		return args[0], nil
	case file == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", file, err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("no operation text: pass it as an argument or via --file")
	}
}

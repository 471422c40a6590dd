package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/graphbound/sparqlkit/pkg/sparqltest"
)

// shutdownGrace bounds how long in-flight mock requests may run after an
// interrupt.
const shutdownGrace = 5 * time.Second

// serveMockCommand creates the serve-mock command, an in-memory SPARQL
// endpoint for local development.
func (c *CLI) serveMockCommand() *cobra.Command {
	var (
		addr  string
		empty bool
	)

	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Serve an in-memory mock SPARQL endpoint",
		Long: `Serve a miniature in-memory SPARQL endpoint for local development.

The endpoint answers ASK, SELECT, CONSTRUCT, and DESCRIBE with canned
results derived from a small demo dataset, and acknowledges updates with
204 No Content. It speaks enough of the protocol for client development
and demos; it is not a query engine.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServeMock(cmd.Context(), addr, empty)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3030", "listen address")
	cmd.Flags().BoolVar(&empty, "empty", false, "start with an empty dataset instead of the demo triples")

	return cmd
}

// runServeMock serves the mock endpoint until ctx is cancelled.
func (c *CLI) runServeMock(ctx context.Context, addr string, empty bool) error {
	var endpoint *sparqltest.Endpoint
	if empty {
		endpoint = sparqltest.NewEndpoint()
	} else {
		endpoint = sparqltest.NewEndpoint(sparqltest.DefaultTriples()...)
	}
	endpoint.Logf = func(format string, args ...any) {
		c.Logger.Infof(format, args...)
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: endpoint.Handler(),
	}

	p := newProgress(c.Logger)

	printSuccess("Mock SPARQL endpoint listening on http://%s", addr)
	printNextStep("try", fmt.Sprintf("sparqlkit query --url http://%s 'SELECT * WHERE { ?s ?p ?o } LIMIT 5'", addr))
	printDetail("press ctrl+c to stop")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("mock endpoint failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	p.done("Mock endpoint stopped")
	return nil
}

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helix-labs/docqa-cli/internal/adapters/driving/httpapi"
	"github.com/helix-labs/docqa-cli/internal/logger"
)

const defaultServeAddr = "127.0.0.1:8080"

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serves the document and query API over HTTP.

Endpoints:
  POST   /v1/documents             upload a document
  GET    /v1/documents             list documents
  GET    /v1/documents/{id}        get a document
  PUT    /v1/documents/{id}        update a document
  DELETE /v1/documents/{id}        delete a document
  POST   /v1/query                 ask a question
  GET    /v1/history               list past queries
  POST   /v1/history/{id}/rating   rate an answer
  GET    /v1/stats                 library statistics
  GET    /healthz                  health check`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default "+defaultServeAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if libraryService == nil || queryService == nil {
		return errors.New("services not configured")
	}

	addr := serveAddr
	if addr == "" {
		addr = appSettings.ServerAddr
	}
	if addr == "" {
		addr = defaultServeAddr
	}

	router := httpapi.NewRouter(libraryService, queryService)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		cmd.Printf("Listening on http://%s\n", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/worksheet-lab/ruiji/internal/handlers"
)

func newServeCmd() *cobra.Command {
	var port string
	var staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the worksheet interface",
		Long: `Starts the Ruiji web interface on the specified port.

The web interface lets you capture, paste or upload problem images,
generate similar problems with a vision-capable LLM, and open a
printable worksheet in a new tab.`,
		Example: `  # Start server on default port 8888
  ruiji serve

  # Start server on custom port with a separate data directory
  ruiji serve --port 3000 --data-dir ~/.local/share/ruiji`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New(dataDir, staticDir)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Ruiji interface available", "addr", addr, "url", "http://localhost"+addr, "data_dir", dataDir)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&staticDir, "static-dir", "static", "Directory containing the web interface")

	return cmd
}

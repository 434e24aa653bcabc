package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sellout/web"
)

var (
	servePort   int
	serveDBPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the upload API",
	Long: `Start an HTTP server accepting reseller workbooks.

Routes:
- POST   /uploads                                 multipart field "file", optional "vendor"
- GET    /uploads                                 list uploads
- GET    /uploads/{id}                            upload summary
- GET    /uploads/{id}/facts                      stored facts
- GET    /uploads/{id}/transformations            transformation log
- DELETE /uploads/{id}                            delete upload
- GET    /healthz`,
	Example: `
  # Start on the configured port
  sellout serve

  # Start on a custom port and database
  sellout serve --port 9090 --db ./sellout.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), serveDBPath)
		if err != nil {
			return err
		}
		defer a.Close()

		port := resolveServePort(servePort, a.cfg.Server.Port)
		server := &http.Server{
			Addr: fmt.Sprintf(":%d", port),
			Handler: web.NewServer(a.store, a.pipeline, web.Options{
				MaxUploadBytes: a.cfg.Server.MaxUploadBytes(),
				BatchSize:      a.cfg.Storage.BatchSize,
				Logger:         a.logger,
			}),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.ListenAndServe()
		}()

		a.logger.WithFields(logrus.Fields{"port": port}).Info("listening")
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://localhost:%d\n", port)

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-sigCh:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown server: %w", err)
			}
			err := <-errCh
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "HTTP port (default: server.port)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "Path to SQLite database (default: storage.db_path)")
}

func resolveServePort(flagValue, configured int) int {
	if flagValue > 0 {
		return flagValue
	}
	if configured > 0 {
		return configured
	}
	return 8080
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yefe-app/yefe-console/internal/config"
	httpapp "github.com/yefe-app/yefe-console/internal/http"
	"github.com/yefe-app/yefe-console/internal/logging"
	"github.com/yefe-app/yefe-console/internal/metrics"
	"github.com/yefe-app/yefe-console/internal/session"
	"github.com/yefe-app/yefe-console/internal/yefeapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the console HTTP server.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func runServe() error {
	logger, err := logging.BootstrapFromEnv(logging.BootstrapOptions{Command: "serve"})
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := yefeapi.New(cfg.APIBaseURL, cfg.APITimeout)
	if err != nil {
		return err
	}
	store := session.NewStore(cfg.SessionLifetime, cfg.AuthCookieSecure)

	srv, err := httpapp.NewEchoServer(cfg, api, store)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	_, metricsErrCh := metrics.StartServer(ctx, cfg.MetricsAddr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
		if err := srv.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return superviseShutdown(gctx, metricsErrCh, srv.Shutdown)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("stopped")
	return nil
}

// superviseShutdown blocks until the context ends or the metrics listener
// fails, then shuts the HTTP server down either way. The shutdown must happen
// before a metrics error is returned, otherwise the serve goroutine never
// unblocks and the group hangs.
func superviseShutdown(ctx context.Context, metricsErrCh <-chan error, shutdown func(context.Context) error) error {
	var cause error
	select {
	case <-ctx.Done():
	case err := <-metricsErrCh:
		cause = err
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		slog.Warn("shutdown", "error", err)
	}
	return cause
}

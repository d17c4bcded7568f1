package handlers

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"decathlonminds/internal/config"
	"decathlonminds/internal/logger"
	"decathlonminds/internal/server"
)

// NewServeCmd creates the serve command for starting the HTTP server.
func NewServeCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP feed server",
		Long: `Start the DecathlonMinds HTTP server.

The server provides:
  • GET/POST /api/feed      mood-aware assembled feeds
  • GET /api/articles       the bulk science feed from RSS sources
  • GET /api/images/check   image URL accessibility probe
  • GET /health             health check

Examples:
  # Start on the configured port (default 8080)
  decathlonminds serve

  # Start on a custom port
  decathlonminds serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, host)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "HTTP server port (default from config: 8080)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP server host (default from config: 0.0.0.0)")

	return cmd
}

func runServe(ctx context.Context, port int, host string) error {
	log := logger.Get()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	serverCfg := cfg.Server
	if port != 0 {
		serverCfg.Port = port
	}
	if host != "" {
		serverCfg.Host = host
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()

	assembler, feedCache, err := buildAssembler(sweepCtx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(assembler, feedCache, serverCfg)

	serverErrors := make(chan error, 1)
	go func() {
		log.Info(fmt.Sprintf("Server listening on http://%s", serverCfg.Addr()))
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverCfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

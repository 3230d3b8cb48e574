package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/graphsearch"
	"github.com/pdrpinto/graphsearch/internal/cli"
)

func NewServeCommand(env *cli.Env) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves a step-by-step search visualiser API",
		Long: `Serves an HTTP API that steps searches over generated or uploaded mazes:
  POST   /v1/sessions           start a session ({"strategy": "astar", "w": 40, "h": 24} or {"maze": "..."})
  POST   /v1/sessions/:id/step  expand one state and return a snapshot
  DELETE /v1/sessions/:id       stop a session
  GET    /metrics               Prometheus metrics (telemetry.metric_exporter: prometheus)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			serverConfig := env.Config.Server
			if cmd.Flags().Changed("port") {
				serverConfig.Port = port
			}

			if serverConfig.Debug {
				gin.SetMode(gin.DebugMode)
			} else {
				gin.SetMode(gin.ReleaseMode)
			}

			options := append(env.Config.Search.SearchOptions(), graphsearch.WithLogger(env.Logger))
			server := NewServer(env.Logger, serverConfig.MaxSessions, options...)
			defer server.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return run(ctx, env.Logger, fmt.Sprintf(":%d", serverConfig.Port), server.Router())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "port to listen on")
	return cmd
}

func run(ctx context.Context, logger *slog.Logger, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting graphsearch server", slog.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down graphsearch server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

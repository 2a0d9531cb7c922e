package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/backbone81/walkv/internal/server"
	"github.com/backbone81/walkv/pkg/kv"
)

var (
	serveHTTPAddr        string
	serveRESPAddr        string
	serveShutdownTimeout time.Duration
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the store over HTTP and the Redis protocol.",
	Long: `Serves the store over HTTP and the Redis protocol until interrupted.

All requests are serialized, the store is never accessed concurrently.`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		logger := newLogger()

		registry := prometheus.NewRegistry()
		if err := kv.RegisterMetrics(registry); err != nil {
			return err
		}
		if err := registry.Register(collectors.NewGoCollector()); err != nil {
			return err
		}

		store, closeStore, err := openStore(logger)
		if err != nil {
			return err
		}
		guarded := server.NewGuarded(store)
		defer func() {
			if closeErr := closeStore(); closeErr != nil && err == nil {
				err = closeErr
			}
		}()

		gin.SetMode(gin.ReleaseMode)
		httpServer := &http.Server{
			Addr:              serveHTTPAddr,
			Handler:           server.NewHTTPHandler(guarded, registry, logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		respServer := server.NewRESPServer(serveRESPAddr, guarded, logger)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		group, ctx := errgroup.WithContext(ctx)

		// The RESP server must be listening before anything can close it.
		respReady := make(chan error, 1)
		group.Go(func() error {
			return respServer.ListenAndServe(respReady)
		})
		if err := <-respReady; err != nil {
			return group.Wait()
		}
		logger.Info().Str("addr", serveRESPAddr).Msg("serving RESP")

		group.Go(func() error {
			logger.Info().Str("addr", serveHTTPAddr).Msg("serving HTTP")
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		group.Go(func() error {
			<-ctx.Done()
			logger.Info().Msg("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), serveShutdownTimeout)
			defer cancel()
			return errors.Join(httpServer.Shutdown(shutdownCtx), respServer.Close())
		})
		return group.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(
		&serveHTTPAddr,
		"http-addr",
		":8080",
		"The address to serve the HTTP API and the metrics on.",
	)

	serveCmd.Flags().StringVar(
		&serveRESPAddr,
		"resp-addr",
		":6380",
		"The address to serve the Redis protocol on.",
	)

	serveCmd.Flags().DurationVar(
		&serveShutdownTimeout,
		"shutdown-timeout",
		10*time.Second,
		"The time to wait for open HTTP requests when shutting down.",
	)
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/analysis"
	"github.com/iwvelando/rent-vs-buy/internal/config"
	"github.com/iwvelando/rent-vs-buy/internal/server"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(o *options) *cobra.Command {
	var serverConfigPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runServe(cmd.Context(), serverConfigPath)
		},
	}
	cmd.Flags().StringVar(&serverConfigPath, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	return cmd
}

// runServe serves until SIGINT, SIGTERM or ctx cancellation, then drains
// in-flight requests.
func (o *options) runServe(ctx context.Context, serverConfigPath string) error {
	const op = "main.runServe"

	srvCfg, err := server.LoadConfig(serverConfigPath)
	if err != nil {
		return err
	}

	logger := o.logger
	if srvCfg.Logging != (config.LoggingConfig{}) {
		logger, err = initializeLogger(mergeLogging(o.conf.Logging, srvCfg.Logging), o.logLevel)
		if err != nil {
			return fmt.Errorf("failed to initialize server logger: %w", err)
		}
		defer func() {
			_ = logger.Sync()
		}()
	}

	st, err := o.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	c, closeCache := newCache(ctx, o.conf.Cache, logger)
	defer closeCache()

	httpServer := &http.Server{
		Addr:         srvCfg.Address,
		Handler:      server.NewHandler(logger, analysis.NewAnalyzer(logger, c), st, srvCfg, version),
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("serving projection API",
			zap.String("op", op),
			zap.String("address", srvCfg.Address),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", op),
			zap.String("signal", sig.String()),
		)
	case <-ctx.Done():
		logger.Info("shutting down server",
			zap.String("op", op),
			zap.Error(ctx.Err()),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srvCfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	logger.Info("server exited", zap.String("op", op))
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seoanalyzer/internal/api/v1/handler"
	"seoanalyzer/internal/api/v1/router"
	"seoanalyzer/internal/config"
	"seoanalyzer/internal/debug"
	"seoanalyzer/internal/extract"
	"seoanalyzer/internal/fetch"
	"seoanalyzer/internal/log"
	"seoanalyzer/internal/recommend"
	"seoanalyzer/internal/service"
)

const (
	pprofAddr       = ":6060"
	shutdownTimeout = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the metrics listener",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(config.AppConfig)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newAnalyzer(cfg *config.Config) *service.Analyzer {
	return service.NewAnalyzer(
		fetch.New(cfg.FetchTimeout, cfg.UserAgent),
		extract.New(),
		recommend.New(cfg),
	)
}

func serve(cfg *config.Config) error {
	apiCtx, stopAPI := context.WithCancel(context.Background())
	defer stopAPI()

	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router.New(apiCtx, handler.New(newAnalyzer(cfg)), cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           router.NewMetricsRouter(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 2)

	go func() {
		log.Logger.Info("Server started", zap.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		log.Logger.Info("Metrics server started", zap.String("addr", cfg.MetricsAddr))
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var pprofServer *http.Server
	if cfg.IsDev {
		pprofServer = debug.StartPprof(pprofAddr)
	}

	var serveErr error
	select {
	case <-stop:
		log.Logger.Info("Shutting down server gracefully")
	case serveErr = <-errCh:
		log.Logger.Error("Server failed", zap.Error(serveErr))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range []*http.Server{server, metricsServer, pprofServer} {
		if srv == nil {
			continue
		}
		if err := srv.Shutdown(ctx); err != nil {
			log.Logger.Error("Server forced to shutdown", zap.String("addr", srv.Addr), zap.Error(err))
		}
	}

	if serveErr != nil {
		return serveErr
	}
	log.Logger.Info("Server exited successfully")
	return nil
}

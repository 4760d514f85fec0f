package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/natevvv/campus-paths/internal/config"
	"github.com/natevvv/campus-paths/internal/logging"
	"github.com/natevvv/campus-paths/internal/metrics"
	"github.com/natevvv/campus-paths/pkg/routing"
	"github.com/natevvv/campus-paths/pkg/server/openapi_server"
)

func main() {
	cfgPath := flag.String("config", "", "Path to the YAML config, defaults are used if empty")
	port := flag.Int("port", 0, "HTTP port, overrides the config")
	navigator := flag.String("navigator", "dijkstra", "Shortest path navigator: dijkstra or path-frontier")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Campus map ────────────────────────────────────────────────────────────
	buildRouter := func() (*routing.Router, error) {
		m, err := routing.LoadMap(ctx, cfg.Data, logger)
		if err != nil {
			return nil, err
		}
		return routing.NewRouter(m, *navigator, cfg.Search, logger)
	}

	router, err := buildRouter()
	if err != nil {
		logger.Error("failed to build campus map", "err", err)
		os.Exit(1)
	}
	service := openapi_server.NewDefaultApiService(router, logger)

	// ── Data reload ───────────────────────────────────────────────────────────
	if cfg.Data.Watch {
		stopWatch, err := config.Watch(cfg.Data.Files(), logger, func(file string) {
			newRouter, err := buildRouter()
			if err != nil {
				metrics.MapReloads.WithLabelValues("failed").Inc()
				logger.Warn("reload skipped: campus map build failed", "file", file, "err", err)
				return
			}
			service.Swap(newRouter)
			metrics.MapReloads.WithLabelValues("ok").Inc()
			logger.Info("campus map reloaded", "file", file, "nodes", newRouter.Map().Graph().NodeCount())
		})
		if err != nil {
			logger.Warn("data watcher unavailable (reload disabled)", "err", err)
		} else {
			defer stopWatch()
		}
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	apiRouter := openapi_server.NewRouter(logger,
		openapi_server.NewDefaultApiController(service),
		openapi_server.NewHealthApiController(service),
	)
	apiRouter.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           openapi_server.CORS(cfg.HTTP.AllowedOrigins)(apiRouter),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		logger.Error("shutdown failed", "err", err)
	}
	cancel()
	logger.Info("goodbye")
}

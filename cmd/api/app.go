package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"trajetviz.dev/internal/app"
	"trajetviz.dev/internal/appconf"
	"trajetviz.dev/internal/cards"
	"trajetviz.dev/internal/clock"
	"trajetviz.dev/internal/logging"
	"trajetviz.dev/internal/metrics"
	"trajetviz.dev/internal/restapi"
	"trajetviz.dev/internal/searchclient"
	"trajetviz.dev/internal/webui"
)

// fakeTimeEnv freezes the application clock, for demos against a timetable
// that only covers a fixed day.
const fakeTimeEnv = "TRAJETVIZ_FAKE_TIME"

const backendCheckInterval = 30 * time.Second

// ParseAPIKeys splits a comma separated key list. Empty entries are kept so
// that a stray comma is visible as an empty key rather than silently dropped.
func ParseAPIKeys(apiKeysFlag string) []string {
	if apiKeysFlag == "" {
		return []string{}
	}
	keys := strings.Split(apiKeysFlag, ",")
	for i, key := range keys {
		keys[i] = strings.TrimSpace(key)
	}
	return keys
}

// BuildApplication wires the shared dependencies the HTTP surfaces need.
func BuildApplication(cfg appconf.Config, viz appconf.VizConfig) (*app.Application, error) {
	logger := logging.New(os.Stdout, cfg.Verbose, cfg.Env == appconf.Production)

	appClock, err := clock.FromEnv(fakeTimeEnv, time.Local)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize clock: %w", err)
	}
	if _, frozen := appClock.(*clock.MockClock); frozen {
		logger.Warn("application clock is frozen", slog.Time("now", appClock.Now()))
	}

	renderer, err := cards.NewRenderer(viz.Messages.CardTexts())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize card renderer: %w", err)
	}

	m := metrics.NewWithLogger(logger)

	opts := []searchclient.Option{
		searchclient.WithLogger(logger),
		searchclient.WithObserver(m),
	}
	if cfg.BackendTimeout > 0 {
		opts = append(opts, searchclient.WithTimeout(cfg.BackendTimeout))
	}
	search := searchclient.New(cfg.BackendURL, opts...)

	return &app.Application{
		Config:  cfg,
		Viz:     viz,
		Logger:  logger,
		Clock:   appClock,
		Metrics: m,
		Search:  search,
		Cards:   renderer,
	}, nil
}

// CreateServer builds the HTTP server. The returned RestAPI must be shut down
// once the server has stopped.
func CreateServer(coreApp *app.Application, cfg appconf.Config) (*http.Server, *restapi.RestAPI) {
	api := restapi.NewRestAPI(coreApp)

	webUI := &webui.WebUI{Application: coreApp}

	mux := http.NewServeMux()
	api.SetRoutes(mux)
	webUI.SetWebUIRoutes(mux)

	srv := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      api.WrapServer(mux),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(coreApp.Logger.Handler(), slog.LevelError),
	}

	return srv, api
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run(srv *http.Server, coreApp *app.Application, api *restapi.RestAPI) error {
	logger := coreApp.Logger

	if coreApp.Metrics != nil {
		coreApp.Metrics.StartBackendHealthCollector(coreApp.Search, backendCheckInterval)
		defer coreApp.Metrics.Shutdown()
	}
	defer api.Shutdown()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logging.LogOperation(logger, "server_started",
			slog.String("addr", srv.Addr),
			slog.String("env", coreApp.Config.Env.String()),
			slog.String("backend", coreApp.Search.BaseURL()))
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logging.LogOperation(logger, "server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logging.LogOperation(logger, "server_stopped")
	return nil
}

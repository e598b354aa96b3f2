package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vovakirdan/tui-stealth/internal/config"
	"github.com/vovakirdan/tui-stealth/internal/metrics"
	"github.com/vovakirdan/tui-stealth/internal/platform/tui"
	"github.com/vovakirdan/tui-stealth/internal/stage"
	"github.com/vovakirdan/tui-stealth/internal/storage"
)

// deps holds everything opened from the global flags.
type deps struct {
	env     *tui.Env
	logger  *log.Logger
	logFile io.Closer
	metrics *metrics.Collector
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(p string) string {
	if !strings.HasPrefix(p, "~") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}

// newLogger writes to path, since the TUI owns the terminal. An empty path
// logs to stderr.
func newLogger(level, path string) (*log.Logger, io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if path != "" {
		path = expandHome(path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "stealth",
		Level:           lvl,
	})
	return logger, closer, nil
}

func loadStages() ([]stage.Stage, error) {
	loader := stage.Embedded()
	if flagStagesDir != "" {
		loader = stage.Dir(flagStagesDir)
	}
	stages, err := loader.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("no stages found")
	}
	return stages, nil
}

func loadConfig() (config.StealthConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.Sim.FrameRate = flagFPS
	}
	return cfg, nil
}

// openDeps builds the environment shared by play and serve. The store
// is optional: a database that cannot be opened only disables records.
func openDeps(logFile string) (*deps, error) {
	logger, closer, err := newLogger(flagLogLevel, logFile)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig()
	if err != nil {
		closer.Close()
		return nil, err
	}

	stages, err := loadStages()
	if err != nil {
		closer.Close()
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("records disabled", "err", err)
	}

	var collector *metrics.Collector
	if flagMetricsAddr != "" {
		collector, err = metrics.New(prometheus.NewRegistry())
		if err != nil {
			logger.Warn("metrics disabled", "err", err)
		}
	}

	return &deps{
		env: &tui.Env{
			Stages:  stages,
			Config:  cfg,
			Store:   store,
			Logger:  logger,
			Metrics: collector,
		},
		logger:  logger,
		logFile: closer,
		metrics: collector,
	}, nil
}

func (r *deps) Close() {
	if r.env.Store != nil {
		r.env.Store.Close()
	}
	if r.env.Audio != nil {
		r.env.Audio.Close()
	}
	r.logFile.Close()
}

// serveMetrics serves /metrics until ctx is done. It returns at once when
// metrics are disabled.
func (r *deps) serveMetrics(ctx context.Context) error {
	if r.metrics == nil {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", r.metrics.Handler())
	srv := &http.Server{
		Addr:              flagMetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.logger.Info("serving metrics", "addr", flagMetricsAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

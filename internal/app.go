package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prayertrack/internal/providers"
	"prayertrack/internal/services"
	"prayertrack/internal/storage"
	"prayertrack/internal/structures"
	"prayertrack/internal/syncer"
)

// App aggregates the wired core. Construction initializes the storage
// adapter (including the one-time migration) and runs one start-up
// reconciliation; the periodic schedule only spins up in Daemon mode.
type App struct {
	Config    *structures.Config
	Logger    providers.Logger
	Metrics   providers.MetricsProviderInterface
	Adapter   *storage.Adapter
	Prayer    services.PrayerServiceInterface
	Stats     services.StatsServiceInterface
	Syncer    *syncer.Synchronizer
	Scheduler *syncer.Scheduler
}

func NewApp(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, adapter *storage.Adapter, prayer services.PrayerServiceInterface, stats services.StatsServiceInterface, sync *syncer.Synchronizer, scheduler *syncer.Scheduler) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if err := adapter.Initialize(); err != nil {
		return nil, err
	}
	if adapter.Degraded() {
		logger.Warnf(providers.TypeApp, "Persistence is degraded, history may not survive this session")
	}

	if err := sync.Reconcile(); err != nil {
		logger.Errorf(providers.TypeSync, "Start-up reconciliation failed: %s", err)
	}

	return &App{
		Config:    conf,
		Logger:    logger,
		Metrics:   metrics,
		Adapter:   adapter,
		Prayer:    prayer,
		Stats:     stats,
		Syncer:    sync,
		Scheduler: scheduler,
	}, nil
}

// Daemon runs the background reconciliation schedule until SIGINT or
// SIGTERM, serving /health (and /metrics when enabled) on the local
// daemon address.
func (a *App) Daemon() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		if a.Adapter.Degraded() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintln(w, "degraded")
			return
		}
		fmt.Fprintln(w, "ok")
	})
	if a.Config.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}

	server := &http.Server{
		Addr:         a.Config.Daemon.Host + ":" + strconv.Itoa(a.Config.Daemon.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.Scheduler.Init()

	serverErr := make(chan error, 1)
	go func() {
		a.Logger.Infof(providers.TypeApp, "Daemon listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		a.Logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		a.Scheduler.Stop()
		return fmt.Errorf("daemon server error: %w", err)
	}

	a.Scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	if err := a.Syncer.Reconcile(); err != nil {
		a.Logger.Errorf(providers.TypeSync, "Final reconciliation failed: %s", err)
	}
	a.Adapter.Flush()

	a.Logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// Close flushes pending writes and releases resources.
func (a *App) Close() {
	a.Adapter.Close()
	a.Logger.Close()
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bisheshoggo/symtriage/internal/config"
	"github.com/bisheshoggo/symtriage/internal/intake"
	"github.com/bisheshoggo/symtriage/internal/knowledge"
	"github.com/bisheshoggo/symtriage/internal/reporter"
	"github.com/bisheshoggo/symtriage/internal/server"
	"github.com/bisheshoggo/symtriage/internal/store"
	"github.com/bisheshoggo/symtriage/internal/syncer"
	"github.com/bisheshoggo/symtriage/internal/triage"
)

const purgeInterval = 24 * time.Hour

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, sync loop and retention purge",
	RunE: func(cmd *cobra.Command, args []string) error {
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}
		return runServe(cfg)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cfg *config.Config) error {
	slog.Info("symtriage starting",
		"version", version,
		"instance", cfg.Instance.ID,
		"region", cfg.Instance.Region,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening check database: %w", err)
	}
	defer db.Close()

	slog.Info("check database opened", "driver", cfg.DB.Driver, "location", dbLocation(cfg))

	purge(db, cfg.DB.Retention.Duration)

	rep := reporter.NewNtfy(cfg)
	svc := intake.New(db, rep, intakeOptions(cfg))

	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return err
	}

	deps := server.Deps{
		Intake:    svc,
		Checks:    db,
		Knowledge: kb,
		Language:  triage.ParseLanguage(cfg.Locale.Language),
		Hotline:   cfg.Emergency.Hotline,
	}

	if cfg.Sync.Enabled {
		syn := newSyncer(db, cfg)
		deps.Sync = syn
		// Runs before the deferred db.Close.
		defer runBackground(ctx, syn.Run)()
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", cfg.Server.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sdNotify("READY=1")

	var watchdogCh <-chan time.Time
	if wdInterval := watchdogInterval(); wdInterval > 0 {
		// Ping at half the watchdog interval.
		t := time.NewTicker(wdInterval / 2)
		defer t.Stop()
		watchdogCh = t.C
		slog.Info("systemd watchdog enabled", "interval", wdInterval)
	}

	purgeTicker := time.NewTicker(purgeInterval)
	defer purgeTicker.Stop()

	for {
		select {
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)

		case <-purgeTicker.C:
			purge(db, cfg.DB.Retention.Duration)

		case <-watchdogCh:
			sdNotify("WATCHDOG=1")

		case <-ctx.Done():
			slog.Info("received signal, shutting down")
			sdNotify("STOPPING=1")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		}
	}
}

// runBackground starts run in its own goroutine. The returned func cancels
// it and blocks until run has returned.
func runBackground(ctx context.Context, run func(context.Context)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func intakeOptions(cfg *config.Config) intake.Options {
	return intake.Options{
		InstanceID:         cfg.Instance.ID,
		CooldownWindow:     cfg.Cooldown.Window.Duration,
		AggregateThreshold: cfg.Cooldown.AggregateThreshold,
		ShouldAlert:        cfg.ShouldAlert,
	}
}

func newSyncer(db *store.DB, cfg *config.Config) *syncer.Syncer {
	return syncer.New(db, syncer.Options{
		Endpoint: cfg.Sync.Endpoint,
		Token:    cfg.Sync.Token,
		Interval: cfg.Sync.Interval.Duration,
		Rate:     cfg.Sync.Rate,
		Burst:    cfg.Sync.Burst,
		Batch:    cfg.Sync.Batch,
	})
}

func purge(db *store.DB, retention time.Duration) {
	if retention <= 0 {
		return
	}
	purged, err := db.Purge(retention)
	if err != nil {
		slog.Warn("failed to purge old checks", "error", err)
	} else if purged > 0 {
		slog.Info("purged old checks", "count", purged, "retention", retention)
	}
}

// sdNotify sends a notification to systemd via the NOTIFY_SOCKET.
func sdNotify(state string) {
	socketAddr := os.Getenv("NOTIFY_SOCKET")
	if socketAddr == "" {
		return
	}

	conn, err := net.Dial("unixgram", socketAddr)
	if err != nil {
		slog.Debug("sd_notify: failed to connect", "error", err)
		return
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(state)); err != nil {
		slog.Debug("sd_notify: failed to send", "error", err)
	}
}

// watchdogInterval reads WATCHDOG_USEC from the environment and returns the
// watchdog interval as a time.Duration. Returns 0 if not set.
func watchdogInterval() time.Duration {
	usecStr := os.Getenv("WATCHDOG_USEC")
	if usecStr == "" {
		return 0
	}
	var usec int64
	if _, err := fmt.Sscanf(usecStr, "%d", &usec); err != nil {
		return 0
	}
	return time.Duration(usec) * time.Microsecond
}

package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/fieldshift/internal/client/remote"
	"github.com/dmitrijs2005/fieldshift/internal/logging"
)

const pingTimeout = 3 * time.Second

// Watcher probes the remote store on an interval and fires reconciliation
// on the offline-to-online transition. It starts assuming offline, so the
// first successful probe after startup also drains anything queued from a
// previous run.
type Watcher struct {
	remote   remote.Store
	sync     SyncService
	interval time.Duration
	log      logging.Logger

	online bool
}

// NewWatcher wires a Watcher with the given probe interval.
func NewWatcher(store remote.Store, syncService SyncService, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{remote: store, sync: syncService, interval: interval, log: log}
}

// Run blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pctx, cancel := context.WithTimeout(ctx, pingTimeout)
			err := w.remote.Ping(pctx)
			cancel()
			w.transition(ctx, err == nil)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) transition(ctx context.Context, online bool) {
	if online == w.online {
		return
	}
	w.online = online

	if !online {
		w.log.Info(ctx, "remote store unreachable, switching to offline mode")
		return
	}

	w.log.Info(ctx, "connectivity regained, reconciling outbox")
	report, err := w.sync.Reconcile(ctx)
	if err != nil {
		w.log.Error(ctx, "reconciliation failed", "error", err)
		return
	}
	if report.Applied+report.Failed+report.Skipped > 0 {
		w.log.Info(ctx, "reconciliation finished",
			"applied", report.Applied, "failed", report.Failed, "skipped", report.Skipped)
	}
}

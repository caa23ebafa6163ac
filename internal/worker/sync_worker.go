package worker

import (
	"context"
	"time"

	"shipment-tracker/internal/logger"
	"shipment-tracker/internal/usecase/shipment"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SyncWorker periodically imports new eligible orders and pulls order-side
// changes into shipments on a cron schedule. One run at a time; a slow sweep
// skips the next tick rather than stacking up.
type SyncWorker struct {
	importer *shipment.Importer
	schedule string
	cron     *cron.Cron
	running  chan struct{}
}

func NewSyncWorker(importer *shipment.Importer, schedule string) *SyncWorker {
	return &SyncWorker{
		importer: importer,
		schedule: schedule,
		cron:     cron.New(),
		running:  make(chan struct{}, 1),
	}
}

func (w *SyncWorker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, w.run)
	if err != nil {
		return err
	}

	w.cron.Start()
	logger.Info("Order sync worker started",
		zap.String("schedule", w.schedule),
		zap.String("event", "sync_worker_started"),
	)
	return nil
}

// Stop halts the scheduler and waits for an in-flight sweep to finish.
func (w *SyncWorker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()

	w.running <- struct{}{}
	<-w.running

	logger.Info("Order sync worker stopped",
		zap.String("event", "sync_worker_stopped"),
	)
}

func (w *SyncWorker) run() {
	select {
	case w.running <- struct{}{}:
	default:
		logger.Warn("Skipping order sync run, previous run still in progress")
		return
	}
	defer func() { <-w.running }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()

	created := 0
	if imported, err := w.importer.BulkImport(ctx, 0); err != nil {
		logger.Warn("Scheduled order import failed", zap.Error(err))
	} else {
		created = imported.Created
	}

	updated, err := w.importer.RefreshFromOrders(ctx)
	if err != nil {
		logger.Warn("Order sync run failed",
			zap.Int("created", created),
			zap.Int("updated", updated),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	logger.Info("Order sync run finished",
		zap.Int("created", created),
		zap.Int("updated", updated),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("event", "sync_run_finished"),
	)
}

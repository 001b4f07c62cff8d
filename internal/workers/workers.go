package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-smart-deals/internal/adapter"
	"github.com/MKhiriev/go-smart-deals/internal/config"
	"github.com/MKhiriev/go-smart-deals/internal/logger"
)

// Workers runs a set of workers in their own goroutines.
type Workers struct {
	workers []Worker

	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewWorkers builds the server workers. The health checker is only added
// when a reporter is given.
func NewWorkers(identityProvider adapter.IdentityProvider, pinger Pinger, reporter HealthReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{logger: logger}

	if identityProvider != nil {
		ws.workers = append(ws.workers, NewKeysRefresher(identityProvider, cfg.KeysRefreshInterval, logger))
	}
	if pinger != nil && reporter != nil {
		ws.workers = append(ws.workers, NewHealthChecker(pinger, reporter, cfg.HealthCheckInterval, logger))
	}

	return ws
}

// Start launches every worker. Workers stop when ctx is cancelled or Stop is
// called.
func (w *Workers) Start(ctx context.Context) {
	ctx, w.cancel = context.WithCancel(ctx)

	w.logger.Info().Int("count", len(w.workers)).Msg("starting workers")
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func(worker Worker) {
			defer w.wg.Done()
			worker.Run(ctx)
		}(worker)
	}
}

// Stop cancels the workers and waits for them to return.
func (w *Workers) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
	w.logger.Info().Msg("workers stopped")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-smart-deals/internal/logger"
)

// HealthChecker pings storage and reports NOT_SERVING while it is down.
type HealthChecker struct {
	pinger   Pinger
	reporter HealthReporter
	interval time.Duration

	logger *logger.Logger
}

func NewHealthChecker(pinger Pinger, reporter HealthReporter, interval time.Duration, logger *logger.Logger) *HealthChecker {
	return &HealthChecker{
		pinger:   pinger,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

func (h *HealthChecker) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, h.interval)
		err := h.pinger.Ping(pingCtx)
		cancel()

		if ok := err == nil; ok != serving {
			serving = ok
			h.reporter.SetServing(serving)

			if serving {
				h.logger.Info().Str("func", "*HealthChecker.Run").Msg("storage is reachable again")
			} else {
				h.logger.Err(err).Str("func", "*HealthChecker.Run").Msg("storage is unreachable")
			}
		}
	}
}

// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"log/slog"
	"time"
)

// Janitor periodically deletes expired sessions.
//
// It only reclaims storage. Authentication stays correct without it because
// expiry is enforced on read.
type Janitor struct {
	manager  *Manager
	interval time.Duration
	logger   *slog.Logger
}

// NewJanitor creates a [Janitor]. A non-positive interval disables [Janitor.Run].
func NewJanitor(manager *Manager, interval time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{manager: manager, interval: interval, logger: logger}
}

// Run sweeps on every tick until the context is cancelled.
func (janitor *Janitor) Run(context context.Context) {
	if janitor.interval <= 0 {
		janitor.logger.Info("session_janitor_disabled")
		return
	}

	ticker := time.NewTicker(janitor.interval)
	defer ticker.Stop()

	janitor.logger.Info("session_janitor_started", slog.Duration("interval", janitor.interval))

	for {
		select {
		case <-ticker.C:
			_, _ = janitor.Sweep(context)
		case <-context.Done():
			janitor.logger.Info("session_janitor_stopped")
			return
		}
	}
}

// Sweep performs one cleanup pass and logs its outcome.
func (janitor *Janitor) Sweep(context context.Context) (int64, error) {
	deleted, err := janitor.manager.DeleteExpired(context)
	if err != nil {
		janitor.logger.ErrorContext(context, "session_cleanup_failed", slog.Any("error", err))
		return 0, err
	}

	if deleted > 0 {
		janitor.logger.InfoContext(context, "session_cleanup_completed", slog.Int64("deleted", deleted))
	}
	return deleted, nil
}

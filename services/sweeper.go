package services

import (
	"context"
	"log/slog"
	"time"
)

// RunSessionSweeper deletes expired sessions every interval until ctx is done.
func RunSessionSweeper(ctx context.Context, registry *SessionRegistry, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := registry.SweepExpired(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}

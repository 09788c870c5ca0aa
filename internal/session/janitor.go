package session

import (
	"context"
	"time"

	"github.com/jeroenpelgrims/cookieauth/internal/logging"
)

// Janitor periodically purges expired sessions until ctx is done.
func Janitor(ctx context.Context, store Store, interval time.Duration) {
	l := logging.FromContext(ctx).With("svc", "session.janitor")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				l.Error("purge failed", "error", err)
				continue
			}
			if n > 0 {
				l.Info("purged expired sessions", "count", n)
			}
		}
	}
}

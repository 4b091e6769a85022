package mcp

import (
	"context"
	"log/slog"
	"os"
	"time"

	"patina/internal/logging"
)

// DefaultWatchInterval is how often WatchParent polls the parent pid.
const DefaultWatchInterval = 2 * time.Second

// WatchParent cancels the serve context once the launching process goes
// away, so an orphaned stdio server does not linger after its client exits.
//
// It must never read stdin: the stdio transport owns that stream.
// The goroutine exits when ctx is canceled or the parent pid changes.
func WatchParent(ctx context.Context, logger *slog.Logger, cancel context.CancelFunc) {
	watchParent(ctx, logger, cancel, DefaultWatchInterval, os.Getppid)
}

func watchParent(ctx context.Context, logger *slog.Logger, cancel context.CancelFunc, interval time.Duration, getppid func() int) {
	if logger == nil {
		logger = logging.New("mcp")
	}
	ppid := getppid()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if now := getppid(); now != ppid {
					logger.Warn("parent process exited, shutting down",
						slog.Int("parent_pid", ppid), slog.Int("current_ppid", now))
					cancel()
					return
				}
			}
		}
	}()
}

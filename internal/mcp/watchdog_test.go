package mcp

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchParent_CancelsWhenParentChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var pid atomic.Int64
	pid.Store(100)
	watchParent(ctx, nil, cancel, 5*time.Millisecond, func() int { return int(pid.Load()) })

	pid.Store(1)
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not canceled after the parent pid changed")
	}
}

func TestWatchParent_IdleWhileParentAlive(t *testing.T) {
	parent, stop := context.WithCancel(context.Background())
	defer stop()
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	watchParent(ctx, nil, cancel, 5*time.Millisecond, func() int { return 42 })

	time.Sleep(50 * time.Millisecond)
	if ctx.Err() != nil {
		t.Fatal("context canceled while the parent was alive")
	}
}

func TestWatchParent_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int64
	watchParent(ctx, nil, cancel, 5*time.Millisecond, func() int {
		calls.Add(1)
		return 7
	})
	cancel()
	time.Sleep(30 * time.Millisecond)
	seen := calls.Load()
	time.Sleep(30 * time.Millisecond)
	if calls.Load() != seen {
		t.Error("watchdog kept polling after cancel")
	}
}

package watcher

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func newTestWatcher(run RunFunc) *Watcher {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New("input", 0, 2*time.Second, time.Second, logger, run)
}

func TestShouldTrigger_Debounce(t *testing.T) {
	w := newTestWatcher(nil)
	now := time.Now()

	if !w.shouldTrigger(now) {
		t.Fatal("first trigger rejected")
	}

	w.lastTrigger = now
	if w.shouldTrigger(now.Add(500 * time.Millisecond)) {
		t.Error("trigger inside the debounce window accepted")
	}
	if !w.shouldTrigger(now.Add(3 * time.Second)) {
		t.Error("trigger after the debounce window rejected")
	}
}

func TestShouldTrigger_DropsWhileProcessing(t *testing.T) {
	w := newTestWatcher(nil)
	w.processing.Store(true)

	if w.shouldTrigger(time.Now().Add(time.Minute)) {
		t.Error("trigger accepted while a run is in flight")
	}

	w.processing.Store(false)
	if !w.shouldTrigger(time.Now().Add(time.Minute)) {
		t.Error("trigger rejected after the run finished")
	}
}

func TestFire_RunsAndClearsGuard(t *testing.T) {
	ran := 0
	w := newTestWatcher(func(ctx context.Context, trigger string) error {
		ran++
		if trigger != "watch" {
			t.Errorf("trigger = %q, want %q", trigger, "watch")
		}
		return nil
	})

	w.fire(context.Background(), "watch")
	if ran != 1 {
		t.Fatalf("run called %d times, want 1", ran)
	}
	if w.processing.Load() {
		t.Error("processing guard still set after fire returned")
	}
	if w.lastTrigger.IsZero() {
		t.Error("lastTrigger not recorded")
	}
}

func TestFire_CancelledDuringSettle(t *testing.T) {
	ran := 0
	w := newTestWatcher(func(ctx context.Context, trigger string) error {
		ran++
		return nil
	})
	w.settle = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w.fire(ctx, "watch")
	if ran != 0 {
		t.Error("run executed despite cancelled context")
	}
	if w.processing.Load() {
		t.Error("processing guard still set after cancelled fire")
	}
}

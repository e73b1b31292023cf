package sandbox

import (
	"context"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMonitor(t *testing.T) {
	defer goleak.VerifyNone(t)
	sb, loader, registry := loaderFixture(t)
	monitor := NewMonitor(loader)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- monitor.Start(ctx)
	}()
	// Give the watcher a moment to arm
	time.Sleep(100 * time.Millisecond)

	tool := ToolDescription{
		Name:        "get_now",
		Description: "Returns the current time.",
		Code:        "def run(args): pass",
	}
	if err := tool.Save(sb.Dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		if _, ok := registry.Get("get_now"); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("expected monitor to register the new tool")
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop")
	}
}

func TestMonitorDebounce(t *testing.T) {
	_, loader, _ := loaderFixture(t)
	monitor := NewMonitor(loader)
	if monitor.debounced("/tmp/x.py") {
		t.Fatal("first event should pass")
	}
	if !monitor.debounced("/tmp/x.py") {
		t.Fatal("immediate repeat should be debounced")
	}
	if monitor.debounced("/tmp/y.py") {
		t.Fatal("other paths should pass")
	}
}

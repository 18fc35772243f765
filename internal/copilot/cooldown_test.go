package copilot

import (
	"testing"
	"time"
)

func TestGateTripAndReopen(t *testing.T) {
	var scheduled []func()
	reopened := 0
	gate := NewGate(60*time.Second, func() { reopened++ })
	gate.schedule = func(d time.Duration, fn func()) {
		if d != 60*time.Second {
			t.Errorf("scheduled delay = %v, want 60s", d)
		}
		scheduled = append(scheduled, fn)
	}

	if gate.Cooling() {
		t.Fatal("new gate should be open")
	}
	if !gate.Trip() {
		t.Fatal("first trip should transition")
	}
	if !gate.Cooling() {
		t.Fatal("gate should be cooling after trip")
	}
	if len(scheduled) != 1 {
		t.Fatalf("scheduled %d reopens, want 1", len(scheduled))
	}

	scheduled[0]()
	if gate.Cooling() {
		t.Error("gate should reopen after the window elapses")
	}
	if reopened != 1 {
		t.Errorf("onReopen fired %d times, want 1", reopened)
	}
}

func TestGateTripWhileCoolingIsNoop(t *testing.T) {
	var scheduled []func()
	gate := NewGate(time.Minute, nil)
	gate.schedule = func(d time.Duration, fn func()) { scheduled = append(scheduled, fn) }

	if !gate.Trip() {
		t.Fatal("first trip should transition")
	}
	if gate.Trip() {
		t.Error("second trip while cooling should be a no-op")
	}
	if len(scheduled) != 1 {
		t.Fatalf("scheduled %d reopens, want 1 (no overlapping timers)", len(scheduled))
	}

	scheduled[0]()
	if gate.Cooling() {
		t.Error("gate should be open after single reopen")
	}
	if !gate.Trip() {
		t.Error("gate should accept a fresh trip after reopening")
	}
}

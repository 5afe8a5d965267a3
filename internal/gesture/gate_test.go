package gesture

import (
	"testing"
	"time"
)

func TestGate_CooldownWindow(t *testing.T) {
	cooldown := 1200 * time.Millisecond
	g := NewGate(cooldown)
	t0 := time.Now()

	if !g.Allow(ClosedFist, t0) {
		t.Fatal("initial state should be ready")
	}

	if g.Allow(ClosedFist, t0.Add(cooldown-time.Millisecond)) {
		t.Error("gesture 1ms before the window elapses must not fire")
	}

	if !g.Allow(ClosedFist, t0.Add(cooldown+time.Millisecond)) {
		t.Error("gesture 1ms after the window elapses must fire")
	}
}

func TestGate_RefusedAttemptDoesNotExtendCooldown(t *testing.T) {
	cooldown := time.Second
	g := NewGate(cooldown)
	t0 := time.Now()

	g.Allow(Palm, t0)
	g.Allow(Palm, t0.Add(500*time.Millisecond)) // refused

	if !g.Allow(Palm, t0.Add(cooldown+time.Millisecond)) {
		t.Error("cooldown should run from the last fired action, not the last attempt")
	}
}

func TestGate_ContinuousBypass(t *testing.T) {
	g := NewGate(time.Second)
	t0 := time.Now()

	g.Allow(ClosedFist, t0)

	// Pointer control fires every frame while the gate is cooling.
	for i := 0; i < 10; i++ {
		now := t0.Add(time.Duration(i*33) * time.Millisecond)
		if !g.Allow(MouseControl, now) {
			t.Fatalf("continuous label refused at frame %d", i)
		}
	}

	// And bypassing never touches the cooldown timestamp.
	if g.Allow(ClosedFist, t0.Add(900*time.Millisecond)) {
		t.Error("discrete label fired during cooldown after continuous bypass")
	}
	if !g.Allow(ClosedFist, t0.Add(1100*time.Millisecond)) {
		t.Error("discrete label should fire once the original window elapses")
	}
}

func TestGate_ZoomBypasses(t *testing.T) {
	g := NewGate(time.Second)
	t0 := time.Now()

	g.Allow(ClosedFist, t0)
	if !g.Allow(ZoomIn, t0.Add(10*time.Millisecond)) {
		t.Error("zoom deltas carry their own jitter gating and bypass the cooldown")
	}
}

func TestGate_Ready(t *testing.T) {
	g := NewGate(time.Second)
	t0 := time.Now()

	if !g.Ready(t0) {
		t.Error("fresh gate should report ready")
	}

	g.Allow(Palm, t0)
	if g.Ready(t0.Add(500*time.Millisecond)) {
		t.Error("gate should report cooling inside the window")
	}
	if !g.Ready(t0.Add(1001*time.Millisecond)) {
		t.Error("gate should report ready after the window")
	}

	// Ready never consumes the gate.
	if !g.Allow(Palm, t0.Add(1002*time.Millisecond)) {
		t.Error("Ready must not record a firing")
	}
}

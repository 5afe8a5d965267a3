package gesture

import "time"

// Gate is the temporal debouncer for discrete actions. It cycles
// between ready and cooling: firing a discrete action starts the
// cooldown, and further discrete labels are refused until the window
// elapses. Continuous labels bypass the gate every frame and never
// touch the cooldown timestamp.
//
// Tracking loss deliberately does not reset the gate, so a gesture
// reappearing right after a brief dropout still respects the cooldown.
type Gate struct {
	cooldown time.Duration
	lastFire time.Time
	fired    bool
}

// NewGate creates a Gate in the ready state.
func NewGate(cooldown time.Duration) *Gate {
	return &Gate{cooldown: cooldown}
}

// Allow reports whether an action for the given label may fire at now.
// Allowing a discrete label records the firing time and starts the
// cooldown; continuous labels are always allowed and record nothing.
func (g *Gate) Allow(label Label, now time.Time) bool {
	if label.Continuous() {
		return true
	}
	if g.fired && now.Sub(g.lastFire) <= g.cooldown {
		return false
	}
	g.lastFire = now
	g.fired = true
	return true
}

// Ready reports whether a discrete action could fire at now without
// consuming the gate. Used for UI feedback while cooling.
func (g *Gate) Ready(now time.Time) bool {
	return !g.fired || now.Sub(g.lastFire) > g.cooldown
}

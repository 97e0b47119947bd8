package track

import "github.com/darriusnjh/KIRKIFY/internal/detector"

// Policy decides whether a detected gesture becomes an input event. It is
// deliberately separate from the gesture detector so game modes can swap the
// rule: the counting game requires alternation, the rhythm game does not.
type Policy interface {
	// Admit reports whether the event passes. Admitting may advance the
	// policy's state; rejecting never does.
	Admit(ev GestureEvent) bool

	// Expected returns the side the policy is waiting for, or SideUnknown
	// when any side is acceptable. Advisory, for UI feedback.
	Expected() detector.Side

	// Reset returns the policy to its initial state.
	Reset()
}

// AlternationGate enforces strict left/right turn-taking: a side may not
// fire twice in a row. The very first gesture of a session is exempt.
type AlternationGate struct {
	lastAccepted detector.Side
}

// NewAlternationGate creates a gate in the no-prior-gesture state.
func NewAlternationGate() *AlternationGate {
	return &AlternationGate{}
}

// Admit accepts the event iff no gesture has been accepted yet or the
// event's side differs from the last accepted side. Rejection leaves the
// gate unchanged, so the expected side stays the same until it arrives.
func (g *AlternationGate) Admit(ev GestureEvent) bool {
	if g.lastAccepted != detector.SideUnknown && ev.Side == g.lastAccepted {
		return false
	}
	g.lastAccepted = ev.Side
	return true
}

// Expected returns the side that must fire next, or SideUnknown before the
// first accepted gesture.
func (g *AlternationGate) Expected() detector.Side {
	return g.lastAccepted.Other()
}

// Reset clears the turn state. The gate never times out on its own; only an
// explicit session restart lands here.
func (g *AlternationGate) Reset() {
	g.lastAccepted = detector.SideUnknown
}

// PassAllGate admits every gesture. Used by modes whose correctness rule is
// positional rather than alternating.
type PassAllGate struct{}

// NewPassAllGate creates a pass-through policy.
func NewPassAllGate() *PassAllGate {
	return &PassAllGate{}
}

// Admit always reports true.
func (*PassAllGate) Admit(GestureEvent) bool { return true }

// Expected always reports SideUnknown.
func (*PassAllGate) Expected() detector.Side { return detector.SideUnknown }

// Reset is a no-op.
func (*PassAllGate) Reset() {}

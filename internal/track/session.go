package track

import (
	"fmt"
	"sync"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
)

// Session owns all mutable tracking state for one play session: both
// HandStates, the normalizer, and the gesture policy. A session is advanced
// by exactly one goroutine; the internal mutex exists so Reset (tray, game
// restart) can land safely from another one without exposing a partially
// cleared state.
type Session struct {
	mu     sync.Mutex
	tuning Tuning
	norm   *Normalizer
	left   HandState
	right  HandState
	gate   Policy
}

// NewSession validates the tuning and builds a session. The gesture policy
// follows Tuning.AlternationEnabled; use SetPolicy to install a custom one.
func NewSession(t Tuning) (*Session, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tracking tuning: %w", err)
	}

	s := &Session{
		tuning: t,
		norm:   NewNormalizer(t.MinConfidence, t.Mirror),
	}
	if t.AlternationEnabled {
		s.gate = NewAlternationGate()
	} else {
		s.gate = NewPassAllGate()
	}
	return s, nil
}

// SetPolicy replaces the gesture policy. The new policy starts from its
// current state; call Reset first when switching modes mid-session.
func (s *Session) SetPolicy(p Policy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p != nil {
		s.gate = p
	}
}

// Advance runs the full per-frame pipeline (normalize, stillness, gesture,
// gate) atomically for one frame and returns the accepted events plus the
// advisory identity-correction flag. frame must be the caller's
// monotonically increasing frame index; re-advancing the same index is safe
// and cannot double-fire.
func (s *Session) Advance(frame int64, observations []detector.Observation) ([]GestureEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical := s.norm.Normalize(observations)

	var events []GestureEvent
	for _, side := range [2]detector.Side{detector.SideLeft, detector.SideRight} {
		if ev, ok := s.advanceSide(side, &canonical, frame); ok {
			events = append(events, ev)
		}
	}

	return events, canonical.Corrected
}

// advanceSide steps one side through stillness tracking and gesture
// detection. At most one event per side per frame.
func (s *Session) advanceSide(side detector.Side, canonical *CanonicalFrame, frame int64) (GestureEvent, bool) {
	h := s.hand(side)

	obs := canonical.Hand(side)
	if obs == nil {
		if h.miss(s.tuning) {
			*h = HandState{}
		}
		return GestureEvent{}, false
	}

	y := obs.Center.Y
	if !h.tracked {
		h.seed(y, frame)
		return GestureEvent{}, false
	}

	h.Present = true
	h.absentFrames = 0
	h.observe(y, frame, s.tuning)

	if !h.detectGesture(frame, y, s.tuning) {
		return GestureEvent{}, false
	}

	ev := newGestureEvent(side, frame)
	if !s.gate.Admit(ev) {
		return GestureEvent{}, false
	}
	return ev, true
}

// Reset atomically clears both HandStates and returns the policy to its
// initial state. No intermediate state is observable from Advance.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.left = HandState{}
	s.right = HandState{}
	s.gate.Reset()
}

// Expected returns the side the gesture policy is waiting for, or
// SideUnknown when either side may fire.
func (s *Session) Expected() detector.Side {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.Expected()
}

// Hand returns a copy of the side's tracking state, for diagnostics and
// tests.
func (s *Session) Hand(side detector.Side) HandState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.hand(side)
}

func (s *Session) hand(side detector.Side) *HandState {
	if side == detector.SideLeft {
		return &s.left
	}
	return &s.right
}

// Tuning returns the session's tuning values.
func (s *Session) Tuning() Tuning {
	return s.tuning
}

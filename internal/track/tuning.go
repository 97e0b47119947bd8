// Package track turns per-frame hand observations into debounced,
// turn-aware gesture events. It owns the per-side tracking state machine:
// identity normalization, stillness-based reference resets, rise detection
// with a frame-count cooldown, and the alternation gate.
package track

import "fmt"

// Tuning holds every named tunable of the tracking core. All timing is
// expressed in frame counts rather than wall-clock durations; the incoming
// frame sequence is the only clock.
type Tuning struct {
	// StillEpsilonPixels is the vertical movement below which a hand counts
	// as motionless for one frame.
	StillEpsilonPixels int

	// StillResetFrames is the number of consecutive motionless frames after
	// which the reference position is refreshed to the current position.
	StillResetFrames int

	// JumpThresholdPixels is the upward rise from the reference position
	// required to fire a gesture.
	JumpThresholdPixels int

	// JumpCooldownFrames is the minimum number of frames between two
	// gestures on the same side.
	JumpCooldownFrames int

	// AbsentGraceFrames is how many consecutive absent frames a side's
	// tracking state survives before it is discarded.
	AbsentGraceFrames int

	// MinConfidence drops observations below this confidence before
	// normalization.
	MinConfidence float64

	// AlternationEnabled selects the alternation gate; when false every
	// gesture passes through (rhythm mode).
	AlternationEnabled bool

	// Mirror declares whether the capture layer flips frames horizontally
	// for display. When true the smaller center X maps to the Left hand
	// during identity correction; when false the assignment is reversed.
	Mirror bool
}

// DefaultTuning returns the tuning used by the stock game modes.
// Frame counts assume the camera's active rate; 30 still frames is roughly
// half a second at 60 FPS.
func DefaultTuning() Tuning {
	return Tuning{
		StillEpsilonPixels:  5,
		StillResetFrames:    30,
		JumpThresholdPixels: 24,
		JumpCooldownFrames:  5,
		AbsentGraceFrames:   15,
		MinConfidence:       0.3,
		AlternationEnabled:  true,
		Mirror:              true,
	}
}

// Validate checks every tunable against its valid range. It is called once
// at configuration time so per-frame code never has to re-check.
func (t Tuning) Validate() error {
	if t.StillEpsilonPixels <= 0 {
		return fmt.Errorf("still_epsilon_pixels must be positive, got %d", t.StillEpsilonPixels)
	}
	if t.StillResetFrames <= 0 {
		return fmt.Errorf("still_reset_frames must be positive, got %d", t.StillResetFrames)
	}
	if t.JumpThresholdPixels <= 0 {
		return fmt.Errorf("jump_threshold_pixels must be positive, got %d", t.JumpThresholdPixels)
	}
	if t.JumpCooldownFrames < 0 {
		return fmt.Errorf("jump_cooldown_frames must not be negative, got %d", t.JumpCooldownFrames)
	}
	if t.AbsentGraceFrames < 0 {
		return fmt.Errorf("absent_grace_frames must not be negative, got %d", t.AbsentGraceFrames)
	}
	if t.MinConfidence < 0 || t.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be within [0, 1], got %g", t.MinConfidence)
	}
	return nil
}

package track

// noGesture marks a hand that has not fired yet, so the cooldown never
// blocks the first gesture of a session.
const noGesture int64 = -1

// HandState is the persistent per-side tracking record. It is owned by the
// Session and mutated at most once per frame per side.
type HandState struct {
	// ReferenceY is the baseline vertical position new motion is measured
	// against.
	ReferenceY int

	// LastSeenY is the most recent observed vertical position.
	LastSeenY int

	// StillFrames counts consecutive near-motionless frames.
	StillFrames int

	// LastGestureFrame is the frame index of the side's last gesture, or
	// noGesture before the first one.
	LastGestureFrame int64

	// Present reports whether the side was observed this frame.
	Present bool

	absentFrames int
	tracked      bool
	lastFrame    int64
}

// seed starts tracking a side at the given position. The reference pins to
// the first sighting, so a gesture needs genuine subsequent motion.
func (h *HandState) seed(y int, frame int64) {
	*h = HandState{
		ReferenceY:       y,
		LastSeenY:        y,
		LastGestureFrame: noGesture,
		Present:          true,
		tracked:          true,
		lastFrame:        frame,
	}
}

// observe runs the stillness rule for one frame where the side is present.
// A hand that stays within the epsilon for long enough gets a fresh
// reference at its current resting position; without this, a hand that rose
// once and settled high could never gesture again because the reference
// would stay pinned to where it started.
//
// Stillness is counted per frame index, not per call, so a replayed frame
// cannot inflate the counter.
func (h *HandState) observe(y int, frame int64, t Tuning) {
	if frame == h.lastFrame {
		return
	}
	h.lastFrame = frame

	delta := y - h.LastSeenY
	if delta < 0 {
		delta = -delta
	}

	if delta < t.StillEpsilonPixels {
		h.StillFrames++
	} else {
		h.StillFrames = 0
	}

	if h.StillFrames >= t.StillResetFrames {
		h.ReferenceY = y
		h.StillFrames = 0
	}

	h.LastSeenY = y
}

// miss records one frame of absence. It reports whether the grace window
// has been exceeded, in which case the caller discards the state; until
// then the state is left untouched so a single-frame detector dropout does
// not erase tracking.
func (h *HandState) miss(t Tuning) bool {
	if !h.tracked {
		return false
	}
	h.Present = false
	h.absentFrames++
	return h.absentFrames > t.AbsentGraceFrames
}

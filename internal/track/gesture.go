package track

import (
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
	"github.com/google/uuid"
)

// GestureEvent is one validated upward-motion gesture. Immutable once
// created.
type GestureEvent struct {
	ID    uuid.UUID     `json:"id"`
	Side  detector.Side `json:"side"`
	Frame int64         `json:"frame"`
	Time  time.Time     `json:"time"`
}

// detectGesture applies the jump rule for a present side: an upward rise
// from the reference of at least the threshold, outside the side's cooldown
// window. On a hit the reference advances to the current position so a
// sustained rise fires exactly once, and the cooldown clock restarts.
//
// A negative or sub-threshold rise never fires and leaves the cooldown
// untouched. Because the cooldown compares frame indices rather than call
// counts, replaying a frame cannot shorten it.
func (h *HandState) detectGesture(frame int64, y int, t Tuning) bool {
	rise := h.ReferenceY - y
	if rise < t.JumpThresholdPixels {
		return false
	}

	if h.LastGestureFrame != noGesture && frame-h.LastGestureFrame < int64(t.JumpCooldownFrames) {
		return false
	}

	h.LastGestureFrame = frame
	h.ReferenceY = y
	h.StillFrames = 0
	return true
}

// newGestureEvent stamps a fresh event for the given side and frame.
func newGestureEvent(side detector.Side, frame int64) GestureEvent {
	return GestureEvent{
		ID:    uuid.New(),
		Side:  side,
		Frame: frame,
		Time:  time.Now(),
	}
}

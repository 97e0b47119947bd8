// Package game implements the playable modes driven by gesture events:
// a timed counting game and a rhythm game with scheduled notes.
package game

import (
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/track"
)

// Result summarizes a finished round.
type Result struct {
	Mode      string
	Score     int
	Gestures  int
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns the round length.
func (r Result) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Game is a mode that consumes gesture events while a round runs.
type Game interface {
	Name() string

	// Policy returns the turn-taking policy the tracking session should
	// use while this game runs, or nil to keep the configured default.
	Policy() track.Policy

	Start(now time.Time)
	Active() bool

	// HandleGesture feeds one accepted gesture event into the round.
	HandleGesture(ev track.GestureEvent)

	// Finish ends the round and returns its result. Finishing an
	// inactive game returns the zero Result.
	Finish(now time.Time) Result
}

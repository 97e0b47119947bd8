package game

import (
	"sync"
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/track"
)

// ModeCounting names the counting game in results and storage.
const ModeCounting = "counting"

// CountingGame counts accepted gestures within a fixed-length round. With
// alternation on upstream, the count is the number of clean left/right
// turns the player managed.
type CountingGame struct {
	mu       sync.Mutex
	duration time.Duration
	active   bool
	started  time.Time
	count    int
}

// NewCountingGame creates a counting game with the given round length.
func NewCountingGame(duration time.Duration) *CountingGame {
	return &CountingGame{duration: duration}
}

func (g *CountingGame) Name() string { return ModeCounting }

// Policy keeps the configured turn-taking policy.
func (g *CountingGame) Policy() track.Policy { return nil }

// Start begins a round. Starting a running round restarts it.
func (g *CountingGame) Start(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.active = true
	g.started = now
	g.count = 0
}

func (g *CountingGame) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// HandleGesture counts one gesture. Events arriving after the round length
// has elapsed are ignored; the round still needs Finish to close.
func (g *CountingGame) HandleGesture(ev track.GestureEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return
	}
	if ev.Time.Sub(g.started) > g.duration {
		return
	}
	g.count++
}

// Count returns the running count.
func (g *CountingGame) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.count
}

// Deadline returns when the current round ends.
func (g *CountingGame) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started.Add(g.duration)
}

// Finish closes the round. The score is the gesture count.
func (g *CountingGame) Finish(now time.Time) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return Result{}
	}
	g.active = false

	return Result{
		Mode:      ModeCounting,
		Score:     g.count,
		Gestures:  g.count,
		StartedAt: g.started,
		EndedAt:   now,
	}
}

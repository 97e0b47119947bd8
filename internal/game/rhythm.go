package game

import (
	"sync"
	"time"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
	"github.com/darriusnjh/KIRKIFY/internal/track"
)

// ModeRhythm names the rhythm game in results and storage.
const ModeRhythm = "rhythm"

// Judgment grades how close a hit landed to its note.
type Judgment int

const (
	JudgmentMiss Judgment = iota
	JudgmentGood
	JudgmentPerfect
)

func (j Judgment) String() string {
	switch j {
	case JudgmentPerfect:
		return "perfect"
	case JudgmentGood:
		return "good"
	default:
		return "miss"
	}
}

// Judgment scoring and hit windows, measured in frame indices.
const (
	perfectWindowFrames = 2
	goodWindowFrames    = 6

	perfectPoints = 100
	goodPoints    = 50
)

// Note is one scheduled beat: the side that must fire and the frame it is
// due on.
type Note struct {
	Side  detector.Side
	Frame int64
}

// RhythmGame scores gestures against a note chart. Hits are matched by side
// within a frame window around each note; turn-taking does not apply, so the
// game runs the session with a pass-all policy.
type RhythmGame struct {
	mu       sync.Mutex
	chart    []Note
	duration time.Duration
	hit      []bool
	active   bool
	started  time.Time
	score    int
	gestures int
	perfects int
	goods    int
}

// NewRhythmGame creates a rhythm game for the given chart and round length.
// The chart is assumed sorted by frame.
func NewRhythmGame(chart []Note, duration time.Duration) *RhythmGame {
	return &RhythmGame{chart: chart, duration: duration}
}

func (g *RhythmGame) Name() string { return ModeRhythm }

// Policy disables turn-taking for the duration of the game.
func (g *RhythmGame) Policy() track.Policy { return track.NewPassAllGate() }

// Start begins a round, clearing all hit state.
func (g *RhythmGame) Start(now time.Time) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.active = true
	g.started = now
	g.hit = make([]bool, len(g.chart))
	g.score = 0
	g.gestures = 0
	g.perfects = 0
	g.goods = 0
}

func (g *RhythmGame) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active
}

// HandleGesture matches the event against the nearest unhit note of the same
// side within the good window, and scores it by proximity. Unmatched events
// score nothing.
func (g *RhythmGame) HandleGesture(ev track.GestureEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return
	}
	g.gestures++

	best := -1
	var bestDelta int64
	for i, note := range g.chart {
		if g.hit[i] || note.Side != ev.Side {
			continue
		}
		delta := ev.Frame - note.Frame
		if delta < 0 {
			delta = -delta
		}
		if delta > goodWindowFrames {
			continue
		}
		if best == -1 || delta < bestDelta {
			best = i
			bestDelta = delta
		}
	}
	if best == -1 {
		return
	}

	g.hit[best] = true
	if bestDelta <= perfectWindowFrames {
		g.perfects++
		g.score += perfectPoints
	} else {
		g.goods++
		g.score += goodPoints
	}
}

// Judge grades a frame distance without mutating state. Exposed for UI
// feedback.
func Judge(delta int64) Judgment {
	if delta < 0 {
		delta = -delta
	}
	switch {
	case delta <= perfectWindowFrames:
		return JudgmentPerfect
	case delta <= goodWindowFrames:
		return JudgmentGood
	default:
		return JudgmentMiss
	}
}

// Deadline returns when the current round ends.
func (g *RhythmGame) Deadline() time.Time {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started.Add(g.duration)
}

// Progress returns hit and total note counts.
func (g *RhythmGame) Progress() (hits, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, h := range g.hit {
		if h {
			hits++
		}
	}
	return hits, len(g.chart)
}

// Finish closes the round.
func (g *RhythmGame) Finish(now time.Time) Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active {
		return Result{}
	}
	g.active = false

	return Result{
		Mode:      ModeRhythm,
		Score:     g.score,
		Gestures:  g.gestures,
		StartedAt: g.started,
		EndedAt:   now,
	}
}

// DefaultChart builds a simple alternating chart: count notes, starting on
// the left, spaced interval frames apart from the first frame.
func DefaultChart(first int64, interval int64, count int) []Note {
	chart := make([]Note, 0, count)
	side := detector.SideLeft
	for i := 0; i < count; i++ {
		chart = append(chart, Note{Side: side, Frame: first + int64(i)*interval})
		side = side.Other()
	}
	return chart
}

package game

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
	"github.com/darriusnjh/KIRKIFY/internal/track"
)

func eventAt(side detector.Side, frame int64, at time.Time) track.GestureEvent {
	return track.GestureEvent{
		ID:    uuid.New(),
		Side:  side,
		Frame: frame,
		Time:  at,
	}
}

func TestCountingGame_CountsWithinRound(t *testing.T) {
	start := time.Now()
	g := NewCountingGame(30 * time.Second)
	g.Start(start)

	g.HandleGesture(eventAt(detector.SideLeft, 10, start.Add(1*time.Second)))
	g.HandleGesture(eventAt(detector.SideRight, 20, start.Add(2*time.Second)))
	g.HandleGesture(eventAt(detector.SideLeft, 30, start.Add(3*time.Second)))

	if g.Count() != 3 {
		t.Errorf("Count() = %d, want 3", g.Count())
	}

	result := g.Finish(start.Add(30 * time.Second))
	if result.Mode != ModeCounting {
		t.Errorf("Mode = %q, want %q", result.Mode, ModeCounting)
	}
	if result.Score != 3 || result.Gestures != 3 {
		t.Errorf("Score=%d Gestures=%d, want 3/3", result.Score, result.Gestures)
	}
	if result.Duration() != 30*time.Second {
		t.Errorf("Duration = %v, want 30s", result.Duration())
	}
}

func TestCountingGame_IgnoresLateGestures(t *testing.T) {
	start := time.Now()
	g := NewCountingGame(30 * time.Second)
	g.Start(start)

	g.HandleGesture(eventAt(detector.SideLeft, 10, start.Add(29*time.Second)))
	g.HandleGesture(eventAt(detector.SideRight, 20, start.Add(31*time.Second)))

	if g.Count() != 1 {
		t.Errorf("Count() = %d, want 1 (late gesture ignored)", g.Count())
	}
}

func TestCountingGame_InactiveIgnoresGestures(t *testing.T) {
	g := NewCountingGame(30 * time.Second)

	g.HandleGesture(eventAt(detector.SideLeft, 10, time.Now()))
	if g.Count() != 0 {
		t.Errorf("Count() = %d, want 0 before Start", g.Count())
	}

	if result := g.Finish(time.Now()); result.Mode != "" {
		t.Errorf("Finish() on inactive game = %+v, want zero Result", result)
	}
}

func TestCountingGame_RestartClearsCount(t *testing.T) {
	start := time.Now()
	g := NewCountingGame(30 * time.Second)

	g.Start(start)
	g.HandleGesture(eventAt(detector.SideLeft, 10, start.Add(time.Second)))
	g.Start(start.Add(2 * time.Second))

	if g.Count() != 0 {
		t.Errorf("Count() = %d, want 0 after restart", g.Count())
	}
}

func TestCountingGame_PolicyKeepsDefault(t *testing.T) {
	if NewCountingGame(time.Second).Policy() != nil {
		t.Error("counting game should keep the configured turn policy")
	}
}

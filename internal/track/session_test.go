package track

import (
	"testing"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
)

func testTuning() Tuning {
	t := DefaultTuning()
	t.JumpThresholdPixels = 20
	t.JumpCooldownFrames = 5
	t.StillEpsilonPixels = 5
	t.StillResetFrames = 30
	t.AbsentGraceFrames = 3
	return t
}

// advanceBoth feeds one frame with both hands present at the given heights.
func advanceBoth(t *testing.T, s *Session, frame int64, leftY, rightY int) []GestureEvent {
	t.Helper()
	events, _ := s.Advance(frame, []detector.Observation{
		obsAt(detector.SideLeft, 100, leftY, 0.9),
		obsAt(detector.SideRight, 400, rightY, 0.9),
	})
	return events
}

func sides(events []GestureEvent) []detector.Side {
	out := make([]detector.Side, len(events))
	for i, ev := range events {
		out[i] = ev.Side
	}
	return out
}

func TestSession_RejectsBadTuning(t *testing.T) {
	bad := DefaultTuning()
	bad.JumpThresholdPixels = -1

	if _, err := NewSession(bad); err == nil {
		t.Fatal("negative threshold must fail at construction time")
	}
}

func TestSession_SingleJump(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}

	// Frame 0 seeds both hands; frame 1 raises the left hand 50 px.
	if events := advanceBoth(t, s, 0, 400, 400); len(events) != 0 {
		t.Fatalf("seeding frame produced events: %v", sides(events))
	}
	events := advanceBoth(t, s, 1, 350, 400)
	if len(events) != 1 || events[0].Side != detector.SideLeft {
		t.Fatalf("events = %v, want one Left", sides(events))
	}
	if events[0].Frame != 1 {
		t.Errorf("event frame = %d, want 1", events[0].Frame)
	}
}

func TestSession_AlternationSequence(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	var accepted []detector.Side

	// Left jumps (accepted), left jumps again (rejected), right jumps
	// (accepted), left jumps (accepted). Frames spaced past the cooldown.
	steps := []struct {
		frame        int64
		leftY        int
		rightY       int
	}{
		{frame: 10, leftY: 350, rightY: 400}, // Left fires
		{frame: 20, leftY: 300, rightY: 400}, // Left fires, gate rejects
		{frame: 30, leftY: 300, rightY: 350}, // Right fires
		{frame: 40, leftY: 250, rightY: 350}, // Left fires
	}
	for _, step := range steps {
		accepted = append(accepted, sides(advanceBoth(t, s, step.frame, step.leftY, step.rightY))...)
	}

	want := []detector.Side{detector.SideLeft, detector.SideRight, detector.SideLeft}
	if len(accepted) != len(want) {
		t.Fatalf("accepted = %v, want %v", accepted, want)
	}
	for i := range want {
		if accepted[i] != want[i] {
			t.Fatalf("accepted = %v, want %v", accepted, want)
		}
	}
}

func TestSession_AlternationDisabledAcceptsRepeats(t *testing.T) {
	tuning := testTuning()
	tuning.AlternationEnabled = false

	s, err := NewSession(tuning)
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	total := 0
	steps := []struct {
		frame        int64
		leftY, rightY int
	}{
		{frame: 10, leftY: 350, rightY: 400},
		{frame: 20, leftY: 300, rightY: 400},
		{frame: 30, leftY: 300, rightY: 350},
		{frame: 40, leftY: 250, rightY: 350},
	}
	for _, step := range steps {
		total += len(advanceBoth(t, s, step.frame, step.leftY, step.rightY))
	}

	if total != 4 {
		t.Errorf("accepted %d events, want 4 with alternation disabled", total)
	}
}

func TestSession_CooldownLimitsSameSide(t *testing.T) {
	tuning := testTuning()
	tuning.AlternationEnabled = false

	s, err := NewSession(tuning)
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	// Two qualifying rises on the left within the 5-frame cooldown.
	first := advanceBoth(t, s, 1, 350, 400)
	second := advanceBoth(t, s, 3, 300, 400)

	if len(first)+len(second) != 1 {
		t.Errorf("got %d events, want exactly 1 inside the cooldown window",
			len(first)+len(second))
	}
}

func TestSession_ReplayedFrameDoesNotDoubleFire(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	first := advanceBoth(t, s, 1, 350, 400)
	replay := advanceBoth(t, s, 1, 350, 400)

	if len(first) != 1 {
		t.Fatalf("first pass events = %d, want 1", len(first))
	}
	if len(replay) != 0 {
		t.Errorf("replaying the same frame fired %d extra events", len(replay))
	}
}

func TestSession_StillnessUnblocksStaleReference(t *testing.T) {
	tuning := testTuning()
	tuning.AlternationEnabled = false
	s, err := NewSession(tuning)
	if err != nil {
		t.Fatal(err)
	}

	// Seed, jump once (reference advances to 350), then drop the hand to
	// 450 and rest there. With the reference pinned at 350, a later jump to
	// 420 is a 70 px downward "rise" and could never fire, which is the
	// staleness the stillness reset exists to prevent.
	advanceBoth(t, s, 0, 400, 400)
	if events := advanceBoth(t, s, 10, 350, 400); len(events) != 1 {
		t.Fatalf("setup jump did not fire: %v", sides(events))
	}

	frame := int64(11)
	advanceBoth(t, s, frame, 450, 400) // drop
	frame++
	for i := 0; i <= tuning.StillResetFrames; i++ {
		advanceBoth(t, s, frame, 450, 400)
		frame++
	}

	if h := s.Hand(detector.SideLeft); h.ReferenceY != 450 {
		t.Fatalf("reference = %d, want 450 after the stillness reset", h.ReferenceY)
	}

	// A 30 px rise from the fresh resting position fires.
	events := advanceBoth(t, s, frame, 420, 400)
	if len(events) != 1 || events[0].Side != detector.SideLeft {
		t.Errorf("events = %v, want one Left measured from the fresh reference", sides(events))
	}
}

func TestSession_ResetClearsTurnState(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)
	events := advanceBoth(t, s, 10, 400, 350)
	if len(events) != 1 || events[0].Side != detector.SideRight {
		t.Fatalf("setup: expected a Right event, got %v", sides(events))
	}

	s.Reset()

	if s.Expected() != detector.SideUnknown {
		t.Errorf("expected side after reset = %v, want Unknown", s.Expected())
	}

	// Right fired last before the restart; it must be accepted again now.
	advanceBoth(t, s, 20, 400, 400)
	events = advanceBoth(t, s, 30, 400, 350)
	if len(events) != 1 || events[0].Side != detector.SideRight {
		t.Errorf("after restart a Right gesture must be accepted, got %v", sides(events))
	}
}

func TestSession_AbsenceWithinGraceKeepsReference(t *testing.T) {
	tuning := testTuning()
	s, err := NewSession(tuning)
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	// The left hand vanishes for two frames (inside the grace window).
	for frame := int64(1); frame <= 2; frame++ {
		s.Advance(frame, []detector.Observation{
			obsAt(detector.SideRight, 400, 400, 0.9),
		})
	}

	// It reappears 50 px higher: measured against the surviving reference,
	// that is a jump.
	events := advanceBoth(t, s, 3, 350, 400)
	if len(events) != 1 || events[0].Side != detector.SideLeft {
		t.Errorf("events = %v, want one Left (reference survived the dropout)", sides(events))
	}
}

func TestSession_AbsenceBeyondGraceDiscardsState(t *testing.T) {
	tuning := testTuning()
	s, err := NewSession(tuning)
	if err != nil {
		t.Fatal(err)
	}

	advanceBoth(t, s, 0, 400, 400)

	// Absent long enough to exceed the grace window.
	frame := int64(1)
	for i := 0; i <= tuning.AbsentGraceFrames+1; i++ {
		s.Advance(frame, []detector.Observation{
			obsAt(detector.SideRight, 400, 400, 0.9),
		})
		frame++
	}

	// Reappearing 50 px higher only re-seeds tracking; no gesture fires
	// because the old reference was discarded.
	events := advanceBoth(t, s, frame, 350, 400)
	if len(events) != 0 {
		t.Errorf("events = %v, want none after the state was discarded", sides(events))
	}

	// From the new seed a further rise fires normally.
	events = advanceBoth(t, s, frame+10, 300, 400)
	if len(events) != 1 || events[0].Side != detector.SideLeft {
		t.Errorf("events = %v, want one Left from the re-seeded reference", sides(events))
	}
}

func TestSession_CorrectedFlagPropagates(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}

	_, corrected := s.Advance(0, []detector.Observation{
		obsAt(detector.SideRight, 100, 400, 0.9),
		obsAt(detector.SideRight, 400, 400, 0.8),
	})
	if !corrected {
		t.Error("duplicate-side frame must report a correction")
	}

	_, corrected = s.Advance(1, []detector.Observation{
		obsAt(detector.SideLeft, 100, 400, 0.9),
		obsAt(detector.SideRight, 400, 400, 0.8),
	})
	if corrected {
		t.Error("a proper pair must not report a correction")
	}
}

func TestSession_SetPolicy(t *testing.T) {
	s, err := NewSession(testTuning())
	if err != nil {
		t.Fatal(err)
	}
	s.SetPolicy(NewPassAllGate())

	advanceBoth(t, s, 0, 400, 400)
	first := advanceBoth(t, s, 10, 350, 400)
	second := advanceBoth(t, s, 20, 300, 400)

	if len(first)+len(second) != 2 {
		t.Errorf("pass-all policy should accept back-to-back same-side events, got %d",
			len(first)+len(second))
	}
}

func TestTuning_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tuning)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Tuning) {}, wantErr: false},
		{name: "zero epsilon", mutate: func(tu *Tuning) { tu.StillEpsilonPixels = 0 }, wantErr: true},
		{name: "zero reset frames", mutate: func(tu *Tuning) { tu.StillResetFrames = 0 }, wantErr: true},
		{name: "negative threshold", mutate: func(tu *Tuning) { tu.JumpThresholdPixels = -5 }, wantErr: true},
		{name: "negative cooldown", mutate: func(tu *Tuning) { tu.JumpCooldownFrames = -1 }, wantErr: true},
		{name: "zero cooldown allowed", mutate: func(tu *Tuning) { tu.JumpCooldownFrames = 0 }, wantErr: false},
		{name: "negative grace", mutate: func(tu *Tuning) { tu.AbsentGraceFrames = -1 }, wantErr: true},
		{name: "confidence above one", mutate: func(tu *Tuning) { tu.MinConfidence = 1.2 }, wantErr: true},
		{name: "negative confidence", mutate: func(tu *Tuning) { tu.MinConfidence = -0.2 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.mutate(&tuning)
			err := tuning.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

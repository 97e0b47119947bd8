package track

import (
	"testing"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
)

func obsAt(side detector.Side, x, y int, confidence float64) detector.Observation {
	return detector.Observation{
		BBox:       detector.BBox{X: x - 50, Y: y - 50, Width: 100, Height: 100},
		Center:     detector.Point{X: x, Y: y},
		Confidence: confidence,
		Side:       side,
	}
}

func TestNormalizer_Empty(t *testing.T) {
	n := NewNormalizer(0.3, true)

	frame := n.Normalize(nil)
	if !frame.Empty() {
		t.Error("nil input should produce an empty frame")
	}

	frame = n.Normalize([]detector.Observation{})
	if !frame.Empty() {
		t.Error("empty input should produce an empty frame")
	}
	if frame.Corrected {
		t.Error("empty frame should not report a correction")
	}
}

func TestNormalizer_DropsUnknownAndWeak(t *testing.T) {
	n := NewNormalizer(0.5, true)

	frame := n.Normalize([]detector.Observation{
		obsAt(detector.SideUnknown, 100, 200, 0.9),
		obsAt(detector.SideLeft, 150, 200, 0.4), // below the floor
	})

	if !frame.Empty() {
		t.Errorf("unknown and low-confidence observations should be dropped, got %+v", frame)
	}
}

func TestNormalizer_DropsMalformed(t *testing.T) {
	n := NewNormalizer(0.3, true)

	bad := obsAt(detector.SideLeft, 100, 200, 0.9)
	bad.BBox.Width = 0

	outOfRange := obsAt(detector.SideRight, 400, 200, 1.4)

	frame := n.Normalize([]detector.Observation{bad, outOfRange})
	if !frame.Empty() {
		t.Errorf("malformed observations should never reach the state machine, got %+v", frame)
	}
}

func TestNormalizer_ProperPairPassesThrough(t *testing.T) {
	n := NewNormalizer(0.3, true)

	left := obsAt(detector.SideLeft, 100, 200, 0.8)
	right := obsAt(detector.SideRight, 400, 210, 0.7)

	frame := n.Normalize([]detector.Observation{right, left})

	if frame.Left == nil || frame.Right == nil {
		t.Fatalf("expected both sides present, got %+v", frame)
	}
	if frame.Left.Center.X != 100 || frame.Right.Center.X != 400 {
		t.Errorf("pass-through should keep positions: left=%+v right=%+v", frame.Left.Center, frame.Right.Center)
	}
	if frame.Corrected {
		t.Error("a proper left/right pair should not be marked corrected")
	}
}

func TestNormalizer_SingleHandKeepsHint(t *testing.T) {
	n := NewNormalizer(0.3, true)

	frame := n.Normalize([]detector.Observation{obsAt(detector.SideRight, 80, 200, 0.9)})

	if frame.Left != nil {
		t.Error("single Right observation should not populate the Left slot")
	}
	if frame.Right == nil || frame.Right.Side != detector.SideRight {
		t.Errorf("single observation should pass through under its own hint, got %+v", frame)
	}
	if frame.Corrected {
		t.Error("single-hand frames are never corrected")
	}
}

func TestNormalizer_DuplicateRightReassigned(t *testing.T) {
	n := NewNormalizer(0.3, true)

	frame := n.Normalize([]detector.Observation{
		obsAt(detector.SideRight, 100, 200, 0.9),
		obsAt(detector.SideRight, 400, 220, 0.8),
	})

	if frame.Left == nil || frame.Right == nil {
		t.Fatalf("expected both slots filled after reassignment, got %+v", frame)
	}
	if frame.Left.Center.X != 100 {
		t.Errorf("x=100 should become Left, got Left at x=%d", frame.Left.Center.X)
	}
	if frame.Right.Center.X != 400 {
		t.Errorf("x=400 should stay Right, got Right at x=%d", frame.Right.Center.X)
	}
	if !frame.Corrected {
		t.Error("reassignment must raise the correction flag")
	}
}

func TestNormalizer_UnmirroredConventionFlips(t *testing.T) {
	n := NewNormalizer(0.3, false)

	frame := n.Normalize([]detector.Observation{
		obsAt(detector.SideLeft, 100, 200, 0.9),
		obsAt(detector.SideLeft, 400, 220, 0.8),
	})

	if frame.Right == nil || frame.Right.Center.X != 100 {
		t.Errorf("without mirroring the smaller x is the Right hand, got %+v", frame.Right)
	}
	if frame.Left == nil || frame.Left.Center.X != 400 {
		t.Errorf("without mirroring the larger x is the Left hand, got %+v", frame.Left)
	}
}

func TestNormalizer_CrowdKeepsTopTwoByConfidence(t *testing.T) {
	n := NewNormalizer(0.3, true)

	frame := n.Normalize([]detector.Observation{
		obsAt(detector.SideLeft, 50, 200, 0.4),
		obsAt(detector.SideRight, 300, 200, 0.95),
		obsAt(detector.SideLeft, 500, 200, 0.9),
	})

	if frame.Left == nil || frame.Right == nil {
		t.Fatalf("expected two hands, got %+v", frame)
	}
	// Survivors are x=300 (0.95) and x=500 (0.9); x=50 loses.
	if frame.Left.Center.X != 300 || frame.Right.Center.X != 500 {
		t.Errorf("top-two selection wrong: left x=%d right x=%d", frame.Left.Center.X, frame.Right.Center.X)
	}
	if !frame.Corrected {
		t.Error("crowd reduction must raise the correction flag")
	}
}

func TestNormalizer_TieBreakIsStable(t *testing.T) {
	n := NewNormalizer(0.3, true)

	// Three observations, two sharing the top confidence. The stable sort
	// must keep the earlier of the tied pair.
	first := obsAt(detector.SideRight, 120, 200, 0.8)
	second := obsAt(detector.SideRight, 420, 200, 0.8)
	third := obsAt(detector.SideRight, 260, 200, 0.5)

	frame := n.Normalize([]detector.Observation{first, second, third})

	if frame.Left == nil || frame.Right == nil {
		t.Fatalf("expected two hands, got %+v", frame)
	}
	if frame.Left.Center.X != 120 || frame.Right.Center.X != 420 {
		t.Errorf("tie break should keep input order: left x=%d right x=%d", frame.Left.Center.X, frame.Right.Center.X)
	}
}

func TestNormalizer_NeverMoreThanOnePerSide(t *testing.T) {
	n := NewNormalizer(0.0, true)

	// A hostile mix: four hands, three labeled Left.
	frame := n.Normalize([]detector.Observation{
		obsAt(detector.SideLeft, 100, 200, 0.6),
		obsAt(detector.SideLeft, 200, 200, 0.7),
		obsAt(detector.SideLeft, 300, 200, 0.8),
		obsAt(detector.SideRight, 400, 200, 0.9),
	})

	count := 0
	if frame.Left != nil {
		count++
	}
	if frame.Right != nil {
		count++
	}
	if count > 2 {
		t.Fatalf("canonical frame can never hold more than two hands")
	}
	if frame.Left != nil && frame.Left.Side != detector.SideLeft {
		t.Error("Left slot must carry a Left-labeled observation")
	}
	if frame.Right != nil && frame.Right.Side != detector.SideRight {
		t.Error("Right slot must carry a Right-labeled observation")
	}
}

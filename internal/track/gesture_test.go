package track

import "testing"

func TestDetectGesture_Threshold(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
		want bool
	}{
		{name: "rise above threshold fires", from: 300, to: 275, want: true}, // rise 25
		{name: "rise below threshold holds", from: 300, to: 285, want: false}, // rise 15
		{name: "rise at threshold fires", from: 300, to: 280, want: true},     // rise 20
		{name: "downward motion never fires", from: 300, to: 340, want: false},
		{name: "no motion never fires", from: 300, to: 300, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tuning.JumpThresholdPixels = 20

			var h HandState
			h.seed(tt.from, 0)
			h.observe(tt.to, 1, tuning)

			if got := h.detectGesture(1, tt.to, tuning); got != tt.want {
				t.Errorf("detectGesture(%d -> %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDetectGesture_ReferenceAdvancesOnFire(t *testing.T) {
	tuning := DefaultTuning()
	tuning.JumpThresholdPixels = 20
	tuning.JumpCooldownFrames = 0

	var h HandState
	h.seed(300, 0)

	h.observe(270, 1, tuning)
	if !h.detectGesture(1, 270, tuning) {
		t.Fatal("30 px rise should fire")
	}
	if h.ReferenceY != 270 {
		t.Fatalf("reference = %d, want 270 after firing", h.ReferenceY)
	}

	// The hand holds its new height: the sustained rise must not re-fire.
	h.observe(270, 2, tuning)
	if h.detectGesture(2, 270, tuning) {
		t.Error("a sustained rise must trigger exactly once")
	}
}

func TestDetectGesture_CooldownSuppressesSecondFire(t *testing.T) {
	tuning := DefaultTuning()
	tuning.JumpThresholdPixels = 20
	tuning.JumpCooldownFrames = 5

	var h HandState
	h.seed(400, 0)

	h.observe(370, 10, tuning)
	if !h.detectGesture(10, 370, tuning) {
		t.Fatal("first rise should fire")
	}

	// A second qualifying rise two frames later is inside the cooldown.
	h.observe(340, 12, tuning)
	if h.detectGesture(12, 340, tuning) {
		t.Error("second rise within the cooldown must be suppressed")
	}

	// After the cooldown expires the pending rise fires.
	if !h.detectGesture(15, 340, tuning) {
		t.Error("rise should fire once the cooldown has elapsed")
	}
}

func TestDetectGesture_SubThresholdDoesNotTouchCooldown(t *testing.T) {
	tuning := DefaultTuning()
	tuning.JumpThresholdPixels = 20
	tuning.JumpCooldownFrames = 5

	var h HandState
	h.seed(400, 0)

	h.observe(370, 10, tuning)
	if !h.detectGesture(10, 370, tuning) {
		t.Fatal("first rise should fire")
	}

	// Small wiggles during the cooldown must not restart it.
	h.observe(365, 12, tuning)
	h.detectGesture(12, 365, tuning)

	h.observe(340, 15, tuning)
	if !h.detectGesture(15, 340, tuning) {
		t.Error("cooldown expiry must be measured from the last fire, not the last attempt")
	}
}

func TestDetectGesture_FirstGestureExemptFromCooldown(t *testing.T) {
	tuning := DefaultTuning()
	tuning.JumpThresholdPixels = 20
	tuning.JumpCooldownFrames = 30

	var h HandState
	h.seed(300, 0)
	h.observe(270, 2, tuning)

	// Frame index 2 is far below the cooldown span; a fresh hand must still
	// be allowed to fire.
	if !h.detectGesture(2, 270, tuning) {
		t.Error("the first gesture of a session must not be blocked by the cooldown")
	}
}

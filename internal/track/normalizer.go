package track

import (
	"sort"

	"github.com/darriusnjh/KIRKIFY/internal/detector"
)

// CanonicalFrame is the normalized view of one frame: at most one Left and
// one Right observation. Corrected is an advisory flag set whenever the
// normalizer had to reassign handedness; it is consumed by presentation
// layers only and never affects tracking.
type CanonicalFrame struct {
	Left      *detector.Observation
	Right     *detector.Observation
	Corrected bool
}

// Hand returns the observation for the given side, or nil when absent.
func (f *CanonicalFrame) Hand(side detector.Side) *detector.Observation {
	switch side {
	case detector.SideLeft:
		return f.Left
	case detector.SideRight:
		return f.Right
	case detector.SideUnknown:
		return nil
	}
	return nil
}

// Empty reports whether the frame contains no hands.
func (f *CanonicalFrame) Empty() bool {
	return f.Left == nil && f.Right == nil
}

// Normalizer resolves duplicated or ambiguous handedness labels so that a
// frame never carries two hands on the same side. The detector occasionally
// reports two "Right" hands, or three hands for two arms; downstream tracking
// assumes one slot per side, so the normalizer repairs identity here rather
// than letting every consumer re-derive it.
type Normalizer struct {
	minConfidence float64
	mirror        bool
}

// NewNormalizer creates a Normalizer. minConfidence drops weak observations
// before any identity logic runs; mirror declares the horizontal convention
// of the capture layer (see Tuning.Mirror).
func NewNormalizer(minConfidence float64, mirror bool) *Normalizer {
	return &Normalizer{
		minConfidence: minConfidence,
		mirror:        mirror,
	}
}

// Normalize maps an arbitrary list of observations to a canonical frame.
//
// Rules, in order:
//  1. Drop malformed observations, observations below the confidence floor,
//     and observations whose handedness is Unknown.
//  2. Exactly one Left and one Right: pass through unchanged.
//  3. A single survivor: pass through under its own label.
//  4. Anything else (duplicate sides, or more than two hands): keep the two
//     highest-confidence observations, order them by center X, and reassign
//     handedness positionally. With a mirrored capture the smaller X is the
//     Left hand.
func (n *Normalizer) Normalize(observations []detector.Observation) CanonicalFrame {
	valid := make([]detector.Observation, 0, len(observations))
	for _, o := range observations {
		if !o.Valid() {
			continue
		}
		if o.Confidence < n.minConfidence {
			continue
		}
		if o.Side == detector.SideUnknown {
			continue
		}
		valid = append(valid, o)
	}

	switch len(valid) {
	case 0:
		return CanonicalFrame{}
	case 1:
		return frameFromPair(valid[0])
	case 2:
		if valid[0].Side != valid[1].Side {
			return frameFromPair(valid[0], valid[1])
		}
	}

	// Duplicate sides or a crowd: keep the best two by confidence. The sort
	// is stable so equal confidences preserve input order.
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Confidence > valid[j].Confidence
	})
	pair := valid[:2]

	sort.SliceStable(pair, func(i, j int) bool {
		return pair[i].Center.X < pair[j].Center.X
	})

	if n.mirror {
		pair[0].Side = detector.SideLeft
		pair[1].Side = detector.SideRight
	} else {
		pair[0].Side = detector.SideRight
		pair[1].Side = detector.SideLeft
	}

	frame := frameFromPair(pair[0], pair[1])
	frame.Corrected = true
	return frame
}

// frameFromPair slots observations by side. Inputs must already have
// distinct, known sides.
func frameFromPair(observations ...detector.Observation) CanonicalFrame {
	var frame CanonicalFrame
	for i := range observations {
		o := &observations[i]
		switch o.Side {
		case detector.SideLeft:
			frame.Left = o
		case detector.SideRight:
			frame.Right = o
		case detector.SideUnknown:
		}
	}
	return frame
}

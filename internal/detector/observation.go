// Package detector provides the hand observation model and detection backends.
package detector

import (
	"encoding/json"
	"fmt"
)

// Side is the handedness classification of an observation.
// The zero value is SideUnknown so an unclassified observation can never
// masquerade as a tracked hand.
type Side uint8

const (
	SideUnknown Side = iota
	SideLeft
	SideRight
)

// String returns the MediaPipe-style label for the side.
func (s Side) String() string {
	switch s {
	case SideLeft:
		return "Left"
	case SideRight:
		return "Right"
	case SideUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Other returns the opposite side. Unknown has no opposite and maps to itself.
func (s Side) Other() Side {
	switch s {
	case SideLeft:
		return SideRight
	case SideRight:
		return SideLeft
	}
	return SideUnknown
}

// MarshalJSON encodes the side as its label so API consumers see "Left"
// rather than an enum ordinal.
func (s Side) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSide maps a detector label to a Side. Anything that is not exactly
// "Left" or "Right" is Unknown.
func ParseSide(label string) Side {
	switch label {
	case "Left":
		return SideLeft
	case "Right":
		return SideRight
	}
	return SideUnknown
}

// BBox is an axis-aligned bounding box in pixel space.
type BBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Point is a 2D pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Point3D is a normalized 3D landmark coordinate as reported by MediaPipe.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Observation is one raw per-hand reading for a single frame. Observations
// are ephemeral: they exist only within one frame's processing and carry no
// identity across frames.
type Observation struct {
	BBox       BBox      `json:"bbox"`
	Center     Point     `json:"center"`
	Confidence float64   `json:"confidence"`
	Side       Side      `json:"handedness"`
	Landmarks  []Point3D `json:"landmarks,omitempty"`
}

// Valid reports whether the observation is well-formed: a positive-area
// bounding box and a confidence inside [0, 1]. Malformed observations are
// dropped before normalization and never reach the tracking state machine.
func (o Observation) Valid() bool {
	if o.BBox.Width <= 0 || o.BBox.Height <= 0 {
		return false
	}
	if o.Confidence < 0 || o.Confidence > 1 {
		return false
	}
	return true
}

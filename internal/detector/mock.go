package detector

import (
	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It can replay a scripted sequence of per-frame observations, which lets
// tests drive the tracking pipeline without a camera or the Python service.
type MockDetector struct {
	observations []Observation
	script       [][]Observation
	scriptIndex  int
	err          error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetObservations sets the observations that will be returned by every
// subsequent Detect call. Clears any script.
func (m *MockDetector) SetObservations(obs []Observation) {
	m.observations = obs
	m.script = nil
	m.scriptIndex = 0
}

// SetScript sets a per-frame sequence of observations. Each Detect call
// consumes one entry; after the script is exhausted Detect returns no hands.
func (m *MockDetector) SetScript(frames [][]Observation) {
	m.script = frames
	m.scriptIndex = 0
	m.observations = nil
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured observations, the next script entry,
// or the configured error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Observation, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.script != nil {
		if m.scriptIndex >= len(m.script) {
			return nil, nil
		}
		obs := m.script[m.scriptIndex]
		m.scriptIndex++
		return obs, nil
	}
	return m.observations, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// HandAt returns a plausible observation for the given side centered at
// (x, y) with the given confidence. Helper for pipeline tests.
func HandAt(side Side, x, y int, confidence float64) Observation {
	return Observation{
		BBox:       BBox{X: x - 60, Y: y - 60, Width: 120, Height: 120},
		Center:     Point{X: x, Y: y},
		Confidence: confidence,
		Side:       side,
	}
}

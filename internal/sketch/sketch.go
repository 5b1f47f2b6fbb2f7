// Package sketch wires particle generation, feature extraction, deformation
// and color into one per-instance session driven by a host frame loop.
package sketch

import (
	"context"

	"github.com/iburimskiy/particle-sphere/internal/palette"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// Source is the audio collaborator: a looping track exposing its spectrum.
type Source interface {
	// FrequencyBins returns the latest byte magnitudes, or nil when nothing
	// new has been analysed since the previous call.
	FrequencyBins() []byte
	Ready() bool
	// Resume brings the audio output up; it may block and may fail.
	Resume(ctx context.Context) error
	Play()
	Pause()
	Playing() bool
}

// Sketch is what a host drives once per display frame.
type Sketch interface {
	Initialize() error
	AdvanceFrame(dt float64) []Point
	OnActivate()
	OnResize(width, height int)
}

// Point is one rendered particle. Color is nil when the host's default
// stroke applies; otherwise all points of a frame share one value.
type Point struct {
	Pos   vmath.Vec3
	Color *palette.RGB
}

// Package noise provides the deterministic 3D noise used to drive particle motion.
package noise

import (
	"math"

	"github.com/ojrac/opensimplex-go"
)

// Field is a smooth, deterministic noise function with values in [0,1].
// Implementations must be safe for concurrent readers.
type Field interface {
	Sample(x, y, z float64) float64
}

// Simplex wraps OpenSimplex noise remapped from [-1,1] to [0,1].
type Simplex struct {
	noise opensimplex.Noise
	seed  int64
}

// NewSimplex creates a simplex field for the given seed.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{
		noise: opensimplex.New(seed),
		seed:  seed,
	}
}

// Seed returns the seed the field was built with.
func (s *Simplex) Seed() int64 { return s.seed }

// Sample evaluates the field at (x, y, z).
func (s *Simplex) Sample(x, y, z float64) float64 {
	v := (s.noise.Eval3(x, y, z) + 1) * 0.5
	if math.IsNaN(v) {
		return 0.5
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FBM sums octaves of the field at doubling frequency, normalized back to [0,1].
func FBM(f Field, x, y, z float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	var total, maxValue float64
	frequency, amplitude := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += f.Sample(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// Symmetric maps a [0,1] sample to [-amount, amount].
func Symmetric(v, amount float64) float64 {
	return (v*2 - 1) * amount
}

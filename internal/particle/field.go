// Package particle generates the fixed particle cloud a sketch deforms each frame.
package particle

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// Particle is one point of the cloud. Theta (azimuth) and Phi (polar) are
// radians and never change after generation.
type Particle struct {
	Theta    float64
	Phi      float64
	Original vmath.Vec3 // position on the reference sphere
	Anchor   int        // nearest reference vertex, -1 until assigned
}

// Direction is the unit vector of the particle's original position.
func (p Particle) Direction() vmath.Vec3 {
	return vmath.Normalize(p.Original)
}

// NewRand returns the deterministic source used for generation.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate creates count particles on a sphere of baseRadius.
func Generate(count int, baseRadius float64, dist config.Distribution, rng *rand.Rand) []Particle {
	if count <= 0 {
		return nil
	}
	out := make([]Particle, count)
	for i := range out {
		var theta, phi float64
		switch dist {
		case config.AngleUniform:
			theta = rng.Float64() * 360 * math.Pi / 180
			phi = rng.Float64() * 360 * math.Pi / 180
		default:
			u, v := rng.Float64(), rng.Float64()
			theta = 2 * math.Pi * u
			phi = math.Acos(2*v - 1)
		}
		out[i] = Particle{
			Theta:    theta,
			Phi:      phi,
			Original: vmath.FromSpherical(baseRadius, theta, phi),
			Anchor:   -1,
		}
	}
	return out
}

package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

func TestGenerateCount(t *testing.T) {
	for _, n := range []int{0, 1, 17, 10000} {
		for _, d := range []config.Distribution{config.UniformSphere, config.AngleUniform} {
			ps := Generate(n, 300, d, NewRand(1))
			assert.Len(t, ps, n)
		}
	}
	assert.Empty(t, Generate(-4, 300, config.UniformSphere, NewRand(1)))
}

func TestGenerateMeanRadius(t *testing.T) {
	const radius = 350.0
	ps := Generate(20000, radius, config.UniformSphere, NewRand(9))
	var sum float64
	for _, p := range ps {
		sum += vmath.Mag(p.Original)
		assert.Equal(t, -1, p.Anchor)
	}
	assert.InDelta(t, radius, sum/float64(len(ps)), 1e-6)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(500, 10, config.AngleUniform, NewRand(5))
	b := Generate(500, 10, config.AngleUniform, NewRand(5))
	assert.Equal(t, a, b)
}

// Area-uniform sampling puts a fraction (cos a - cos b)/2 of all points
// in the polar band [a, b).
func TestUniformSpherePhiDensity(t *testing.T) {
	const (
		n    = 100000
		bins = 12
	)
	ps := Generate(n, 1, config.UniformSphere, NewRand(2024))
	counts := make([]int, bins)
	for _, p := range ps {
		require.GreaterOrEqual(t, p.Phi, 0.0)
		require.LessOrEqual(t, p.Phi, math.Pi)
		i := int(p.Phi / math.Pi * bins)
		if i == bins {
			i--
		}
		counts[i]++
	}
	for i, c := range counts {
		a := float64(i) * math.Pi / bins
		b := float64(i+1) * math.Pi / bins
		want := (math.Cos(a) - math.Cos(b)) / 2
		got := float64(c) / n
		assert.InDelta(t, want, got, 0.006, "bin %d", i)
	}
	// Poles are sparser than the equator.
	assert.Less(t, counts[0]*3, counts[bins/2])
}

func TestAngleUniformPhiIsFlat(t *testing.T) {
	const (
		n    = 60000
		bins = 6
	)
	ps := Generate(n, 1, config.AngleUniform, NewRand(77))
	counts := make([]int, bins)
	for _, p := range ps {
		require.Less(t, p.Phi, 2*math.Pi)
		counts[int(p.Phi/(2*math.Pi)*bins)]++
	}
	for _, c := range counts {
		assert.InDelta(t, 1.0/bins, float64(c)/n, 0.01)
	}
}

package deform

import (
	"math"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

var goldenRatio = (1 + math.Sqrt(5)) / 2

// Dodecahedron returns the 20 unit-length vertices of a regular dodecahedron.
func Dodecahedron() []vmath.Vec3 {
	g, ig := goldenRatio, 1/goldenRatio
	raw := []vmath.Vec3{
		{X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: -1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: -1},
		{X: -1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: -1}, {X: -1, Y: -1, Z: 1}, {X: -1, Y: -1, Z: -1},
		{X: 0, Y: ig, Z: g}, {X: 0, Y: ig, Z: -g}, {X: 0, Y: -ig, Z: g}, {X: 0, Y: -ig, Z: -g},
		{X: ig, Y: g, Z: 0}, {X: ig, Y: -g, Z: 0}, {X: -ig, Y: g, Z: 0}, {X: -ig, Y: -g, Z: 0},
		{X: g, Y: 0, Z: ig}, {X: g, Y: 0, Z: -ig}, {X: -g, Y: 0, Z: ig}, {X: -g, Y: 0, Z: -ig},
	}
	return normalizeAll(raw)
}

// Icosahedron returns the 12 unit-length vertices of a regular icosahedron.
func Icosahedron() []vmath.Vec3 {
	g := goldenRatio
	raw := []vmath.Vec3{
		{X: 0, Y: 1, Z: g}, {X: 0, Y: 1, Z: -g}, {X: 0, Y: -1, Z: g}, {X: 0, Y: -1, Z: -g},
		{X: 1, Y: g, Z: 0}, {X: 1, Y: -g, Z: 0}, {X: -1, Y: g, Z: 0}, {X: -1, Y: -g, Z: 0},
		{X: g, Y: 0, Z: 1}, {X: g, Y: 0, Z: -1}, {X: -g, Y: 0, Z: 1}, {X: -g, Y: 0, Z: -1},
	}
	return normalizeAll(raw)
}

// SolidVertices returns the vertex set for a configured solid.
func SolidVertices(s config.Solid) []vmath.Vec3 {
	if s == config.Icosahedron {
		return Icosahedron()
	}
	return Dodecahedron()
}

// Nearest returns the index of the vertex closest to dir (squared distance).
// dir is normalized first; -1 is returned for an empty vertex set.
func Nearest(vertices []vmath.Vec3, dir vmath.Vec3) int {
	n := vmath.Normalize(dir)
	best := -1
	bestDist := math.Inf(1)
	for i, v := range vertices {
		if d := vmath.DistSq(n, v); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func normalizeAll(vs []vmath.Vec3) []vmath.Vec3 {
	for i := range vs {
		vs[i] = vmath.Normalize(vs[i])
	}
	return vs
}

package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromSphericalRadius(t *testing.T) {
	for _, a := range [][2]float64{{0, 0}, {1, 2}, {math.Pi, math.Pi / 2}, {5.5, 0.3}} {
		v := FromSpherical(350, a[0], a[1])
		assert.InDelta(t, 350, Mag(v), 1e-9)
	}
}

func TestNormalizeZero(t *testing.T) {
	assert.Equal(t, Vec3{}, Normalize(Vec3{}))
	assert.InDelta(t, 1, Mag(Normalize(Vec3{3, 4, 12})), 1e-12)
}

func TestMapClamp(t *testing.T) {
	assert.Equal(t, 1.0, Map(600, 0, 50, 0, 1, true))
	assert.Equal(t, 0.0, Map(-5, 0, 50, 0, 1, true))
	assert.InDelta(t, 0.5, Map(25, 0, 50, 0, 1, true), 1e-12)
	assert.InDelta(t, 2.0, Map(100, 0, 50, 0, 1, false), 1e-12)
	assert.Equal(t, 3.0, Map(7, 1, 1, 3, 9, true))
	assert.InDelta(t, -1.0, Map(0, 0, 1, -1, 1, true), 1e-12)
}

func TestRotateYPreservesLength(t *testing.T) {
	v := Vec3{100, -20, 40}
	r := RotateY(v, 1.234)
	assert.InDelta(t, Mag(v), Mag(r), 1e-9)
	assert.Equal(t, v.Y, r.Y)
}

func TestDotCross(t *testing.T) {
	x, y, z := Vec3{X: 1}, Vec3{Y: 1}, Vec3{Z: 1}
	assert.Equal(t, z, Cross(x, y))
	assert.Equal(t, x, Cross(y, z))
	assert.Equal(t, Scale(z, -1), Cross(y, x))
	assert.Zero(t, Dot(x, y))

	a, b := Vec3{1, 2, 3}, Vec3{-4, 5, 0.5}
	assert.InDelta(t, 7.5, Dot(a, b), 1e-12)
	c := Cross(a, b)
	assert.InDelta(t, 0, Dot(c, a), 1e-12)
	assert.InDelta(t, 0, Dot(c, b), 1e-12)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 2.0, Clamp(5, -1, 2))
	assert.Equal(t, -1.0, Clamp(-3, -1, 2))
	assert.Equal(t, 0.5, Clamp(0.5, -1, 2))
	assert.Equal(t, 1.0, Clamp01(1.5))
	assert.Equal(t, 0.0, Clamp01(-0.5))
}

package vmath

import "math"

// Vec3 is a float64 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns a + b.
func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

// Sub returns a - b.
func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

// Scale multiplies every component of v by s.
func Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// MagSq is the squared length of v.
func MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Mag is the length of v.
func Mag(v Vec3) float64 {
	return math.Sqrt(MagSq(v))
}

// DistSq is the squared euclidean distance between a and b.
func DistSq(a, b Vec3) float64 {
	return MagSq(Sub(a, b))
}

// Normalize returns v scaled to unit length, or the zero vector.
func Normalize(v Vec3) Vec3 {
	mag := Mag(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// Lerp interpolates component-wise from a to b.
func Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
	}
}

// FromSpherical converts polar angle phi and azimuth theta (radians) at radius r.
func FromSpherical(r, theta, phi float64) Vec3 {
	sinPhi, cosPhi := math.Sincos(phi)
	sinTheta, cosTheta := math.Sincos(theta)
	return Vec3{
		X: r * sinPhi * cosTheta,
		Y: r * sinPhi * sinTheta,
		Z: r * cosPhi,
	}
}

// RotateY rotates v around the Y axis by angle radians.
func RotateY(v Vec3, angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// Lerp1 is the scalar linear interpolation used for all exponential smoothing.
func Lerp1(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map linearly remaps v from [inLo,inHi] to [outLo,outHi], optionally clamped.
func Map(v, inLo, inHi, outLo, outHi float64, clamp bool) float64 {
	if inHi == inLo {
		return outLo
	}
	out := outLo + (v-inLo)/(inHi-inLo)*(outHi-outLo)
	if !clamp {
		return out
	}
	lo, hi := outLo, outHi
	if lo > hi {
		lo, hi = hi, lo
	}
	return Clamp(out, lo, hi)
}

// Clamp limits v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Dot is the scalar product of a and b.
func Dot(a, b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

// Cross is the right-handed vector product a x b.
func Cross(a, b Vec3) Vec3 {
	return Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

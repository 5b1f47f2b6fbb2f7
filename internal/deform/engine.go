// Package deform turns per-frame audio features into particle positions.
package deform

import (
	"math"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/features"
	"github.com/iburimskiy/particle-sphere/internal/noise"
	"github.com/iburimskiy/particle-sphere/internal/particle"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// Jitter is sampled at a high angular frequency so neighbours decorrelate.
const (
	jitterScale = 37.1
	jitterRate  = 3.0
)

// State is the per-frame scalar state shared by every particle.
type State struct {
	Frame             float64 // frames elapsed
	Time              float64 // Frame * TimeScale
	DeformationFactor float64
	BounceFactor      float64
	Wave              float64 // current wave amplitude
}

// Engine deforms particles. Step is the single writer of its state; Deform
// only reads its arguments and is safe to call from many goroutines.
type Engine struct {
	opts      config.Options
	field     noise.Field
	vertices  []vmath.Vec3
	maxRadius float64
	state     State
}

// NewEngine creates an engine for the given options and noise field.
func NewEngine(o config.Options, field noise.Field) *Engine {
	return &Engine{
		opts:      o,
		field:     field,
		vertices:  SolidVertices(o.Snap.Solid),
		maxRadius: o.MaxDeformationRadius(),
	}
}

// State returns the current frame state.
func (e *Engine) State() State { return e.state }

// Vertices returns the reference solid used by snap mode.
func (e *Engine) Vertices() []vmath.Vec3 { return e.vertices }

// Bind records each particle's nearest reference vertex.
func (e *Engine) Bind(ps []particle.Particle) {
	for i := range ps {
		ps[i].Anchor = Nearest(e.vertices, ps[i].Original)
	}
}

// Target is the deformation factor the current frame asks for.
func (e *Engine) Target(f features.Frame) float64 {
	fc := e.opts.Factor
	var target float64
	switch fc.Policy {
	case config.TargetBands:
		target = f.Weighted(fc.BandWeights) / 255
	default:
		target = f.BassPeak * fc.PeakScale
	}
	return vmath.Clamp(target, 0, fc.MaxTarget)
}

// Step advances time by dt frames and updates the shared scalars: fast
// attack on the deformation factor, slow release back down.
func (e *Engine) Step(f features.Frame, dt float64) State {
	fc := e.opts.Factor
	s := &e.state

	s.Frame += dt
	s.Time = s.Frame * e.opts.TimeScale

	target := e.Target(f)
	if target > s.DeformationFactor {
		s.DeformationFactor = target
	} else {
		s.DeformationFactor = vmath.Lerp1(s.DeformationFactor, target, fc.Release)
	}

	bounceTarget := f.High / 255 * fc.BounceGain
	s.BounceFactor = vmath.Lerp1(s.BounceFactor, bounceTarget, fc.BounceRate)

	s.Wave = math.Sin(s.Frame*e.opts.Surface.WaveSpeed) * e.opts.Surface.WaveAmplitude
	return *s
}

// Deform returns the render position of p for state s.
func (e *Engine) Deform(p particle.Particle, s State) vmath.Vec3 {
	if e.opts.Mode == config.PolyhedronSnap {
		return e.snap(p, s)
	}
	return e.surface(p, s)
}

// Radius is the surface-mode radius of p for state s.
func (e *Engine) Radius(p particle.Particle, s State) float64 {
	sc := e.opts.Surface
	a, b := e.opts.NoiseScales()
	t := s.Time

	lift := e.field.Sample(p.Theta*a, p.Phi*a, t*sc.NoiseRates[0])
	base := e.field.Sample(p.Theta*a, p.Phi*a, t*sc.NoiseRates[1])
	detail := e.field.Sample(p.Theta*b, p.Phi*b, t*sc.NoiseRates[2])

	deform := (base*sc.BlendWeights[0] + detail*sc.BlendWeights[1] - 0.5) * 2 * s.DeformationFactor * sc.DeformGain
	bounce := vmath.Map(lift, 0, 1, -s.BounceFactor, s.BounceFactor, false)
	liftTerm := 1 + bounce*math.Sin(p.Phi*3)*math.Cos(p.Theta*3)
	wave := math.Sin(p.Phi*sc.WaveK+t*sc.WaveRate) * s.Wave

	return e.opts.BaseRadius + deform + liftTerm*sc.LiftGain + wave
}

func (e *Engine) surface(p particle.Particle, s State) vmath.Vec3 {
	return vmath.FromSpherical(e.Radius(p, s), p.Theta, p.Phi)
}

func (e *Engine) snap(p particle.Particle, s State) vmath.Vec3 {
	f := vmath.Clamp01(s.DeformationFactor)

	anchor := p.Anchor
	if anchor < 0 || anchor >= len(e.vertices) {
		anchor = Nearest(e.vertices, p.Original)
	}
	target := vmath.Scale(e.vertices[anchor], e.opts.BaseRadius)
	pos := vmath.Lerp(p.Original, target, f)

	var amp float64
	if f > 0 && f < 1 {
		amp = e.opts.Snap.JitterAmount * f * (1 - f)
	}

	// Leave room for the jitter so the final radius stays within the cap.
	limit := max(e.maxRadius-math.Sqrt(3)*amp, 0)
	if r := vmath.Mag(pos); r > limit && r > 0 {
		pos = vmath.Scale(pos, limit/r)
	}

	if amp > 0 {
		x, y, t := p.Theta*jitterScale, p.Phi*jitterScale, s.Time*jitterRate
		pos.X += noise.Symmetric(e.field.Sample(x, y, t), amp)
		pos.Y += noise.Symmetric(e.field.Sample(x+17.3, y, t), amp)
		pos.Z += noise.Symmetric(e.field.Sample(x, y+41.9, t), amp)
	}
	return pos
}

package game

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

const (
	nearPlane     = 1.0
	zoomFrequency = 6.0
	zoomDamping   = 0.35
)

// Camera is a fixed eye looking at the origin. The model spins around Y and
// its scale springs toward a zoom that punches out on bass peaks.
type Camera struct {
	eye      vmath.Vec3
	right    vmath.Vec3
	up       vmath.Vec3
	forward  vmath.Vec3
	focal    float64
	speed    float64 // degrees per frame
	base     float64
	peakZoom float64

	rotation float64 // degrees
	spring   harmonica.Spring
	zoom     float64
	zoomVel  float64
}

// NewCamera builds a camera from options. Screen y grows downward, so world
// "up" is -Y.
func NewCamera(c config.Camera) *Camera {
	eye := vmath.Vec3{X: c.Eye[0], Y: c.Eye[1], Z: c.Eye[2]}
	forward := vmath.Normalize(vmath.Scale(eye, -1))
	worldUp := vmath.Vec3{Y: -1}
	right := vmath.Normalize(vmath.Cross(worldUp, forward))
	if vmath.MagSq(right) == 0 {
		right = vmath.Vec3{X: 1}
	}
	up := vmath.Cross(forward, right)

	scale := c.Scale
	if scale <= 0 {
		scale = 1
	}
	return &Camera{
		eye:      eye,
		right:    right,
		up:       up,
		forward:  forward,
		focal:    c.FocalLength,
		speed:    c.RotationSpeed,
		base:     scale,
		peakZoom: c.PeakZoom,
		spring:   harmonica.NewSpring(harmonica.FPS(config.TPS), zoomFrequency, zoomDamping),
		zoom:     scale,
	}
}

// Update advances rotation by dt frames and steps the zoom spring toward the
// scale implied by bassPeak.
func (c *Camera) Update(dt, bassPeak float64) {
	c.rotation = math.Mod(c.rotation+c.speed*dt, 360)
	target := c.base * (1 + c.peakZoom*vmath.Clamp01(bassPeak))
	c.zoom, c.zoomVel = c.spring.Update(c.zoom, c.zoomVel, target)
}

func (c *Camera) Rotation() float64 { return c.rotation }
func (c *Camera) Zoom() float64 { return c.zoom }

// Project maps a model-space point to screen coordinates for a viewport of
// width x height. ok is false for points behind the near plane.
func (c *Camera) Project(p vmath.Vec3, width, height int) (x, y float64, ok bool) {
	world := vmath.RotateY(vmath.Scale(p, c.zoom), c.rotation*math.Pi/180)
	d := vmath.Sub(world, c.eye)
	depth := vmath.Dot(d, c.forward)
	if depth < nearPlane {
		return 0, 0, false
	}
	// Keep framing stable when the window is resized.
	f := c.focal * float64(height) / config.WindowHeight / depth
	x = float64(width)/2 + vmath.Dot(d, c.right)*f
	y = float64(height)/2 - vmath.Dot(d, c.up)*f
	return x, y, true
}

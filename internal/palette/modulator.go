// Package palette derives the particle stroke color from bass activity.
package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/features"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// RGB channels in [0,255].
type RGB struct {
	R, G, B float64
}

// White is the resting color.
var White = RGB{R: 255, G: 255, B: 255}

// Colorful converts to a clamped go-colorful color.
func (c RGB) Colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}.Clamped()
}

// RGBA converts to an opaque image color.
func (c RGB) RGBA() color.RGBA {
	r, g, b := c.Colorful().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Modulator flashes toward blue on beats and eases back to white.
type Modulator struct {
	cfg config.Color
	rgb RGB
}

// NewModulator starts at white.
func NewModulator(cfg config.Color) *Modulator {
	return &Modulator{cfg: cfg, rgb: White}
}

// Color returns the current color.
func (m *Modulator) Color() RGB { return m.rgb }

// Beat reports whether bass crosses the configured threshold.
func (m *Modulator) Beat(bands features.Bands, stats features.Stats) bool {
	switch m.cfg.Policy {
	case config.ThresholdMax:
		return stats.SessionMax > 0 && bands.Bass > stats.SessionMax*m.cfg.MaxRatio
	default:
		return stats.Average > 0 && bands.Bass > stats.Average*m.cfg.Threshold
	}
}

// Update moves the color one frame toward its target and returns it.
func (m *Modulator) Update(bands features.Bands, stats features.Stats) RGB {
	target, rate := White, m.cfg.Release
	if m.Beat(bands, stats) {
		fade := math.Max(255-bands.Bass*m.cfg.Drop, 0)
		target, rate = RGB{R: fade, G: fade, B: 255}, m.cfg.Attack
	}
	m.rgb = RGB{
		R: channel(m.rgb.R, target.R, rate),
		G: channel(m.rgb.G, target.G, rate),
		B: channel(m.rgb.B, target.B, rate),
	}
	return m.rgb
}

func channel(cur, target, rate float64) float64 {
	v := vmath.Lerp1(cur, target, rate)
	if math.IsNaN(v) {
		return 255
	}
	return vmath.Clamp(v, 0, 255)
}

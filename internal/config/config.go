package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	WindowWidth  = 1280
	WindowHeight = 800

	// Ring of recently played stereo samples; must hold at least FFTSize frames.
	VisualRingSize = 8192
	FFTSize        = 4096

	// Analyser-style byte scaling of FFT magnitudes.
	MinDecibels       = -100.0
	MaxDecibels       = -30.0
	SpectrumSmoothing = 0.8

	Volume = 0.5
	TPS    = 60
)

// ErrInvalidOptions is returned (wrapped) by Options.Validate.
var ErrInvalidOptions = errors.New("invalid options")

// Distribution selects how particle angles are sampled.
type Distribution string

const (
	UniformSphere Distribution = "uniform-sphere"
	AngleUniform  Distribution = "angle-uniform"
)

// DeformMode selects the per-particle deformation.
type DeformMode string

const (
	NoiseSurface   DeformMode = "noise-surface"
	PolyhedronSnap DeformMode = "polyhedron-snap"
)

// TargetPolicy selects what drives the deformation factor.
type TargetPolicy string

const (
	TargetPeak  TargetPolicy = "peak"
	TargetBands TargetPolicy = "bands"
)

// ThresholdPolicy selects the reference a bass value is compared to.
type ThresholdPolicy string

const (
	ThresholdAverage ThresholdPolicy = "average"
	ThresholdMax     ThresholdPolicy = "max"
)

// Solid names the reference polyhedron for snap mode.
type Solid string

const (
	Dodecahedron Solid = "dodecahedron"
	Icosahedron  Solid = "icosahedron"
)

// Gains multiply the raw byte bins read for each band.
type Gains struct {
	Bass    float64
	LowMid  float64
	Mid     float64
	MidHigh float64
	High    float64
}

// Impact configures peak detection on the bass band.
type Impact struct {
	Policy    ThresholdPolicy
	Threshold float64 // multiplier on the rolling average (average policy)
	MaxRatio  float64 // multiplier on the session max (max policy)
	Spread    float64 // k in (bass-avg)/(avg*k)
}

// Surface configures noise-surface deformation.
type Surface struct {
	NoiseScales   [2]float64 // low and high frequency angle scales
	NoiseRates    [3]float64 // lift, base and detail time rates
	BlendWeights  [2]float64
	DeformGain    float64
	LiftGain      float64
	WaveK         float64
	WaveRate      float64
	WaveAmplitude float64
	WaveSpeed     float64
}

// Snap configures polyhedron-snap deformation.
type Snap struct {
	Solid          Solid
	MaxRadiusRatio float64 // maxDeformationRadius = BaseRadius * ratio
	JitterAmount   float64
}

// Factor configures the per-frame deformation factor update.
type Factor struct {
	Policy      TargetPolicy
	PeakScale   float64
	BandWeights Gains
	MaxTarget   float64
	Release     float64
	BounceGain  float64
	BounceRate  float64
}

// Color configures the stroke color modulator.
type Color struct {
	Enabled   bool
	Policy    ThresholdPolicy
	Threshold float64
	MaxRatio  float64
	Drop      float64 // red/green fall by bass*Drop
	Attack    float64
	Release   float64
}

// Camera configures the frame driver.
type Camera struct {
	Eye           [3]float64
	RotationSpeed float64 // degrees per frame around Y
	Scale         float64
	PeakZoom      float64 // extra scale at BassPeak == 1
	FocalLength   float64
}

// Options is the full configuration surface of one sketch.
type Options struct {
	Name            string
	AudioPath       string
	Seed            uint64
	ParticleCount   int
	BaseRadius      float64
	Distribution    Distribution
	Mode            DeformMode
	Gains           Gains
	Decay           float64
	HistoryCapacity int
	TimeScale       float64
	Workers         int

	Impact  Impact
	Surface Surface
	Snap    Snap
	Factor  Factor
	Color   Color
	Camera  Camera
}

// NoiseScales returns the low/high frequency angle scales.
func (o Options) NoiseScales() (float64, float64) {
	return o.Surface.NoiseScales[0], o.Surface.NoiseScales[1]
}

// MaxDeformationRadius is the hard radius cap in snap mode.
func (o Options) MaxDeformationRadius() float64 {
	return o.BaseRadius * o.Snap.MaxRadiusRatio
}

var presets = map[string]func() Options{
	"pulse": pulse,
	"spike": spike,
}

// Default returns the pulse preset.
func Default() Options {
	return pulse()
}

// Preset returns the named preset.
func Preset(name string) (Options, error) {
	fn, ok := presets[strings.ToLower(name)]
	if !ok {
		return Options{}, fmt.Errorf("%w: unknown preset %q (available: %s)", ErrInvalidOptions, name, strings.Join(PresetNames(), ", "))
	}
	return fn(), nil
}

// PresetNames lists preset names in order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// pulse is the 100k uniform-sphere noise surface sketch.
func pulse() Options {
	return Options{
		Name:            "pulse",
		Seed:            1,
		ParticleCount:   100000,
		BaseRadius:      350,
		Distribution:    UniformSphere,
		Mode:            NoiseSurface,
		Gains:           Gains{Bass: 500, LowMid: 100, Mid: 60, MidHigh: 40, High: 25},
		Decay:           0.9,
		HistoryCapacity: 30,
		TimeScale:       0.01,
		Impact: Impact{
			Policy:    ThresholdAverage,
			Threshold: 1.2,
			MaxRatio:  0.8,
			Spread:    0.5,
		},
		Surface: Surface{
			NoiseScales:   [2]float64{5, 15},
			NoiseRates:    [3]float64{1.2, 1, 1.5},
			BlendWeights:  [2]float64{0.6, 0.4},
			DeformGain:    1,
			LiftGain:      8,
			WaveK:         3,
			WaveRate:      0.5,
			WaveAmplitude: 20,
			WaveSpeed:     0.02,
		},
		Snap: Snap{Solid: Dodecahedron, MaxRadiusRatio: 1.2, JitterAmount: 5},
		Factor: Factor{
			Policy:     TargetPeak,
			PeakScale:  15,
			MaxTarget:  15,
			Release:    0.05,
			BounceGain: 2,
			BounceRate: 0.25,
		},
		Color: Color{
			Enabled:   false,
			Policy:    ThresholdAverage,
			Threshold: 1.2,
			MaxRatio:  0.8,
			Drop:      2,
			Attack:    0.1,
			Release:   0.02,
		},
		Camera: Camera{
			Eye:           [3]float64{0, 0, 800},
			RotationSpeed: 0.3,
			Scale:         1,
			PeakZoom:      0.08,
			FocalLength:   800,
		},
	}
}

// spike is the 10k angle-uniform polyhedron-snap sketch.
func spike() Options {
	o := pulse()
	o.Name = "spike"
	o.ParticleCount = 10000
	o.BaseRadius = 300
	o.Distribution = AngleUniform
	o.Mode = PolyhedronSnap
	o.Gains = Gains{Bass: 0.5, LowMid: 0.3, Mid: 0.2, MidHigh: 0.1, High: 0.05}
	o.Factor = Factor{
		Policy:      TargetBands,
		BandWeights: Gains{Bass: 1, LowMid: 1, Mid: 1, MidHigh: 1, High: 1},
		MaxTarget:   0.8,
		Release:     0.1,
		BounceGain:  0,
		BounceRate:  0.25,
	}
	o.Color = Color{
		Enabled:   true,
		Policy:    ThresholdAverage,
		Threshold: 1.5,
		MaxRatio:  0.8,
		Drop:      2,
		Attack:    0.1,
		Release:   0.02,
	}
	o.Camera = Camera{
		Eye:           [3]float64{200, -400, 800},
		RotationSpeed: 0.5,
		Scale:         1.5,
		PeakZoom:      0.05,
		FocalLength:   800,
	}
	return o
}

// Validate reports the first invalid field.
func (o Options) Validate() error {
	switch {
	case o.ParticleCount < 0:
		return fmt.Errorf("%w: particle count %d is negative", ErrInvalidOptions, o.ParticleCount)
	case o.BaseRadius <= 0:
		return fmt.Errorf("%w: base radius %v must be positive", ErrInvalidOptions, o.BaseRadius)
	case o.Distribution != UniformSphere && o.Distribution != AngleUniform:
		return fmt.Errorf("%w: unknown distribution %q", ErrInvalidOptions, o.Distribution)
	case o.Mode != NoiseSurface && o.Mode != PolyhedronSnap:
		return fmt.Errorf("%w: unknown deformation mode %q", ErrInvalidOptions, o.Mode)
	case o.HistoryCapacity < 1:
		return fmt.Errorf("%w: history capacity %d must be at least 1", ErrInvalidOptions, o.HistoryCapacity)
	case o.Decay < 0 || o.Decay >= 1:
		return fmt.Errorf("%w: decay %v must be in [0,1)", ErrInvalidOptions, o.Decay)
	case o.Surface.NoiseScales[1] <= o.Surface.NoiseScales[0]:
		return fmt.Errorf("%w: detail noise scale %v must exceed base scale %v", ErrInvalidOptions, o.Surface.NoiseScales[1], o.Surface.NoiseScales[0])
	case o.Impact.Spread <= 0:
		return fmt.Errorf("%w: impact spread %v must be positive", ErrInvalidOptions, o.Impact.Spread)
	case o.Snap.Solid != Dodecahedron && o.Snap.Solid != Icosahedron:
		return fmt.Errorf("%w: unknown solid %q", ErrInvalidOptions, o.Snap.Solid)
	case o.Snap.MaxRadiusRatio < 1:
		return fmt.Errorf("%w: max radius ratio %v must be at least 1", ErrInvalidOptions, o.Snap.MaxRadiusRatio)
	case o.Factor.Release <= 0 || o.Factor.Release > 1:
		return fmt.Errorf("%w: release rate %v must be in (0,1]", ErrInvalidOptions, o.Factor.Release)
	case o.Camera.FocalLength <= 0:
		return fmt.Errorf("%w: focal length %v must be positive", ErrInvalidOptions, o.Camera.FocalLength)
	}
	return nil
}

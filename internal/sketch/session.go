package sketch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/deform"
	"github.com/iburimskiy/particle-sphere/internal/features"
	"github.com/iburimskiy/particle-sphere/internal/noise"
	"github.com/iburimskiy/particle-sphere/internal/palette"
	"github.com/iburimskiy/particle-sphere/internal/particle"
)

// Particles per worker below which the deformation pass is not split.
const minChunk = 2048

// Session owns all state of one running visualization. AdvanceFrame is the
// only writer; it must not be called concurrently with itself.
type Session struct {
	opts      config.Options
	source    Source
	field     noise.Field
	activator *Activator

	particles []particle.Particle
	points    []Point
	extractor *features.Extractor
	engine    *deform.Engine
	modulator *palette.Modulator

	frame  features.Frame
	state  deform.State
	color  palette.RGB
	width  int
	height int

	initialized bool
}

var _ Sketch = (*Session)(nil)

// NewSession creates a session. A nil field uses simplex noise seeded from
// the options.
func NewSession(o config.Options, source Source, field noise.Field) *Session {
	if field == nil {
		field = noise.NewSimplex(int64(o.Seed))
	}
	return &Session{
		opts:      o,
		source:    source,
		field:     field,
		activator: NewActivator(source),
		color:     palette.White,
	}
}

// Initialize validates the options and generates the particle field.
func (s *Session) Initialize() error {
	if s.initialized {
		return nil
	}
	if err := s.opts.Validate(); err != nil {
		return fmt.Errorf("initializing sketch %q: %w", s.opts.Name, err)
	}

	s.particles = particle.Generate(s.opts.ParticleCount, s.opts.BaseRadius, s.opts.Distribution, particle.NewRand(s.opts.Seed))
	s.points = make([]Point, len(s.particles))
	s.extractor = features.NewExtractor(s.opts)
	s.engine = deform.NewEngine(s.opts, s.field)
	s.modulator = palette.NewModulator(s.opts.Color)
	if s.opts.Mode == config.PolyhedronSnap {
		s.engine.Bind(s.particles)
	}
	s.initialized = true

	logrus.WithFields(logrus.Fields{
		"function":     "Session.Initialize",
		"sketch":       s.opts.Name,
		"particles":    len(s.particles),
		"distribution": s.opts.Distribution,
		"mode":         s.opts.Mode,
	}).Info("Sketch initialized")
	return nil
}

// AdvanceFrame runs one frame of the pipeline. The returned slice is reused
// by the next call.
func (s *Session) AdvanceFrame(dt float64) []Point {
	if !s.initialized {
		return nil
	}

	if s.source == nil || !s.source.Ready() {
		s.frame = s.extractor.Neutral()
	} else {
		s.frame = s.extractor.Extract(s.source.FrequencyBins())
	}
	s.state = s.engine.Step(s.frame, dt)

	var override *palette.RGB
	if s.opts.Color.Enabled {
		s.color = s.modulator.Update(s.frame.Bands, s.frame.Stats)
		c := s.color
		override = &c
	}

	if err := s.deformAll(override); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "Session.AdvanceFrame",
			"sketch":   s.opts.Name,
			"error":    err.Error(),
		}).Error("Deformation pass failed")
	}
	return s.points
}

// deformAll fills s.points in chunks of at least minChunk particles, running
// at most Workers chunks at once.
func (s *Session) deformAll(override *palette.RGB) error {
	n := len(s.particles)
	workers := s.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunk := max((n+workers-1)/workers, minChunk)

	state := s.state
	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				s.points[i] = Point{Pos: s.engine.Deform(s.particles[i], state), Color: override}
			}
			return nil
		})
	}
	return g.Wait()
}

// OnActivate handles a user gesture: resume audio, then toggle playback.
func (s *Session) OnActivate() {
	s.activator.Activate(context.Background())
}

// OnResize records the viewport size; geometry does not depend on it.
func (s *Session) OnResize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	logrus.WithFields(logrus.Fields{
		"function": "Session.OnResize",
		"width":    width,
		"height":   height,
	}).Debug("Viewport resized")
}

// Close waits for pending activations and pauses playback.
func (s *Session) Close() {
	s.activator.Wait()
	if s.source != nil && s.source.Playing() {
		s.source.Pause()
	}
	logrus.WithFields(logrus.Fields{
		"function": "Session.Close",
		"sketch":   s.opts.Name,
	}).Info("Sketch torn down")
}

func (s *Session) Options() config.Options { return s.opts }
func (s *Session) Particles() []particle.Particle { return s.particles }
func (s *Session) Features() features.Frame { return s.frame }
func (s *Session) State() deform.State { return s.state }
func (s *Session) Color() palette.RGB { return s.color }
func (s *Session) Activator() *Activator { return s.activator }
func (s *Session) Size() (width, height int) { return s.width, s.height }

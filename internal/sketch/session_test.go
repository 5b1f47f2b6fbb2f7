package sketch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/features"
	"github.com/iburimskiy/particle-sphere/internal/palette"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

func smallOptions(name string) config.Options {
	o, _ := config.Preset(name)
	o.ParticleCount = 5000
	o.Workers = 3
	return o
}

func bassSpectrum(bass byte) []byte {
	s := make([]byte, 64)
	s[features.BinBass] = bass
	s[features.BinHigh] = 40
	return s
}

func TestInitializeRejectsInvalidOptions(t *testing.T) {
	o := smallOptions("pulse")
	o.BaseRadius = -1
	s := NewSession(o, nil, nil)
	err := s.Initialize()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidOptions)
	assert.Nil(t, s.AdvanceFrame(1))
}

func TestInitializeGeneratesField(t *testing.T) {
	s := NewSession(smallOptions("spike"), nil, nil)
	require.NoError(t, s.Initialize())
	require.NoError(t, s.Initialize())
	assert.Len(t, s.Particles(), 5000)
	for _, p := range s.Particles() {
		assert.GreaterOrEqual(t, p.Anchor, 0)
	}
}

func TestNotReadySourceStaysCalm(t *testing.T) {
	src := &fakeSource{}
	s := NewSession(smallOptions("pulse"), src, nil)
	require.NoError(t, s.Initialize())

	for i := 0; i < 10; i++ {
		pts := s.AdvanceFrame(1)
		require.Len(t, pts, 5000)
	}
	assert.False(t, s.Features().Ready)
	assert.Zero(t, s.State().DeformationFactor)
	assert.Zero(t, src.binCalls)
}

func TestAdvanceFrameReactsToBass(t *testing.T) {
	src := &fakeSource{ready: true}
	s := NewSession(smallOptions("pulse"), src, nil)
	require.NoError(t, s.Initialize())

	for i := 0; i < 30; i++ {
		src.push(bassSpectrum(10))
		s.AdvanceFrame(1)
	}
	calm := s.State().DeformationFactor

	src.push(bassSpectrum(200))
	s.AdvanceFrame(1)
	assert.True(t, s.Features().Impacted)
	assert.Greater(t, s.State().DeformationFactor, calm)
	assert.Equal(t, 31.0, s.State().Frame)
}

func TestAdvanceFrameReusesLastSpectrum(t *testing.T) {
	src := &fakeSource{ready: true}
	s := NewSession(smallOptions("pulse"), src, nil)
	require.NoError(t, s.Initialize())

	src.push(bassSpectrum(50))
	s.AdvanceFrame(1)
	s.AdvanceFrame(1) // no new bins
	f := s.Features()
	assert.True(t, f.Ready)
	assert.Equal(t, 50*500.0, f.Bass)
	assert.Equal(t, 2, f.Samples)
}

func TestParallelPassMatchesSerial(t *testing.T) {
	for _, name := range config.PresetNames() {
		src := &fakeSource{ready: true}
		o := smallOptions(name)
		s := NewSession(o, src, nil)
		require.NoError(t, s.Initialize())

		src.push(bassSpectrum(90))
		pts := s.AdvanceFrame(1)
		for i, p := range s.Particles() {
			assert.Equal(t, s.engine.Deform(p, s.State()), pts[i].Pos, name)
		}
	}
}

func TestColorOverride(t *testing.T) {
	src := &fakeSource{ready: true}
	s := NewSession(smallOptions("spike"), src, nil)
	require.NoError(t, s.Initialize())

	for i := 0; i < 10; i++ {
		src.push(bassSpectrum(20))
		s.AdvanceFrame(1)
	}
	src.push(bassSpectrum(255))
	pts := s.AdvanceFrame(1)
	require.NotNil(t, pts[0].Color)
	assert.Equal(t, s.Color(), *pts[0].Color)
	assert.Less(t, s.Color().R, 255.0)
	assert.Equal(t, 255.0, s.Color().B)

	pulse := NewSession(smallOptions("pulse"), src, nil)
	require.NoError(t, pulse.Initialize())
	assert.Nil(t, pulse.AdvanceFrame(1)[0].Color)
	assert.Equal(t, palette.White, pulse.Color())
}

func TestSnapSessionRadiusBound(t *testing.T) {
	src := &fakeSource{ready: true}
	o := smallOptions("spike")
	s := NewSession(o, src, nil)
	require.NoError(t, s.Initialize())
	for i := 0; i < 40; i++ {
		src.push(bassSpectrum(byte(i * 6)))
		for _, p := range s.AdvanceFrame(1) {
			assert.LessOrEqual(t, vmath.Mag(p.Pos), o.MaxDeformationRadius()+1e-9)
		}
	}
}

func TestOnActivateAndClose(t *testing.T) {
	src := &fakeSource{ready: true}
	s := NewSession(smallOptions("pulse"), src, nil)
	require.NoError(t, s.Initialize())

	s.OnActivate()
	s.Activator().Wait()
	assert.True(t, src.Playing())

	s.Close()
	assert.False(t, src.Playing())
}

func TestOnResize(t *testing.T) {
	s := NewSession(smallOptions("pulse"), nil, nil)
	s.OnResize(800, 600)
	w, h := s.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestDecayingSpectrumRelaxesSphere(t *testing.T) {
	src := &fakeSource{ready: true}
	s := NewSession(smallOptions("spike"), src, nil)
	require.NoError(t, s.Initialize())

	for i := 0; i < 60; i++ {
		src.push(bassSpectrum(200))
		s.AdvanceFrame(1)
	}
	require.Greater(t, s.State().DeformationFactor, 0.3)

	// A paused track keeps delivering bins that smooth down to silence.
	level := 200.0
	for i := 0; i < 600; i++ {
		level *= 0.8
		spectrum := make([]byte, 64)
		spectrum[features.BinBass] = byte(level)
		src.push(spectrum)
		s.AdvanceFrame(1)
	}
	assert.Less(t, s.State().DeformationFactor, 0.01)
	assert.Zero(t, s.Features().Bass)
}

func TestDeformAllCoversEveryParticle(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		workers int
	}{
		{"empty", 0, 4},
		{"single chunk", 1000, 8},
		{"more chunks than workers", 10000, 2},
		{"more workers than chunks", 10000, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := smallOptions("pulse")
			o.ParticleCount = tt.count
			o.Workers = tt.workers
			s := NewSession(o, &fakeSource{ready: true}, nil)
			require.NoError(t, s.Initialize())

			require.NoError(t, s.deformAll(nil))
			require.Len(t, s.points, tt.count)
			for i, p := range s.Particles() {
				require.Equal(t, s.engine.Deform(p, s.State()), s.points[i].Pos)
			}
		})
	}
}

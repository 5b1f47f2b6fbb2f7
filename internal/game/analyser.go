package game

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// Analyser converts windows of mono samples into byte frequency bins the way
// a browser AnalyserNode does: Blackman window, FFT, per-bin temporal
// smoothing, then decibels linearly mapped onto 0..255.
type Analyser struct {
	size      int
	window    []float64
	buf       []float64
	smoothed  []float64
	bins      []byte
	smoothing float64
	minDB     float64
	maxDB     float64
}

// NewAnalyser creates an analyser for windows of size samples, producing
// size/2 bins.
func NewAnalyser(size int, smoothing, minDB, maxDB float64) *Analyser {
	a := &Analyser{
		size:      size,
		window:    make([]float64, size),
		buf:       make([]float64, size),
		smoothed:  make([]float64, size/2),
		bins:      make([]byte, size/2),
		smoothing: smoothing,
		minDB:     minDB,
		maxDB:     maxDB,
	}
	const alpha = 0.16
	a0, a1, a2 := (1-alpha)/2, 0.5, alpha/2
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / float64(size)
		a.window[i] = a0 - a1*math.Cos(x) + a2*math.Cos(2*x)
	}
	return a
}

// Size is the analysis window length.
func (a *Analyser) Size() int { return a.size }

// BinCount is the number of bins Analyze returns.
func (a *Analyser) BinCount() int { return len(a.bins) }

// Analyze consumes exactly Size() mono samples. The returned slice is reused
// by the next call.
func (a *Analyser) Analyze(samples []float64) []byte {
	for i := range a.buf {
		var s float64
		if i < len(samples) {
			s = samples[i]
		}
		a.buf[i] = s * a.window[i]
	}

	spectrum := fft.FFTReal(a.buf)
	for k := range a.smoothed {
		mag := cmplx.Abs(spectrum[k]) / float64(a.size)
		a.smoothed[k] = a.smoothing*a.smoothed[k] + (1-a.smoothing)*mag
		a.bins[k] = a.toByte(a.smoothed[k])
	}
	return a.bins
}

func (a *Analyser) toByte(mag float64) byte {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	scaled := 255 * (db - a.minDB) / (a.maxDB - a.minDB)
	return byte(vmath.Clamp(scaled, 0, 255))
}

// Package features reduces a frequency spectrum to named band energies and a
// bass impact signal with short-term memory.
package features

import (
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/vmath"
)

// Fixed bin offsets read from each spectrum snapshot.
const (
	BinBass    = 0
	BinLowMid  = 2
	BinMid     = 5
	BinMidHigh = 7
	BinHigh    = 10
)

// Bands holds gain-scaled band energies.
type Bands struct {
	Bass    float64
	LowMid  float64
	Mid     float64
	MidHigh float64
	High    float64
}

// Weighted returns the dot product of the bands with w.
func (b Bands) Weighted(w config.Gains) float64 {
	return b.Bass*w.Bass + b.LowMid*w.LowMid + b.Mid*w.Mid + b.MidHigh*w.MidHigh + b.High*w.High
}

// Stats are the rolling bass statistics after the current frame's push.
type Stats struct {
	Average    float64
	WindowMax  float64
	SessionMax float64
	Samples    int
}

// Frame is everything one extraction produces.
type Frame struct {
	Bands
	Stats
	RawHigh  byte    // unscaled high bin
	Impacted bool    // an impact fired this frame
	Impact   float64 // magnitude of this frame's impact in [0,1]
	BassPeak float64 // remembered impact, decaying every frame
	Ready    bool
}

// Extractor owns the bass history and the decaying peak.
type Extractor struct {
	gains      config.Gains
	impact     config.Impact
	decay      float64
	history    *History
	sessionMax float64
	peak       float64
	last       []byte
}

// NewExtractor builds an extractor from sketch options.
func NewExtractor(o config.Options) *Extractor {
	return &Extractor{
		gains:   o.Gains,
		impact:  o.Impact,
		decay:   o.Decay,
		history: NewHistory(o.HistoryCapacity),
	}
}

// History exposes the bass history for inspection.
func (e *Extractor) History() *History { return e.history }

// Peak returns the current decaying bass peak.
func (e *Extractor) Peak() float64 { return e.peak }

// Extract processes a spectrum snapshot. A nil snapshot means no new data
// arrived and the previous snapshot is reused; with no previous snapshot the
// frame is neutral.
func (e *Extractor) Extract(snapshot []byte) Frame {
	if snapshot == nil {
		if e.last == nil {
			return e.Neutral()
		}
		snapshot = e.last
	} else {
		e.last = append(e.last[:0], snapshot...)
		snapshot = e.last
	}

	bands := Bands{
		Bass:    float64(bin(snapshot, BinBass)) * e.gains.Bass,
		LowMid:  float64(bin(snapshot, BinLowMid)) * e.gains.LowMid,
		Mid:     float64(bin(snapshot, BinMid)) * e.gains.Mid,
		MidHigh: float64(bin(snapshot, BinMidHigh)) * e.gains.MidHigh,
		High:    float64(bin(snapshot, BinHigh)) * e.gains.High,
	}

	e.history.Push(bands.Bass)
	if bands.Bass > e.sessionMax {
		e.sessionMax = bands.Bass
	}
	stats := Stats{
		Average:    e.history.Average(),
		WindowMax:  e.history.Max(),
		SessionMax: e.sessionMax,
		Samples:    e.history.Len(),
	}

	f := Frame{
		Bands:   bands,
		Stats:   stats,
		RawHigh: bin(snapshot, BinHigh),
		Ready:   true,
	}

	decayed := e.peak * e.decay
	if e.fires(bands.Bass, stats) {
		f.Impacted = true
		f.Impact = vmath.Clamp01((bands.Bass - stats.Average) / (stats.Average * e.impact.Spread))
		e.peak = max(decayed, f.Impact)
		logrus.WithFields(logrus.Fields{
			"function":  "Extractor.Extract",
			"bass":      bands.Bass,
			"average":   stats.Average,
			"magnitude": f.Impact,
			"peak":      e.peak,
		}).Debug("Bass impact detected")
	} else {
		e.peak = decayed
	}
	f.BassPeak = e.peak
	return f
}

// Neutral is the frame used while the source is not ready: zero bands, no
// history mutation, the peak keeps decaying.
func (e *Extractor) Neutral() Frame {
	e.peak *= e.decay
	return Frame{
		Stats: Stats{
			Average:    e.history.Average(),
			WindowMax:  e.history.Max(),
			SessionMax: e.sessionMax,
			Samples:    e.history.Len(),
		},
		BassPeak: e.peak,
	}
}

func (e *Extractor) fires(bass float64, s Stats) bool {
	if s.Samples == 0 || s.Average <= 0 {
		return false
	}
	switch e.impact.Policy {
	case config.ThresholdMax:
		return bass > s.SessionMax*e.impact.MaxRatio && bass > s.Average
	default:
		return bass > s.Average*e.impact.Threshold
	}
}

func bin(snapshot []byte, i int) byte {
	if i < len(snapshot) {
		return snapshot[i]
	}
	return 0
}

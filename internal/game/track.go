package game

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/particle-sphere/internal/config"
	"github.com/iburimskiy/particle-sphere/internal/sketch"
)

var (
	// ErrUnsupported is returned for audio files with an unknown extension.
	ErrUnsupported = errors.New("unsupported file type")
	// ErrClosed is returned by Load and Resume after Close.
	ErrClosed = errors.New("track closed")
)

// Track is a looping audio asset played through the beep speaker and
// analysed into frequency bins. Until Load succeeds it reports not ready.
type Track struct {
	path string

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	tap      *visualTap
	output   beep.Streamer

	analyser    *Analyser
	samples     []float64
	silence     []float64
	lastWritten uint64

	ready    atomic.Bool
	initMu   sync.Mutex
	initDone bool
	closed   bool
}

var _ sketch.Source = (*Track)(nil)

// NewTrack creates an unloaded track for path.
func NewTrack(path string) *Track {
	return &Track{
		path:     path,
		analyser: NewAnalyser(config.FFTSize, config.SpectrumSmoothing, config.MinDecibels, config.MaxDecibels),
		samples:  make([]float64, config.FFTSize),
		silence:  make([]float64, config.FFTSize),
	}
}

// Path returns the asset path.
func (t *Track) Path() string { return t.path }

// Load opens and decodes the asset and prepares the paused playback chain:
// loop -> tap -> ctrl -> volume.
func (t *Track) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(t.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.path, err)
	}

	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("decoding %s: %w", t.path, err)
	}

	tap := newVisualTap(beep.Loop(-1, streamer), config.VisualRingSize)
	ctrl := &beep.Ctrl{Streamer: tap, Paused: true}
	volume := &effects.Volume{
		Streamer: ctrl,
		Base:     2,
		Volume:   math.Log2(config.Volume),
	}

	t.initMu.Lock()
	if t.closed {
		t.initMu.Unlock()
		_ = streamer.Close()
		_ = f.Close()
		return fmt.Errorf("loading %s: %w", t.path, ErrClosed)
	}
	t.file = f
	t.streamer = streamer
	t.format = format
	t.tap = tap
	t.ctrl = ctrl
	t.output = volume
	t.ready.Store(true)
	t.initMu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":    "Track.Load",
		"path":        t.path,
		"sample_rate": int(format.SampleRate),
		"duration":    t.Duration().String(),
	}).Info("Audio track loaded")
	return nil
}

func decode(f *os.File) (beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(f.Name()))
	switch ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// Ready reports whether the asset has been decoded.
func (t *Track) Ready() bool { return t.ready.Load() }

// Resume initialises the speaker on first use and starts streaming the
// paused chain into it.
func (t *Track) Resume(ctx context.Context) error {
	if !t.Ready() {
		return errors.New("track not loaded")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	t.initMu.Lock()
	defer t.initMu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if t.initDone {
		return nil
	}

	bufferSize := t.format.SampleRate.N(time.Second / 20)
	if err := speaker.Init(t.format.SampleRate, bufferSize); err != nil {
		return fmt.Errorf("initializing speaker: %w", err)
	}
	speaker.Play(t.output)
	t.initDone = true

	logrus.WithFields(logrus.Fields{
		"function":    "Track.Resume",
		"buffer_size": bufferSize,
	}).Info("Speaker initialized")
	return nil
}

func (t *Track) Play()  { t.setPaused(false) }
func (t *Track) Pause() { t.setPaused(true) }

func (t *Track) setPaused(paused bool) {
	if !t.Ready() {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = paused
	speaker.Unlock()
}

// Playing reports whether the chain is unpaused.
func (t *Track) Playing() bool {
	if !t.Ready() {
		return false
	}
	speaker.Lock()
	defer speaker.Unlock()
	return !t.ctrl.Paused
}

// FrequencyBins analyses the most recent window of played samples. While
// playing it returns nil when nothing new was played since the previous call.
// While paused, or before the speaker starts, it analyses silence so the
// smoothed bins decay toward zero.
func (t *Track) FrequencyBins() []byte {
	if !t.Ready() {
		return nil
	}
	written := t.tap.monoSnapshot(t.samples)
	if written != t.lastWritten {
		t.lastWritten = written
		return t.analyser.Analyze(t.samples)
	}
	if t.streaming() {
		return nil
	}
	return t.analyser.Analyze(t.silence)
}

// streaming reports whether the speaker is pulling samples through the chain.
func (t *Track) streaming() bool {
	t.initMu.Lock()
	started := t.initDone
	t.initMu.Unlock()
	return started && t.Playing()
}

// Duration is the length of one loop iteration.
func (t *Track) Duration() time.Duration {
	if !t.Ready() {
		return 0
	}
	return t.format.SampleRate.D(t.streamer.Len())
}

// Position is the playback position within the current loop iteration.
func (t *Track) Position() time.Duration {
	if !t.Ready() {
		return 0
	}
	speaker.Lock()
	pos := t.streamer.Position()
	speaker.Unlock()
	return t.format.SampleRate.D(pos)
}

// Close stops playback and releases the file.
func (t *Track) Close() {
	t.initMu.Lock()
	defer t.initMu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	if t.initDone {
		speaker.Clear()
	}
	if t.streamer != nil {
		_ = t.streamer.Close()
	}
	if t.file != nil {
		_ = t.file.Close()
	}
	t.ready.Store(false)
}

package game

import (
	"sync"

	"github.com/faiface/beep"
)

// visualTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the frame loop can analyse recently played audio. written counts
// every sample ever recorded so readers can tell whether anything new arrived.
type visualTap struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	written   uint64
	mu        sync.RWMutex
}

func newVisualTap(src beep.Streamer, ringSize int) *visualTap {
	return &visualTap{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (t *visualTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.record(samples[:n])
	}
	return n, ok
}

func (t *visualTap) Err() error { return t.Source.Err() }

func (t *visualTap) record(samples [][2]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples {
		t.buffer[t.nextIndex] = s
		t.nextIndex = (t.nextIndex + 1) % len(t.buffer)
	}
	t.written += uint64(len(samples))
}

// Written returns the total number of samples recorded so far.
func (t *visualTap) Written() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.written
}

// monoSnapshot fills dst with the last len(dst) samples mixed to mono, most
// recent last. Slots never written read as silence. It returns the write
// counter at the time of the copy.
func (t *visualTap) monoSnapshot(dst []float64) uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := len(dst)
	size := len(t.buffer)
	for i := 0; i < n; i++ {
		back := n - i // 1 = most recent
		if back > size || uint64(back) > t.written {
			dst[i] = 0
			continue
		}
		s := t.buffer[(t.nextIndex-back+size)%size]
		dst[i] = (s[0] + s[1]) * 0.5
	}
	return t.written
}

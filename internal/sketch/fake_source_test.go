package sketch

import (
	"context"
	"sync"
)

type fakeSource struct {
	mu        sync.Mutex
	ready     bool
	playing   bool
	bins      []byte
	resumeErr error
	release   chan struct{} // when set, Resume blocks until closed
	resumed   int
	toggles   int
	binCalls  int
}

func (f *fakeSource) FrequencyBins() []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.binCalls++
	b := f.bins
	f.bins = nil
	return b
}

func (f *fakeSource) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready
}

func (f *fakeSource) Resume(ctx context.Context) error {
	f.mu.Lock()
	release := f.release
	f.resumed++
	f.mu.Unlock()
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.resumeErr
}

func (f *fakeSource) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = true
	f.toggles++
}

func (f *fakeSource) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	f.toggles++
}

func (f *fakeSource) Playing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakeSource) push(bins []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bins = bins
}

func (f *fakeSource) counts() (resumed, toggles int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resumed, f.toggles
}

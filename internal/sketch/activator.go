package sketch

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Activator toggles playback on user gestures. Audio output is resumed first;
// the toggle happens only after a successful resume, and gestures arriving
// while a resume is in flight are dropped.
type Activator struct {
	source  Source
	pending atomic.Bool
	wg      sync.WaitGroup
}

// NewActivator creates an activator for source.
func NewActivator(source Source) *Activator {
	return &Activator{source: source}
}

// Activate starts a resume-then-toggle and reports whether it was accepted.
func (a *Activator) Activate(ctx context.Context) bool {
	if a.source == nil || !a.source.Ready() {
		logrus.WithFields(logrus.Fields{
			"function": "Activator.Activate",
		}).Debug("Audio not loaded yet, ignoring activation")
		return false
	}
	if !a.pending.CompareAndSwap(false, true) {
		logrus.WithFields(logrus.Fields{
			"function": "Activator.Activate",
		}).Debug("Resume already in flight, ignoring activation")
		return false
	}

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.pending.Store(false)

		if err := a.source.Resume(ctx); err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Activator.Activate",
				"error":    err.Error(),
			}).Warn("Audio resume failed")
			return
		}
		if a.source.Playing() {
			a.source.Pause()
			logrus.WithField("function", "Activator.Activate").Info("Playback paused")
		} else {
			a.source.Play()
			logrus.WithField("function", "Activator.Activate").Info("Playback started")
		}
	}()
	return true
}

// Pending reports whether a resume is in flight.
func (a *Activator) Pending() bool { return a.pending.Load() }

// Wait blocks until in-flight activations finish.
func (a *Activator) Wait() { a.wg.Wait() }

package game

import (
	"testing"

	"github.com/faiface/beep"
	"github.com/stretchr/testify/assert"
)

// ramp yields sample i as (i, i+2), so its mono mix is i+1.
func ramp() beep.Streamer {
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for j := range samples {
			i++
			samples[j] = [2]float64{float64(i), float64(i) + 2}
		}
		return len(samples), true
	})
}

func TestVisualTapRecordsStream(t *testing.T) {
	tap := newVisualTap(ramp(), 8)
	buf := make([][2]float64, 5)
	n, ok := tap.Stream(buf)
	assert.Equal(t, 5, n)
	assert.True(t, ok)
	assert.Equal(t, uint64(5), tap.Written())
	assert.NoError(t, tap.Err())

	dst := make([]float64, 3)
	written := tap.monoSnapshot(dst)
	assert.Equal(t, uint64(5), written)
	assert.Equal(t, []float64{4, 5, 6}, dst)
}

func TestVisualTapPadsWithSilence(t *testing.T) {
	tap := newVisualTap(ramp(), 8)
	tap.Stream(make([][2]float64, 2))
	dst := make([]float64, 4)
	tap.monoSnapshot(dst)
	assert.Equal(t, []float64{0, 0, 2, 3}, dst)
}

func TestVisualTapWrapsAround(t *testing.T) {
	tap := newVisualTap(ramp(), 4)
	tap.Stream(make([][2]float64, 10))
	dst := make([]float64, 6)
	tap.monoSnapshot(dst)
	// Only the last 4 samples survive in a ring of 4.
	assert.Equal(t, []float64{0, 0, 8, 9, 10, 11}, dst)
	assert.Equal(t, uint64(10), tap.Written())
}

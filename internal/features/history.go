package features

// History is a bounded FIFO of recent bass values.
type History struct {
	buf      []float64
	capacity int
	start    int
	n        int
}

// NewHistory creates a history holding at most capacity values.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		buf:      make([]float64, capacity),
		capacity: capacity,
	}
}

// Push appends v, evicting the oldest value when full.
func (h *History) Push(v float64) {
	if h.n < h.capacity {
		h.buf[(h.start+h.n)%h.capacity] = v
		h.n++
		return
	}
	h.buf[h.start] = v
	h.start = (h.start + 1) % h.capacity
}

func (h *History) Len() int      { return h.n }
func (h *History) Capacity() int { return h.capacity }

// Average is the arithmetic mean, or 0 when empty.
func (h *History) Average() float64 {
	if h.n == 0 {
		return 0
	}
	var s float64
	for i := 0; i < h.n; i++ {
		s += h.buf[(h.start+i)%h.capacity]
	}
	return s / float64(h.n)
}

// Max is the largest value currently held, or 0 when empty.
func (h *History) Max() float64 {
	if h.n == 0 {
		return 0
	}
	m := h.buf[h.start]
	for i := 1; i < h.n; i++ {
		if v := h.buf[(h.start+i)%h.capacity]; v > m {
			m = v
		}
	}
	return m
}

// Values returns the held values, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	for i := range out {
		out[i] = h.buf[(h.start+i)%h.capacity]
	}
	return out
}

package stats

// RingBuffer is a fixed-capacity FIFO of float64 values
type RingBuffer struct {
	data     []float64
	capacity int
	size     int
	head     int // next write position
}

// NewRingBuffer creates a ring buffer with the given capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// PushEvict appends v, evicting the oldest value once the buffer is full.
// It returns the evicted value and whether one was evicted.
func (rb *RingBuffer) PushEvict(v float64) (float64, bool) {
	var evicted float64
	full := rb.size == rb.capacity
	if full {
		evicted = rb.data[rb.head]
	}
	rb.data[rb.head] = v
	rb.head = (rb.head + 1) % rb.capacity
	if !full {
		rb.size++
	}
	return evicted, full
}

// Len returns the number of values held
func (rb *RingBuffer) Len() int {
	return rb.size
}

// Capacity returns the maximum number of values held
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// Sum returns the sum of the held values
func (rb *RingBuffer) Sum() float64 {
	var sum float64
	for _, v := range rb.Values() {
		sum += v
	}
	return sum
}

// Values returns the held values oldest first
func (rb *RingBuffer) Values() []float64 {
	out := make([]float64, rb.size)
	start := 0
	if rb.size == rb.capacity {
		start = rb.head
	}
	for i := 0; i < rb.size; i++ {
		out[i] = rb.data[(start+i)%rb.capacity]
	}
	return out
}

// Clear empties the buffer
func (rb *RingBuffer) Clear() {
	rb.size = 0
	rb.head = 0
}

// Clone returns an independent copy of the buffer
func (rb *RingBuffer) Clone() *RingBuffer {
	cp := *rb
	cp.data = append([]float64(nil), rb.data...)
	return &cp
}

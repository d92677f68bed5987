package audio

// Buffer accumulates interleaved PCM samples up to one whole frame.
type Buffer struct {
	data []int16
	idx  int
}

// NewBuffer returns a buffer holding samples interleaved values.
func NewBuffer(samples int) *Buffer {
	return &Buffer{data: make([]int16, samples)}
}

// Write copies samples into the free space and returns how many fit.
func (b *Buffer) Write(samples []int16) (written int) {
	written = copy(b.data[b.idx:], samples)
	b.idx += written
	return written
}

// Full reports whether the buffer holds a whole frame and rewinds it
// for the next one when it does.
func (b *Buffer) Full() bool {
	full := b.idx == len(b.data)
	if full {
		b.idx = 0
	}
	return full
}

// Len returns the number of buffered values.
func (b *Buffer) Len() int { return b.idx }

// Frame returns the underlying frame storage.
func (b *Buffer) Frame() []int16 { return b.data }

// Reset discards any buffered values.
func (b *Buffer) Reset() { b.idx = 0 }

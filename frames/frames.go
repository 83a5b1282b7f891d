// Package frames slices columnar audio into the fixed-size, fixed-step
// blocks a plugin is initialised for. The final partial block is
// zero-padded so every block handed out has exactly the block size.
package frames

import "errors"

// Cursor walks a channels × samples buffer in blockSize windows advanced
// by stepSize. It allocates a fresh block per step, so callers may hand
// blocks straight to a process call without worrying about aliasing.
type Cursor struct {
	data      [][]float32
	length    int
	stepSize  int
	blockSize int
	pos       int
}

// New validates the buffer shape and returns a cursor positioned at
// frame zero. All channels must have the same length; stepSize and
// blockSize must be at least one.
func New(data [][]float32, stepSize, blockSize int) (*Cursor, error) {
	if len(data) == 0 {
		return nil, errors.New("frames: no channels")
	}
	if stepSize < 1 || blockSize < 1 {
		return nil, errors.New("frames: step and block sizes must be at least 1")
	}
	length := len(data[0])
	for c := 1; c < len(data); c++ {
		if len(data[c]) != length {
			return nil, errors.New("frames: channels have differing lengths")
		}
	}
	return &Cursor{
		data:      data,
		length:    length,
		stepSize:  stepSize,
		blockSize: blockSize,
	}, nil
}

// Next returns the next block and the frame index it starts at. ok is
// false once every sample has been covered. A block whose window runs
// past the end of the data is zero-padded to blockSize.
func (c *Cursor) Next() (block [][]float32, startFrame int64, ok bool) {
	if c.pos >= c.length {
		return nil, 0, false
	}
	start := c.pos
	block = make([][]float32, len(c.data))
	for ch, samples := range c.data {
		out := make([]float32, c.blockSize)
		end := start + c.blockSize
		if end > len(samples) {
			end = len(samples)
		}
		copy(out, samples[start:end])
		block[ch] = out
	}
	c.pos += c.stepSize
	return block, int64(start), true
}

// Count returns how many blocks the cursor will yield in total.
func (c *Cursor) Count() int {
	if c.length == 0 {
		return 0
	}
	return (c.length + c.stepSize - 1) / c.stepSize
}

// Package fir provides FIR filtering through streaming FFT convolution,
// plus two kernel designers: Blackman-windowed sinc filters and arbitrary
// frequency-sampled responses.
package fir

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/yodel-dsp/yodel/dsp/core"
)

var (
	ErrEmptyKernel    = errors.New("fir: kernel must not be empty")
	ErrInvalidFrame   = errors.New("fir: frame size must be > 0")
	ErrLengthMismatch = errors.New("fir: buffer length mismatch")
)

// BlockConvolver convolves a stream of fixed-size frames against an
// impulse response using FFT overlap-add. The convolution tail past each
// frame is carried into the following frames, so an impulse response
// longer than a frame keeps emitting after the frame that excited it.
//
// A BlockConvolver holds scratch buffers and is not safe for concurrent
// use.
type BlockConvolver struct {
	kernel    []float64
	kernelFFT []complex128

	frameSize int
	fftSize   int
	plan      *algofft.Plan[complex128]

	scratch []complex128
	tail    []float64
}

// NewBlockConvolver creates a convolver for the given frame size and
// impulse response.
func NewBlockConvolver(frameSize int, kernel []float64) (*BlockConvolver, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrame, frameSize)
	}
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	c := &BlockConvolver{frameSize: frameSize}
	if err := c.SetKernel(kernel); err != nil {
		return nil, err
	}

	return c, nil
}

// SetKernel replaces the impulse response. The tail already owed from
// previous frames still plays out; only its part past the new kernel's
// reach is dropped. The FFT plan is rebuilt only when the transform size
// changes.
func (c *BlockConvolver) SetKernel(kernel []float64) error {
	if len(kernel) == 0 {
		return ErrEmptyKernel
	}

	fftSize := core.NextPowerOfTwo(c.frameSize + len(kernel) - 1)
	if fftSize != c.fftSize {
		plan, err := algofft.NewPlan64(fftSize)
		if err != nil {
			return fmt.Errorf("fir: failed to create FFT plan: %w", err)
		}

		c.plan = plan
		c.fftSize = fftSize
		c.kernelFFT = make([]complex128, fftSize)
		c.scratch = make([]complex128, fftSize)
	}

	c.kernel = append(c.kernel[:0], kernel...)

	for i := range c.scratch {
		c.scratch[i] = 0
	}
	for i, v := range kernel {
		c.scratch[i] = complex(v, 0)
	}
	if err := c.plan.Forward(c.kernelFFT, c.scratch); err != nil {
		return fmt.Errorf("fir: kernel FFT failed: %w", err)
	}

	tailLen := len(kernel) - 1
	switch {
	case tailLen <= len(c.tail):
		c.tail = c.tail[:tailLen]
	default:
		for len(c.tail) < tailLen {
			c.tail = append(c.tail, 0)
		}
	}

	return nil
}

// Kernel returns the current impulse response. The slice is owned by the
// convolver; callers must not modify it.
func (c *BlockConvolver) Kernel() []float64 {
	return c.kernel
}

// FrameSize returns the fixed input/output frame length.
func (c *BlockConvolver) FrameSize() int {
	return c.frameSize
}

// Reset drops the carried tail.
func (c *BlockConvolver) Reset() {
	for i := range c.tail {
		c.tail[i] = 0
	}
}

// Process convolves one frame of src into dst. Both must be FrameSize()
// long; dst == src works in place. Zero-alloc.
func (c *BlockConvolver) Process(dst, src []float64) error {
	if len(src) != c.frameSize || len(dst) != c.frameSize {
		return fmt.Errorf("%w: frame=%d dst=%d src=%d", ErrLengthMismatch, c.frameSize, len(dst), len(src))
	}

	for i := range c.scratch {
		c.scratch[i] = 0
	}
	for i, v := range src {
		c.scratch[i] = complex(v, 0)
	}

	if err := c.plan.Forward(c.scratch, c.scratch); err != nil {
		return fmt.Errorf("fir: forward FFT failed: %w", err)
	}
	for i := range c.scratch {
		c.scratch[i] *= c.kernelFFT[i]
	}
	if err := c.plan.Inverse(c.scratch, c.scratch); err != nil {
		return fmt.Errorf("fir: inverse FFT failed: %w", err)
	}

	// First frameSize samples leave now, the rest is owed to the
	// frames that follow.
	n := c.frameSize
	tailLen := len(c.tail)
	for i := 0; i < n; i++ {
		y := real(c.scratch[i])
		if i < tailLen {
			y += c.tail[i]
		}
		dst[i] = y
	}

	for i := 0; i < tailLen; i++ {
		carried := float64(0)
		if i+n < tailLen {
			carried = c.tail[i+n]
		}
		c.tail[i] = carried + real(c.scratch[i+n])
	}

	return nil
}

package fir

import (
	"fmt"

	"github.com/yodel-dsp/yodel/dsp/analysis"
	"github.com/yodel-dsp/yodel/dsp/core"
)

// Custom is an arbitrary-magnitude FIR filter built by frequency
// sampling: the caller hands over one magnitude per bin up to Nyquist and
// the filter synthesizes a linear-phase impulse response that matches
// them at the bin centers. Between bins the response is interpolated by
// the transform, so steep magnitude jumps ripple.
//
// The impulse response spans the whole frame, which delays the output by
// Latency()+1 samples. A fresh Custom has a flat response.
type Custom struct {
	sampleRate float64
	frameSize  int

	fft  *analysis.FFT
	conv *BlockConvolver

	ir []float64
	re []float64
	im []float64
}

// NewCustom creates a flat-response filter. frameSize must be a power of
// two; it fixes both the block length and the design resolution of
// frameSize/2+1 magnitude points.
func NewCustom(sampleRate float64, frameSize int) (*Custom, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("fir: sample rate must be > 0: %v", sampleRate)
	}

	fft, err := analysis.NewFFT(frameSize)
	if err != nil {
		return nil, err
	}

	c := &Custom{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		fft:        fft,
		ir:         make([]float64, frameSize),
		re:         make([]float64, frameSize),
		im:         make([]float64, frameSize),
	}

	flat := make([]float64, frameSize/2+1)
	for i := range flat {
		flat[i] = 1
	}
	if err := c.Design(flat, false); err != nil {
		return nil, err
	}

	return c, nil
}

// Design synthesizes the impulse response for the given magnitudes, one
// per bin from DC to Nyquist (frameSize/2+1 values). With inDB set the
// values are decibels, otherwise linear gain. The convolution history is
// kept, so a running stream can be redesigned live.
func (c *Custom) Design(magnitudes []float64, inDB bool) error {
	want := c.frameSize/2 + 1
	if len(magnitudes) != want {
		return fmt.Errorf("%w: need %d magnitudes, got %d", ErrLengthMismatch, want, len(magnitudes))
	}

	// Zero-phase spectrum: mirror the positive bins onto the negative
	// half so the inverse transform is real and even.
	for k := 0; k < want; k++ {
		m := magnitudes[k]
		if inDB {
			m = core.DBToLinear(m)
		}

		c.re[k] = m
		if k > 0 && k < c.frameSize/2 {
			c.re[c.frameSize-k] = m
		}
		c.im[k] = 0
		if k > 0 && k < c.frameSize/2 {
			c.im[c.frameSize-k] = 0
		}
	}

	if err := c.fft.Inverse(c.re, c.im, c.ir); err != nil {
		return err
	}

	// Rotate the even response by half a frame to make it causal.
	half := c.frameSize / 2
	rotated := make([]float64, c.frameSize)
	for i := range rotated {
		rotated[i] = c.ir[(i+half)%c.frameSize]
	}
	copy(c.ir, rotated)

	if c.conv == nil {
		conv, err := NewBlockConvolver(c.frameSize, c.ir)
		if err != nil {
			return err
		}
		c.conv = conv

		return nil
	}

	return c.conv.SetKernel(c.ir)
}

// ImpulseResponse returns the synthesized impulse response. The slice is
// owned by the filter; callers must not modify it.
func (c *Custom) ImpulseResponse() []float64 {
	return c.ir
}

// Latency returns the filter delay in samples minus one: the first
// Latency()+1 output samples of a stream are leading silence.
func (c *Custom) Latency() int {
	return c.frameSize/2 - 1
}

// FrameSize returns the fixed frame length.
func (c *Custom) FrameSize() int {
	return c.frameSize
}

// Reset drops convolution history without touching the design.
func (c *Custom) Reset() {
	c.conv.Reset()
}

// Process filters one frame of src into dst. Both must be FrameSize()
// long; dst == src works in place.
func (c *Custom) Process(dst, src []float64) error {
	return c.conv.Process(dst, src)
}

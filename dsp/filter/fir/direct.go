package fir

import (
	"math"
	"math/cmplx"
)

// Direct is a direct-form FIR filter over a circular delay line. For
// short kernels the per-tap loop beats the FFT path; for long kernels use
// BlockConvolver instead.
type Direct struct {
	taps  []float64
	delay []float64
	pos   int
}

// NewDirect creates a direct-form filter from the given taps. The slice
// is copied.
func NewDirect(taps []float64) (*Direct, error) {
	if len(taps) == 0 {
		return nil, ErrEmptyKernel
	}

	t := make([]float64, len(taps))
	copy(t, taps)

	return &Direct{
		taps:  t,
		delay: make([]float64, len(taps)),
	}, nil
}

// ProcessSample filters one sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (d *Direct) ProcessSample(x float64) float64 {
	d.delay[d.pos] = x

	var y float64
	n := len(d.taps)
	p := d.pos
	for k := 0; k < n; k++ {
		y += d.taps[k] * d.delay[p]
		p--
		if p < 0 {
			p = n - 1
		}
	}

	d.pos++
	if d.pos >= n {
		d.pos = 0
	}

	return y
}

// ProcessBlock filters a block in-place.
func (d *Direct) ProcessBlock(buf []float64) {
	for i, x := range buf {
		buf[i] = d.ProcessSample(x)
	}
}

// Reset clears the delay line.
func (d *Direct) Reset() {
	for i := range d.delay {
		d.delay[i] = 0
	}
	d.pos = 0
}

// Order returns the filter order, len(taps)-1.
func (d *Direct) Order() int {
	return len(d.taps) - 1
}

// Taps returns a copy of the filter taps.
func (d *Direct) Taps() []float64 {
	t := make([]float64, len(d.taps))
	copy(t, d.taps)

	return t
}

// Response evaluates the complex frequency response at freq (Hz).
func (d *Direct) Response(freq, sampleRate float64) complex128 {
	w := 2 * math.Pi * freq / sampleRate

	var h complex128
	for k, c := range d.taps {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}

// MagnitudeDB returns the magnitude response in decibels at freq (Hz).
func (d *Direct) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(d.Response(freq, sampleRate)))
}

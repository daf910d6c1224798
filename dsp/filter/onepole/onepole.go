// Package onepole provides single-pole lowpass and highpass filters with a
// 6 dB/octave slope.
package onepole

import "math"

// Filter is a single-pole recursive filter:
//
//	y[n] = a0*x[n] + a1*x[n-1] + b1*y[n-1]
//
// A fresh or Reset Filter is inactive and passes the signal through
// unchanged; use Lowpass or Highpass to activate it.
type Filter struct {
	a0, a1, b1 float64

	x1, y1 float64
}

// New returns an inactive filter with a flat frequency response.
func New() *Filter {
	f := &Filter{}
	f.Reset()

	return f
}

// Reset makes the filter inactive with a flat response and clears state.
func (f *Filter) Reset() {
	f.a0 = 1
	f.a1 = 0
	f.b1 = 0
	f.x1 = 0
	f.y1 = 0
}

// Lowpass configures a lowpass at cutoff Hz for the given sample rate.
func (f *Filter) Lowpass(sampleRate, cutoff float64) {
	f.b1 = math.Exp(-2 * math.Pi * cutoff / sampleRate)
	f.a0 = 1 - f.b1
	f.a1 = 0
}

// Highpass configures a highpass at cutoff Hz for the given sample rate.
func (f *Filter) Highpass(sampleRate, cutoff float64) {
	f.b1 = math.Exp(-2 * math.Pi * cutoff / sampleRate)
	f.a0 = 0.5 * (1 + f.b1)
	f.a1 = -f.a0
}

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	y := f.a0*x + f.a1*f.x1 + f.b1*f.y1
	f.y1 = y
	f.x1 = x

	return y
}

// ProcessBlock filters a block in-place.
func (f *Filter) ProcessBlock(buf []float64) {
	a0, a1, b1 := f.a0, f.a1, f.b1
	x1, y1 := f.x1, f.y1

	for i, x := range buf {
		y := a0*x + a1*x1 + b1*y1
		y1 = y
		x1 = x
		buf[i] = y
	}

	f.x1, f.y1 = x1, y1
}

// ProcessBlockTo filters src into dst. Both slices must have the same
// length; dst == src filters in place.
func (f *Filter) ProcessBlockTo(dst, src []float64) {
	if len(src) == 0 {
		return
	}

	_ = dst[len(src)-1] // bounds check hint
	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}
}

// Package svf implements a Chamberlin state variable filter producing
// simultaneous highpass, bandpass, lowpass, and band-reject outputs.
//
// Attenuation is 12 dB per octave, like a single biquad section, but all
// four responses come from one recurrence. The topology becomes unstable
// when the cutoff approaches one sixth of the sample rate; callers who
// need higher cutoffs should use dsp/filter/biquad instead.
package svf

import (
	"fmt"
	"math"
)

// Filter is a state variable filter. The zero value (and a Reset filter)
// is inactive: highpass and band-reject pass the input through bit-exact,
// bandpass and lowpass output zero. Call Set to activate it.
type Filter struct {
	f, q   float64
	s1, s2 float64
}

// New returns an inactive filter with a flat response on the highpass and
// band-reject outputs.
func New() *Filter {
	return &Filter{}
}

// Set specifies cutoff (Hz) and resonance at the given sample rate.
// Resonance 1/sqrt(2) gives a flat passband; higher values peak at the
// cutoff. A resonance of zero or below deactivates the filter.
func (f *Filter) Set(sampleRate, cutoff, resonance float64) {
	if sampleRate <= 0 || resonance <= 0 {
		f.f = 0
		f.q = 0

		return
	}

	f.f = 2 * math.Sin(math.Pi*cutoff/sampleRate)
	f.q = 1 / resonance
}

// Reset deactivates the filter and clears its state.
func (f *Filter) Reset() {
	f.f = 0
	f.q = 0
	f.s1 = 0
	f.s2 = 0
}

// ProcessSample filters one sample and returns all four outputs.
func (f *Filter) ProcessSample(x float64) (hp, bp, lp, br float64) {
	hp = x - f.q*f.s1 - f.s2
	bp = hp*f.f + f.s1
	lp = f.s1*f.f + f.s2
	br = hp + lp
	f.s1 = bp
	f.s2 = lp

	return hp, bp, lp, br
}

// Process filters src into the four output buffers. Any output slice may
// alias src for in-place use; all buffers must have the same length.
// Zero-alloc.
func (f *Filter) Process(hp, bp, lp, br, src []float64) error {
	n := len(src)
	if len(hp) != n || len(bp) != n || len(lp) != n || len(br) != n {
		return fmt.Errorf("svf: output length mismatch: src=%d hp=%d bp=%d lp=%d br=%d",
			n, len(hp), len(bp), len(lp), len(br))
	}

	ff, q := f.f, f.q
	s1, s2 := f.s1, f.s2

	for i := 0; i < n; i++ {
		x := src[i]
		h := x - q*s1 - s2
		b := h*ff + s1
		l := s1*ff + s2
		hp[i] = h
		bp[i] = b
		lp[i] = l
		br[i] = h + l
		s1 = b
		s2 = l
	}

	f.s1, f.s2 = s1, s2

	return nil
}

// Package biquad provides biquad (second-order IIR) filter primitives with
// a 12 dB/octave slope.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// via [Chain]. Coefficient design follows the Audio EQ Cookbook (Robert
// Bristow-Johnson): lowpass, highpass, bandpass, allpass, notch, peak and
// shelving filters, plus raw custom coefficient sets.
package biquad

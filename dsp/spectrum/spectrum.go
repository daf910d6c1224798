// Package spectrum provides post-processing for split real/imaginary
// spectra produced by the analysis package.
package spectrum

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/yodel-dsp/yodel/dsp/core"
)

// ErrLengthMismatch is returned when input slices differ in length.
var ErrLengthMismatch = errors.New("spectrum: buffer length mismatch")

// Modulus returns the magnitude of a single complex bin.
func Modulus(re, im float64) float64 {
	return math.Sqrt(re*re + im*im)
}

// PhaseAngle returns the phase of a single complex bin in radians.
func PhaseAngle(re, im float64) float64 {
	return math.Atan2(im, re)
}

// Magnitude computes |X[k]| = sqrt(re[k]^2 + im[k]^2) into dst.
// All three slices must have the same length.
func Magnitude(dst, re, im []float64) error {
	if len(dst) != len(re) || len(re) != len(im) {
		return ErrLengthMismatch
	}

	vecmath.Magnitude(dst, re, im)

	return nil
}

// Power computes |X[k]|^2 = re[k]^2 + im[k]^2 into dst.
// All three slices must have the same length.
func Power(dst, re, im []float64) error {
	if len(dst) != len(re) || len(re) != len(im) {
		return ErrLengthMismatch
	}

	vecmath.Power(dst, re, im)

	return nil
}

// Phase computes arg(X[k]) in radians into dst.
// All three slices must have the same length.
func Phase(dst, re, im []float64) error {
	if len(dst) != len(re) || len(re) != len(im) {
		return ErrLengthMismatch
	}

	for i := range dst {
		dst[i] = math.Atan2(im[i], re[i])
	}

	return nil
}

// MagnitudeDB computes the magnitude spectrum in dB into dst, flooring
// silent bins at core.FloorDB so response plots stay finite.
func MagnitudeDB(dst, re, im []float64) error {
	if err := Magnitude(dst, re, im); err != nil {
		return err
	}

	for i, v := range dst {
		dst[i] = core.LinearToDBFloored(v)
	}

	return nil
}

// UnwrapPhase returns a new phase slice with +/-2*pi discontinuities removed.
func UnwrapPhase(phase []float64) []float64 {
	if len(phase) == 0 {
		return nil
	}

	out := make([]float64, len(phase))
	out[0] = phase[0]

	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		switch {
		case d > math.Pi:
			offset -= 2 * math.Pi
		case d < -math.Pi:
			offset += 2 * math.Pi
		}

		out[i] = phase[i] + offset
	}

	return out
}

package testutil

import (
	"fmt"

	"github.com/yodel-dsp/yodel/dsp/analysis"
	"github.com/yodel-dsp/yodel/dsp/spectrum"
)

// MagnitudeSpectrum returns |H(k)| over a size-point FFT of signal,
// zero-padded as needed. size must be a power of two and at least
// len(signal).
func MagnitudeSpectrum(signal []float64, size int) ([]float64, error) {
	if len(signal) > size {
		return nil, fmt.Errorf("signal length %d exceeds FFT size %d", len(signal), size)
	}

	fft, err := analysis.NewFFT(size)
	if err != nil {
		return nil, err
	}

	padded := make([]float64, size)
	copy(padded, signal)

	re := make([]float64, size)
	im := make([]float64, size)
	if err := fft.Forward(padded, re, im); err != nil {
		return nil, err
	}

	amp := make([]float64, size)
	if err := spectrum.Magnitude(amp, re, im); err != nil {
		return nil, err
	}

	return amp, nil
}

// Processor is any block filter that maps one input frame to one output
// frame of the same length.
type Processor interface {
	Process(dst, src []float64) error
}

// ImpulseMagnitude feeds a length-size impulse through p and returns the
// magnitude spectrum of the response.
func ImpulseMagnitude(p Processor, size int) ([]float64, error) {
	response := make([]float64, size)
	if err := p.Process(response, Impulse(size, 0)); err != nil {
		return nil, err
	}

	return MagnitudeSpectrum(response, size)
}

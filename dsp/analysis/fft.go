package analysis

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/yodel-dsp/yodel/dsp/core"
)

// Errors returned by transform constructors and methods.
var (
	ErrInvalidSize    = errors.New("analysis: size must be > 0")
	ErrNotPowerOfTwo  = errors.New("analysis: FFT size must be a power of two")
	ErrLengthMismatch = errors.New("analysis: buffer length mismatch")
)

// FFT converts fixed-size real time-domain signals to and from split
// real/imaginary spectra using a precomputed algo-fft plan.
//
// An FFT instance holds scratch buffers and is not safe for concurrent use.
type FFT struct {
	size int
	plan *algofft.Plan[complex128]

	scratch []complex128
}

// NewFFT creates a transform for power-of-two sizes.
func NewFFT(size int) (*FFT, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if !core.IsPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, size)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to create FFT plan: %w", err)
	}

	return &FFT{
		size:    size,
		plan:    plan,
		scratch: make([]complex128, size),
	}, nil
}

// Size returns the transform length.
func (f *FFT) Size() int {
	return f.size
}

// Forward computes the complex spectrum of a real time-domain signal.
// re and im receive the real and imaginary parts of all Size() bins.
func (f *FFT) Forward(signal, re, im []float64) error {
	if err := f.checkLengths(signal, re, im); err != nil {
		return err
	}

	for i, v := range signal {
		f.scratch[i] = complex(v, 0)
	}

	if err := f.plan.Forward(f.scratch, f.scratch); err != nil {
		return fmt.Errorf("analysis: forward FFT failed: %w", err)
	}

	for i, c := range f.scratch {
		re[i] = real(c)
		im[i] = imag(c)
	}

	return nil
}

// Inverse reconstructs the real time-domain signal from a split spectrum.
// The spectrum is expected to be conjugate symmetric (as produced by
// Forward); any imaginary residue in the reconstruction is discarded.
// The input slices are left untouched.
func (f *FFT) Inverse(re, im, signal []float64) error {
	if err := f.checkLengths(signal, re, im); err != nil {
		return err
	}

	for i := range f.scratch {
		f.scratch[i] = complex(re[i], im[i])
	}

	if err := f.plan.Inverse(f.scratch, f.scratch); err != nil {
		return fmt.Errorf("analysis: inverse FFT failed: %w", err)
	}

	for i, c := range f.scratch {
		signal[i] = real(c)
	}

	return nil
}

func (f *FFT) checkLengths(signal, re, im []float64) error {
	if len(signal) != f.size || len(re) != f.size || len(im) != f.size {
		return fmt.Errorf("%w: want %d, got signal=%d re=%d im=%d",
			ErrLengthMismatch, f.size, len(signal), len(re), len(im))
	}

	return nil
}

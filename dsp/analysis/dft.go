package analysis

import (
	"fmt"
	"math"
)

// DFT is a naive O(N^2) discrete Fourier transform sharing the FFT's split
// real/imaginary conventions. It works for any size and exists for
// validation at small lengths; use [FFT] for anything performance-relevant.
type DFT struct {
	size int

	// one period of cos/sin, indexed by (k*i) mod size
	cos []float64
	sin []float64
}

// NewDFT creates a reference transform of the given size.
func NewDFT(size int) (*DFT, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	d := &DFT{
		size: size,
		cos:  make([]float64, size),
		sin:  make([]float64, size),
	}

	step := 2 * math.Pi / float64(size)
	for i := range d.cos {
		d.cos[i] = math.Cos(step * float64(i))
		d.sin[i] = math.Sin(step * float64(i))
	}

	return d, nil
}

// Size returns the transform length.
func (d *DFT) Size() int {
	return d.size
}

// Forward computes the complex spectrum of a real time-domain signal.
func (d *DFT) Forward(signal, re, im []float64) error {
	if err := d.checkLengths(signal, re, im); err != nil {
		return err
	}

	for k := 0; k < d.size; k++ {
		var sumRe, sumIm float64
		for i, x := range signal {
			idx := (k * i) % d.size
			sumRe += x * d.cos[idx]
			sumIm -= x * d.sin[idx]
		}

		re[k] = sumRe
		im[k] = sumIm
	}

	return nil
}

// Inverse reconstructs the real time-domain signal from a split spectrum.
// The input slices are left untouched.
func (d *DFT) Inverse(re, im, signal []float64) error {
	if err := d.checkLengths(signal, re, im); err != nil {
		return err
	}

	scale := 1 / float64(d.size)
	for i := 0; i < d.size; i++ {
		var sum float64
		for k := 0; k < d.size; k++ {
			idx := (k * i) % d.size
			sum += re[k]*d.cos[idx] - im[k]*d.sin[idx]
		}

		signal[i] = sum * scale
	}

	return nil
}

func (d *DFT) checkLengths(signal, re, im []float64) error {
	if len(signal) != d.size || len(re) != d.size || len(im) != d.size {
		return fmt.Errorf("%w: want %d, got signal=%d re=%d im=%d",
			ErrLengthMismatch, d.size, len(signal), len(re), len(im))
	}

	return nil
}

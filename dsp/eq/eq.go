// Package eq implements a multi-band parametric equalizer built from a
// cascade of biquad sections: a low shelf, any number of peaking bands,
// and a high shelf. Presets can be loaded from YAML.
package eq

import (
	"fmt"

	"github.com/yodel-dsp/yodel/dsp/filter/biquad"
)

// MinBands is the smallest usable band count: one low shelf and one high
// shelf. Constructors round smaller requests up to it.
const MinBands = 2

// Equalizer is a parametric EQ over a fixed sample rate. Band 0 is a low
// shelf, the last band a high shelf, and every band in between a peak
// filter. A fresh Equalizer is transparent; bands become active through
// SetBand.
type Equalizer struct {
	sampleRate float64
	chain      *biquad.Chain
}

// New creates an equalizer with the given number of bands. Fewer than
// MinBands bands are rounded up.
func New(sampleRate float64, bands int) (*Equalizer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("eq: sample rate must be > 0: %v", sampleRate)
	}
	if bands < MinBands {
		bands = MinBands
	}

	coeffs := make([]biquad.Coefficients, bands)
	for i := range coeffs {
		coeffs[i] = biquad.Identity()
	}

	return &Equalizer{
		sampleRate: sampleRate,
		chain:      biquad.NewChain(coeffs),
	}, nil
}

// NumBands returns the number of bands.
func (e *Equalizer) NumBands() int {
	return e.chain.NumSections()
}

// SampleRate returns the sample rate the band designs use.
func (e *Equalizer) SampleRate() float64 {
	return e.sampleRate
}

// SetBand redesigns one band. Band 0 takes center as the shelf corner
// frequency; the last band likewise; interior bands peak at center.
// Processing state is kept, so a live stream can be retuned.
func (e *Equalizer) SetBand(band int, center, resonance, gainDB float64) error {
	n := e.NumBands()
	if band < 0 || band >= n {
		return fmt.Errorf("eq: band %d out of range [0, %d)", band, n)
	}

	var c biquad.Coefficients
	switch {
	case band == 0:
		c = biquad.LowShelf(center, gainDB, resonance, e.sampleRate)
	case band == n-1:
		c = biquad.HighShelf(center, gainDB, resonance, e.sampleRate)
	default:
		c = biquad.Peak(center, gainDB, resonance, e.sampleRate)
	}
	e.chain.Section(band).SetCoefficients(c)

	return nil
}

// ProcessSample filters one sample through all bands.
func (e *Equalizer) ProcessSample(x float64) float64 {
	return e.chain.ProcessSample(x)
}

// Process filters src into dst through all bands. dst == src filters in
// place; both slices must have the same length. Zero-alloc.
func (e *Equalizer) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("eq: buffer length mismatch: dst=%d src=%d", len(dst), len(src))
	}

	e.chain.ProcessBlockTo(dst, src)

	return nil
}

// Reset clears all band states.
func (e *Equalizer) Reset() {
	e.chain.Reset()
}

// Response evaluates the combined complex frequency response at freq (Hz).
func (e *Equalizer) Response(freq float64) complex128 {
	return e.chain.Response(freq, e.sampleRate)
}

// MagnitudeDB returns the combined magnitude response in decibels.
func (e *Equalizer) MagnitudeDB(freq float64) float64 {
	return e.chain.MagnitudeDB(freq, e.sampleRate)
}

package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates the complex frequency response H(e^jw) at freq (Hz).
func (c *Coefficients) Response(freq, sampleRate float64) complex128 {
	w := 2 * math.Pi * freq / sampleRate
	z1 := cmplx.Exp(complex(0, -w))
	z2 := cmplx.Exp(complex(0, -2*w))

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := complex(1, 0) + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed form that avoids
// complex exponentials.
func (c *Coefficients) MagnitudeSquared(freq, sampleRate float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*freq/sampleRate)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw

	return num / den
}

// MagnitudeDB returns the magnitude response in decibels at freq (Hz).
func (c *Coefficients) MagnitudeDB(freq, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freq, sampleRate))
}

// Phase returns the phase response in radians at freq (Hz), in [-pi, pi].
func (c *Coefficients) Phase(freq, sampleRate float64) float64 {
	return cmplx.Phase(c.Response(freq, sampleRate))
}

// Response evaluates the cascade response as the product of the section
// responses, scaled by the chain gain.
func (c *Chain) Response(freq, sampleRate float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freq, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascaded magnitude response in decibels.
func (c *Chain) MagnitudeDB(freq, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freq, sampleRate)))
}

// ImpulseResponse returns n samples of h[n] by running an impulse through
// the section. State is saved and restored, so a running filter is not
// disturbed.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := s.State()
	s.Reset()

	ir := make([]float64, n)
	ir[0] = s.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = s.ProcessSample(0)
	}

	s.SetState(saved)

	return ir
}

// ImpulseResponse returns n samples of the cascade impulse response.
// State is saved and restored.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	saved := c.State()
	c.Reset()

	ir := make([]float64, n)
	ir[0] = c.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = c.ProcessSample(0)
	}

	c.SetState(saved)

	return ir
}

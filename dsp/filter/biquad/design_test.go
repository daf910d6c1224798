package biquad

import (
	"math"
	"testing"
)

const fs = 44100.0

func TestLowpassResponse(t *testing.T) {
	c := Lowpass(1000, 0.7071, fs)

	if db := c.MagnitudeDB(1, fs); math.Abs(db) > 0.01 {
		t.Errorf("DC gain: got %v dB, want 0", db)
	}
	// Butterworth Q puts the cutoff at -3 dB.
	if db := c.MagnitudeDB(1000, fs); math.Abs(db+3.01) > 0.1 {
		t.Errorf("cutoff gain: got %v dB, want about -3", db)
	}
	if db := c.MagnitudeDB(10000, fs); db > -35 {
		t.Errorf("stopband gain: got %v dB, want well below -35", db)
	}
}

func TestHighpassResponse(t *testing.T) {
	c := Highpass(1000, 0.7071, fs)

	if db := c.MagnitudeDB(1, fs); db > -60 {
		t.Errorf("DC gain: got %v dB, want strong rejection", db)
	}
	if db := c.MagnitudeDB(10000, fs); math.Abs(db) > 0.1 {
		t.Errorf("passband gain: got %v dB, want 0", db)
	}
}

func TestBandpassResponse(t *testing.T) {
	c := Bandpass(1000, 2, fs)

	if db := c.MagnitudeDB(1000, fs); math.Abs(db) > 0.01 {
		t.Errorf("center gain: got %v dB, want 0", db)
	}
	if db := c.MagnitudeDB(100, fs); db > -20 {
		t.Errorf("low skirt: got %v dB", db)
	}
	if db := c.MagnitudeDB(10000, fs); db > -20 {
		t.Errorf("high skirt: got %v dB", db)
	}
}

func TestAllpassUnityMagnitude(t *testing.T) {
	c := Allpass(3000, 0.5, fs)
	for _, f := range []float64{10, 100, 1000, 3000, 10000, 20000} {
		if db := c.MagnitudeDB(f, fs); math.Abs(db) > 1e-9 {
			t.Errorf("f=%v: got %v dB, want 0", f, db)
		}
	}
}

func TestNotchNull(t *testing.T) {
	c := Notch(1000, 5, fs)

	if db := c.MagnitudeDB(1000, fs); db > -100 {
		t.Errorf("notch depth: got %v dB", db)
	}
	if db := c.MagnitudeDB(100, fs); math.Abs(db) > 0.5 {
		t.Errorf("far below notch: got %v dB, want about 0", db)
	}
	if db := c.MagnitudeDB(10000, fs); math.Abs(db) > 0.5 {
		t.Errorf("far above notch: got %v dB, want about 0", db)
	}
}

func TestPeakGainAtCenter(t *testing.T) {
	for _, gain := range []float64{-12, -6, 6, 12} {
		c := Peak(2000, gain, 1, fs)
		if db := c.MagnitudeDB(2000, fs); math.Abs(db-gain) > 0.01 {
			t.Errorf("gain=%v: got %v dB at center", gain, db)
		}
		if db := c.MagnitudeDB(20, fs); math.Abs(db) > 0.1 {
			t.Errorf("gain=%v: got %v dB far below center, want 0", gain, db)
		}
	}
}

func TestShelfGains(t *testing.T) {
	lo := LowShelf(500, 6, 0.7071, fs)
	if db := lo.MagnitudeDB(10, fs); math.Abs(db-6) > 0.05 {
		t.Errorf("low shelf at DC: got %v dB, want 6", db)
	}
	if db := lo.MagnitudeDB(15000, fs); math.Abs(db) > 0.1 {
		t.Errorf("low shelf above corner: got %v dB, want 0", db)
	}

	hi := HighShelf(5000, -6, 0.7071, fs)
	if db := hi.MagnitudeDB(10, fs); math.Abs(db) > 0.1 {
		t.Errorf("high shelf at DC: got %v dB, want 0", db)
	}
	if db := hi.MagnitudeDB(20000, fs); math.Abs(db+6) > 0.1 {
		t.Errorf("high shelf above corner: got %v dB, want -6", db)
	}
}

func TestDegenerateInputsYieldIdentity(t *testing.T) {
	cases := []Coefficients{
		Lowpass(0, 1, fs),
		Lowpass(-100, 1, fs),
		Lowpass(fs/2, 1, fs),
		Highpass(1000, 1, 0),
		Peak(1000, 6, 1, -1),
		Custom(1, 0, 0, 0, 0, 0),
	}
	for i, c := range cases {
		if c != Identity() {
			t.Errorf("case %d: got %v, want identity", i, c)
		}
	}
}

func TestCustomNormalization(t *testing.T) {
	c := Custom(2, 4, 6, 2, 1, 0.5)
	want := Coefficients{B0: 1, B1: 2, B2: 3, A1: 0.5, A2: 0.25}
	if c != want {
		t.Fatalf("got %v, want %v", c, want)
	}
}

func TestNonPositiveQFallsBackToButterworth(t *testing.T) {
	if Lowpass(1000, 0, fs) != Lowpass(1000, 1/math.Sqrt2, fs) {
		t.Fatal("q=0 did not fall back to 1/sqrt(2)")
	}
}

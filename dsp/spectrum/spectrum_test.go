package spectrum

import (
	"errors"
	"math"
	"testing"

	"github.com/yodel-dsp/yodel/dsp/core"
)

func TestModulus(t *testing.T) {
	cases := []struct{ re, im, want float64 }{
		{3, 4, 5},
		{1, 0, 1},
		{0, -2, 2},
		{0, 0, 0},
	}
	for _, c := range cases {
		if got := Modulus(c.re, c.im); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("Modulus(%v, %v) = %v, want %v", c.re, c.im, got, c.want)
		}
	}
}

func TestPhaseAngle(t *testing.T) {
	cases := []struct{ re, im, want float64 }{
		{1, 0, 0},
		{0, 1, math.Pi / 2},
		{-1, 0, math.Pi},
		{0, -1, -math.Pi / 2},
	}
	for _, c := range cases {
		if got := PhaseAngle(c.re, c.im); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("PhaseAngle(%v, %v) = %v, want %v", c.re, c.im, got, c.want)
		}
	}
}

func TestMagnitudeAndPower(t *testing.T) {
	re := []float64{3, 0, 1}
	im := []float64{4, 2, 0}
	mag := make([]float64, 3)
	pow := make([]float64, 3)

	if err := Magnitude(mag, re, im); err != nil {
		t.Fatal(err)
	}

	if err := Power(pow, re, im); err != nil {
		t.Fatal(err)
	}

	wantMag := []float64{5, 2, 1}
	for i := range wantMag {
		if math.Abs(mag[i]-wantMag[i]) > 1e-12 {
			t.Errorf("mag[%d] = %v, want %v", i, mag[i], wantMag[i])
		}

		if math.Abs(pow[i]-wantMag[i]*wantMag[i]) > 1e-12 {
			t.Errorf("pow[%d] = %v, want %v", i, pow[i], wantMag[i]*wantMag[i])
		}
	}
}

func TestLengthMismatch(t *testing.T) {
	dst := make([]float64, 2)
	re := make([]float64, 3)
	im := make([]float64, 3)

	if err := Magnitude(dst, re, im); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Magnitude: got %v, want ErrLengthMismatch", err)
	}

	if err := Power(dst, re, im); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Power: got %v, want ErrLengthMismatch", err)
	}

	if err := Phase(dst, re, im); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Phase: got %v, want ErrLengthMismatch", err)
	}
}

func TestMagnitudeDBFloor(t *testing.T) {
	re := []float64{1, 0, 1e-8}
	im := []float64{0, 0, 0}
	dst := make([]float64, 3)

	if err := MagnitudeDB(dst, re, im); err != nil {
		t.Fatal(err)
	}

	if dst[0] != 0 {
		t.Errorf("unity bin: got %v, want 0 dB", dst[0])
	}

	if dst[1] != core.FloorDB {
		t.Errorf("silent bin: got %v, want %v", dst[1], core.FloorDB)
	}

	if dst[2] != core.FloorDB {
		t.Errorf("sub-floor bin: got %v, want %v", dst[2], core.FloorDB)
	}
}

func TestUnwrapPhase(t *testing.T) {
	wrapped := []float64{0, 2, -2.5, 2.8, -2.6}

	out := UnwrapPhase(wrapped)

	for i := 1; i < len(out); i++ {
		d := out[i] - out[i-1]
		if math.Abs(d) > math.Pi {
			t.Errorf("step %d jumps by %v, want <= pi", i, d)
		}
	}

	if UnwrapPhase(nil) != nil {
		t.Error("empty input should yield nil")
	}
}

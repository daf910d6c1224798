package svf

import (
	"math"
	"testing"
)

func TestInactivePassthrough(t *testing.T) {
	f := New()
	input := []float64{1, -0.5, 0.25, 0, 0.75}

	for i, x := range input {
		hp, bp, lp, br := f.ProcessSample(x)
		if hp != x || br != x {
			t.Errorf("sample %d: hp=%v br=%v, want both %v", i, hp, br, x)
		}
		if bp != 0 || lp != 0 {
			t.Errorf("sample %d: bp=%v lp=%v, want both 0", i, bp, lp)
		}
	}
}

func TestResetDeactivates(t *testing.T) {
	f := New()
	f.Set(44100, 1000, 0.7071)
	f.ProcessSample(1)
	f.ProcessSample(-1)
	f.Reset()

	hp, bp, lp, br := f.ProcessSample(0.5)
	if hp != 0.5 || br != 0.5 || bp != 0 || lp != 0 {
		t.Fatalf("after reset: hp=%v bp=%v lp=%v br=%v", hp, bp, lp, br)
	}
}

// rms of a steady sine pushed through one output of the filter, after
// discarding the transient.
func outputRMS(f *Filter, freq, sampleRate float64, pick func(hp, bp, lp, br float64) float64) float64 {
	const n = 8192
	const settle = 2048

	var sum float64
	var count int
	for i := 0; i < n; i++ {
		x := math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
		hp, bp, lp, br := f.ProcessSample(x)
		if i >= settle {
			y := pick(hp, bp, lp, br)
			sum += y * y
			count++
		}
	}

	return math.Sqrt(sum / float64(count))
}

func TestLowpassOutput(t *testing.T) {
	const fs = 44100

	f := New()
	f.Set(fs, 500, 1/math.Sqrt2)
	low := outputRMS(f, 50, fs, func(hp, bp, lp, br float64) float64 { return lp })

	f.Reset()
	f.Set(fs, 500, 1/math.Sqrt2)
	high := outputRMS(f, 5000, fs, func(hp, bp, lp, br float64) float64 { return lp })

	if low < 0.6 {
		t.Errorf("passband rms = %v, want near 0.707", low)
	}
	if high > 0.1*low {
		t.Errorf("stopband rms %v not well below passband rms %v", high, low)
	}
}

func TestHighpassOutput(t *testing.T) {
	const fs = 44100

	f := New()
	f.Set(fs, 2000, 1/math.Sqrt2)
	low := outputRMS(f, 100, fs, func(hp, bp, lp, br float64) float64 { return hp })

	f.Reset()
	f.Set(fs, 2000, 1/math.Sqrt2)
	high := outputRMS(f, 6000, fs, func(hp, bp, lp, br float64) float64 { return hp })

	if high < 0.6 {
		t.Errorf("passband rms = %v, want near 0.707", high)
	}
	if low > 0.1*high {
		t.Errorf("stopband rms %v not well below passband rms %v", low, high)
	}
}

func TestBandRejectNullsCenter(t *testing.T) {
	const fs = 44100
	const fc = 1000

	f := New()
	f.Set(fs, fc, 5)
	center := outputRMS(f, fc, fs, func(hp, bp, lp, br float64) float64 { return br })

	f.Reset()
	f.Set(fs, fc, 5)
	away := outputRMS(f, 100, fs, func(hp, bp, lp, br float64) float64 { return br })

	if center > 0.2*away {
		t.Errorf("center rms %v not rejected relative to %v", center, away)
	}
}

func TestProcessMatchesProcessSample(t *testing.T) {
	const fs = 44100

	a := New()
	a.Set(fs, 1000, 1)
	b := New()
	b.Set(fs, 1000, 1)

	src := make([]float64, 100)
	for i := range src {
		src[i] = math.Sin(0.17 * float64(i))
	}

	hp := make([]float64, len(src))
	bp := make([]float64, len(src))
	lp := make([]float64, len(src))
	br := make([]float64, len(src))
	if err := a.Process(hp, bp, lp, br, src); err != nil {
		t.Fatal(err)
	}

	for i, x := range src {
		h, p, l, r := b.ProcessSample(x)
		if hp[i] != h || bp[i] != p || lp[i] != l || br[i] != r {
			t.Fatalf("sample %d mismatch", i)
		}
	}
}

func TestProcessLengthMismatch(t *testing.T) {
	f := New()
	if err := f.Process(make([]float64, 3), make([]float64, 4), make([]float64, 4), make([]float64, 4), make([]float64, 4)); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestProcessInPlace(t *testing.T) {
	const fs = 44100

	a := New()
	a.Set(fs, 1000, 1)
	b := New()
	b.Set(fs, 1000, 1)

	src := []float64{1, 0.5, -0.25, 0, 0.75, -1}
	want := make([]float64, len(src))
	for i, x := range src {
		_, _, l, _ := b.ProcessSample(x)
		want[i] = l
	}

	buf := make([]float64, len(src))
	copy(buf, src)
	hp := make([]float64, len(src))
	bp := make([]float64, len(src))
	br := make([]float64, len(src))
	if err := a.Process(hp, bp, buf, br, buf); err != nil {
		t.Fatal(err)
	}

	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], want[i])
		}
	}
}

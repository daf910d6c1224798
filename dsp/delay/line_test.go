package delay

import (
	"math"
	"testing"
)

const (
	sampleRate = 48000.0
	blockSize  = 512
	maxDelayMs = 100.0
)

func sineBlock(n, offset int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * 100 * float64(i+offset) / sampleRate)
	}

	return out
}

func newLine(t *testing.T) *Line {
	t.Helper()

	l, err := New(sampleRate, maxDelayMs, 0)
	if err != nil {
		t.Fatal(err)
	}

	return l
}

func TestNewValidation(t *testing.T) {
	if _, err := New(0, maxDelayMs, 0); err == nil {
		t.Error("expected error for zero sample rate")
	}

	if _, err := New(sampleRate, 0, 0); err == nil {
		t.Error("expected error for zero max delay")
	}

	if _, err := New(sampleRate, -5, 0); err == nil {
		t.Error("expected error for negative max delay")
	}
}

func TestBufferIsPowerOfTwo(t *testing.T) {
	l := newLine(t)

	n := l.Len()
	if n&(n-1) != 0 {
		t.Fatalf("buffer length %d is not a power of two", n)
	}

	if float64(n) < maxDelayMs*sampleRate/1000 {
		t.Fatalf("buffer length %d cannot hold the max delay", n)
	}
}

func TestZeroDelayPassthrough(t *testing.T) {
	l := newLine(t)
	l.SetDelay(0)

	in := sineBlock(blockSize, 0)
	out := make([]float64, blockSize)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestIntegerDelay(t *testing.T) {
	l := newLine(t)

	delaySamples := blockSize / 2
	l.SetDelay(float64(delaySamples) * 1000 / sampleRate)

	in := sineBlock(blockSize, 1)
	out := make([]float64, blockSize)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < delaySamples; i++ {
		if math.Abs(out[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want 0", i, out[i])
		}
	}

	for i := delaySamples; i < blockSize; i++ {
		if math.Abs(out[i]-in[i-delaySamples]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i-delaySamples])
		}
	}
}

func TestFractionalDelay(t *testing.T) {
	l := newLine(t)

	const (
		frac         = 0.125
		delaySamples = 23
	)

	l.SetDelay((delaySamples + frac) * 1000 / sampleRate)

	in := sineBlock(blockSize, 1)
	out := make([]float64, blockSize)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < delaySamples-1; i++ {
		if math.Abs(out[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want 0", i, out[i])
		}
	}

	if math.Abs(out[delaySamples-1]-frac*in[0]) > 1e-9 {
		t.Fatalf("edge sample: got %v, want %v", out[delaySamples-1], frac*in[0])
	}

	for i := delaySamples; i < blockSize; i++ {
		want := (1-frac)*in[i-delaySamples] + frac*in[i-delaySamples+1]
		if math.Abs(out[i]-want) > 1e-9 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], want)
		}
	}
}

func TestDelayClampedToMax(t *testing.T) {
	l := newLine(t)
	l.SetDelay(2000) // far beyond maxDelayMs

	if l.Delay() != maxDelayMs {
		t.Fatalf("delay: got %v, want %v", l.Delay(), maxDelayMs)
	}

	maxSamples := int(maxDelayMs * sampleRate / 1000)
	n := maxSamples + 2

	in := sineBlock(n, 0)
	out := make([]float64, n)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < maxSamples; i++ {
		if math.Abs(out[i]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want 0", i, out[i])
		}
	}

	for i := maxSamples; i < n; i++ {
		if math.Abs(out[i]-in[i-maxSamples]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i-maxSamples])
		}
	}
}

func TestNegativeDelayClampedToZero(t *testing.T) {
	l := newLine(t)
	l.SetDelay(-123)

	if l.Delay() != 0 {
		t.Fatalf("delay: got %v, want 0", l.Delay())
	}

	in := sineBlock(blockSize, 0)
	out := make([]float64, blockSize)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	for i := range in {
		if out[i] != in[i] {
			t.Fatalf("sample %d: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestClearDropsHistory(t *testing.T) {
	l := newLine(t)
	l.SetDelay(float64(blockSize/2) * 1000 / sampleRate)

	in := sineBlock(blockSize, 1)
	out := make([]float64, blockSize)

	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	l.Clear()

	zeros := make([]float64, blockSize)
	if err := l.Process(out, zeros); err != nil {
		t.Fatal(err)
	}

	for i := range out {
		if out[i] != 0 {
			t.Fatalf("sample %d after clear: got %v, want 0", i, out[i])
		}
	}
}

func TestResetRestoresInitialDelay(t *testing.T) {
	l, err := New(sampleRate, maxDelayMs, 5)
	if err != nil {
		t.Fatal(err)
	}

	l.SetDelay(20)
	if l.Delay() != 20 {
		t.Fatalf("delay before reset: got %v, want 20", l.Delay())
	}

	in := sineBlock(blockSize, 0)
	out := make([]float64, blockSize)
	if err := l.Process(out, in); err != nil {
		t.Fatal(err)
	}

	l.Reset()

	if l.Delay() != 5 {
		t.Fatalf("delay after reset: got %v, want initial 5", l.Delay())
	}

	zeros := make([]float64, blockSize)
	if err := l.Process(out, zeros); err != nil {
		t.Fatal(err)
	}

	for i := range out {
		if out[i] != 0 {
			t.Fatalf("sample %d after reset: got %v, want 0", i, out[i])
		}
	}
}

func TestInPlaceProcess(t *testing.T) {
	l := newLine(t)

	delaySamples := 16
	l.SetDelay(float64(delaySamples) * 1000 / sampleRate)

	buf := sineBlock(blockSize, 1)
	ref := append([]float64(nil), buf...)

	if err := l.Process(buf, buf); err != nil {
		t.Fatal(err)
	}

	for i := delaySamples; i < blockSize; i++ {
		if math.Abs(buf[i]-ref[i-delaySamples]) > 1e-12 {
			t.Fatalf("sample %d: got %v, want %v", i, buf[i], ref[i-delaySamples])
		}
	}
}

func TestProcessLengthMismatch(t *testing.T) {
	l := newLine(t)

	if err := l.Process(make([]float64, 4), make([]float64, 8)); err == nil {
		t.Error("expected error for mismatched buffer lengths")
	}
}

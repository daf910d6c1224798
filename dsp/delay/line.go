// Package delay provides a time-varying fractional delay line.
package delay

import (
	"fmt"
	"math"

	"github.com/yodel-dsp/yodel/dsp/core"
)

// Line is a circular delay line addressed in milliseconds. The delay can be
// changed between samples; reads interpolate linearly between the two
// bracketing samples, and the read position is re-anchored after every
// sample so delay changes glide instead of clicking.
type Line struct {
	sampleRate float64
	maxDelayMs float64

	buffer []float64
	mask   int

	writePos int
	readPos  float64

	delayMs      float64
	delaySamples float64

	initialDelayMs float64
}

// New returns a delay line for the given sample rate with capacity for
// maxDelayMs of signal, starting at delayMs (clamped to [0, maxDelayMs]).
func New(sampleRate, maxDelayMs, delayMs float64) (*Line, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("delay: sample rate must be > 0: %v", sampleRate)
	}
	if maxDelayMs <= 0 {
		return nil, fmt.Errorf("delay: max delay must be > 0 ms: %v", maxDelayMs)
	}

	maxSamples := maxDelayMs * sampleRate / 1000
	length := core.NextPowerOfTwo(int(math.Ceil(maxSamples)))

	l := &Line{
		sampleRate: sampleRate,
		maxDelayMs: maxDelayMs,
		buffer:     make([]float64, length),
		mask:       length - 1,
	}
	l.SetDelay(delayMs)
	l.initialDelayMs = l.delayMs

	return l, nil
}

// Len returns the internal buffer size in samples.
func (l *Line) Len() int {
	return len(l.buffer)
}

// Delay returns the current delay in milliseconds.
func (l *Line) Delay() float64 {
	return l.delayMs
}

// MaxDelay returns the configured maximum delay in milliseconds.
func (l *Line) MaxDelay() float64 {
	return l.maxDelayMs
}

// SetDelay changes the delay time in milliseconds, clamped to
// [0, MaxDelay]. The change takes effect on the next processed sample.
func (l *Line) SetDelay(delayMs float64) {
	l.delayMs = core.Clamp(delayMs, 0, l.maxDelayMs)
	l.delaySamples = l.delayMs * l.sampleRate / 1000

	whole := math.Floor(l.delaySamples)
	frac := l.delaySamples - whole

	length := len(l.buffer)
	l.readPos = float64((l.writePos+length-int(whole))&l.mask) + frac
}

// ProcessSample delays one input sample by the current delay amount.
func (l *Line) ProcessSample(x float64) float64 {
	l.buffer[l.writePos] = x
	l.writePos = (l.writePos + 1) & l.mask

	prev := int(math.Floor(l.readPos))
	next := (prev + 1) & l.mask
	frac := l.readPos - float64(prev)

	out := (1-frac)*l.buffer[prev] + frac*l.buffer[next]

	// Re-anchor one sample ahead, keeping the fractional part. This is what
	// makes a changed delay glide over subsequent samples.
	l.readPos = float64((prev+1)&l.mask) + frac

	return out
}

// Process delays a block of samples. dst and src must have the same length;
// dst == src performs the delay in place.
func (l *Line) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("delay: buffer length mismatch: dst=%d src=%d", len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = l.ProcessSample(x)
	}

	return nil
}

// Clear zeroes the stored samples. The current delay, write and read
// positions are kept.
func (l *Line) Clear() {
	for i := range l.buffer {
		l.buffer[i] = 0
	}
}

// Reset clears the stored samples, rewinds the write position and restores
// the delay the line was constructed with.
func (l *Line) Reset() {
	l.Clear()
	l.writePos = 0
	l.SetDelay(l.initialDelayMs)
}

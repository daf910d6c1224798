// Package comb implements feedforward, feedback, and allpass comb filters
// with an integer sample delay derived from a delay time in milliseconds.
//
// With delay M samples and gain g the three transfer functions are
//
//	feedforward: y[n] = x[n] + g*x[n-M]     |H| between 1-g and 1+g
//	feedback:    y[n] = x[n] + g*y[n-M]     peaks 1/(1-g), dips 1/(1+g)
//	allpass:     y[n] = -g*x[n] + x[n-M] + g*y[n-M]   |H| = 1
//
// The teeth repeat every 1000/delayMs Hz.
package comb

import (
	"fmt"
	"math"
)

// Mode selects the comb topology.
type Mode int

const (
	ModeFeedforward Mode = iota
	ModeFeedback
	ModeAllpass
)

func (m Mode) String() string {
	switch m {
	case ModeFeedforward:
		return "feedforward"
	case ModeFeedback:
		return "feedback"
	case ModeAllpass:
		return "allpass"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// feedback gains at or beyond unity are unstable; clamp just inside.
const maxFeedbackGain = 1 - 1e-9

// Filter is a comb filter. The delay buffers are sized for the delay given
// at construction; the mode setters may shorten the effective delay but
// not exceed it.
type Filter struct {
	sampleRate float64
	mode       Mode
	gain       float64

	maxDelay int
	delay    int
	xbuf     []float64
	ybuf     []float64
	pos      int
}

// New creates a feedforward comb with the given delay (ms) and gain.
// The delay fixes the buffer capacity; it must yield at least one sample.
func New(sampleRate, delayMs, gain float64) (*Filter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("comb: sample rate must be > 0: %v", sampleRate)
	}

	m := delayToSamples(sampleRate, delayMs)
	if m < 1 {
		return nil, fmt.Errorf("comb: delay %v ms is under one sample at %v Hz", delayMs, sampleRate)
	}

	f := &Filter{
		sampleRate: sampleRate,
		maxDelay:   m,
		xbuf:       make([]float64, m),
		ybuf:       make([]float64, m),
	}
	f.Feedforward(delayMs, gain)

	return f, nil
}

func delayToSamples(sampleRate, delayMs float64) int {
	return int(delayMs * sampleRate / 1000)
}

// Feedforward switches to y[n] = x[n] + g*x[n-M].
func (f *Filter) Feedforward(delayMs, gain float64) {
	f.set(ModeFeedforward, delayMs, gain)
}

// Feedback switches to y[n] = x[n] + g*y[n-M]. The gain is clamped inside
// (-1, 1) to keep the recursion stable.
func (f *Filter) Feedback(delayMs, gain float64) {
	gain = math.Max(-maxFeedbackGain, math.Min(maxFeedbackGain, gain))
	f.set(ModeFeedback, delayMs, gain)
}

// Allpass switches to y[n] = -g*x[n] + x[n-M] + g*y[n-M], which has unit
// magnitude at every frequency. The gain is clamped inside (-1, 1).
func (f *Filter) Allpass(delayMs, gain float64) {
	gain = math.Max(-maxFeedbackGain, math.Min(maxFeedbackGain, gain))
	f.set(ModeAllpass, delayMs, gain)
}

func (f *Filter) set(mode Mode, delayMs, gain float64) {
	m := delayToSamples(f.sampleRate, delayMs)
	if m < 1 {
		m = 1
	}
	if m > f.maxDelay {
		m = f.maxDelay
	}

	f.mode = mode
	f.gain = gain
	f.delay = m
	f.Reset()
}

// Reset clears the delay history without changing mode, delay, or gain.
func (f *Filter) Reset() {
	for i := range f.xbuf {
		f.xbuf[i] = 0
	}
	for i := range f.ybuf {
		f.ybuf[i] = 0
	}
	f.pos = 0
}

// Mode returns the current topology.
func (f *Filter) Mode() Mode { return f.mode }

// Gain returns the current gain, after any stability clamping.
func (f *Filter) Gain() float64 { return f.gain }

// Delay returns the current delay in samples.
func (f *Filter) Delay() int { return f.delay }

// ProcessSample filters one sample.
func (f *Filter) ProcessSample(x float64) float64 {
	i := f.pos
	xd := f.xbuf[i]
	yd := f.ybuf[i]

	var y float64
	switch f.mode {
	case ModeFeedback:
		y = x + f.gain*yd
	case ModeAllpass:
		y = -f.gain*x + xd + f.gain*yd
	default:
		y = x + f.gain*xd
	}

	f.xbuf[i] = x
	f.ybuf[i] = y
	f.pos++
	if f.pos >= f.delay {
		f.pos = 0
	}

	return y
}

// Process filters src into dst. dst == src filters in place; both slices
// must have the same length. Zero-alloc.
func (f *Filter) Process(dst, src []float64) error {
	if len(dst) != len(src) {
		return fmt.Errorf("comb: buffer length mismatch: dst=%d src=%d", len(dst), len(src))
	}

	for i, x := range src {
		dst[i] = f.ProcessSample(x)
	}

	return nil
}

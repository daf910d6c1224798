package fir

import (
	"fmt"
	"math"
)

// WindowedSinc designs Blackman-windowed sinc kernels and runs them over
// fixed-size frames through a BlockConvolver. The construction follows
// Smith, "The Scientist and Engineer's Guide to DSP", ch. 16: the kernel
// has M+1 taps with M = 4/(bw/fs) rounded down to even, so a narrower
// transition band costs a longer kernel.
//
// A fresh WindowedSinc is an identity filter.
type WindowedSinc struct {
	sampleRate float64
	frameSize  int

	kernel []float64
	conv   *BlockConvolver
}

// NewWindowedSinc creates an identity filter at the given sample rate
// and frame size.
func NewWindowedSinc(sampleRate float64, frameSize int) (*WindowedSinc, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("fir: sample rate must be > 0: %v", sampleRate)
	}

	conv, err := NewBlockConvolver(frameSize, []float64{1})
	if err != nil {
		return nil, err
	}

	return &WindowedSinc{
		sampleRate: sampleRate,
		frameSize:  frameSize,
		kernel:     []float64{1},
		conv:       conv,
	}, nil
}

// kernelOrder converts a transition bandwidth (Hz) to the kernel order M,
// rounded down to even so the kernel has an exact center tap.
func (w *WindowedSinc) kernelOrder(bandwidth float64) int {
	m := int(4 / (bandwidth / w.sampleRate))
	if m < 2 {
		m = 2
	}
	if m%2 != 0 {
		m--
	}

	return m
}

// lowpassKernel builds a normalized Blackman-windowed sinc kernel with
// cutoff fc (Hz) and M+1 taps. The taps sum to 1, which puts the center
// tap near 2*fc/fs.
func (w *WindowedSinc) lowpassKernel(fc float64, m int) []float64 {
	fcNorm := fc / w.sampleRate
	kernel := make([]float64, m+1)
	half := m / 2

	var sum float64
	for i := range kernel {
		k := float64(i - half)

		var v float64
		if i == half {
			v = 2 * math.Pi * fcNorm
		} else {
			v = math.Sin(2*math.Pi*fcNorm*k) / k
		}
		v *= 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(m)) +
			0.08*math.Cos(4*math.Pi*float64(i)/float64(m))

		kernel[i] = v
		sum += v
	}

	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}

// invert flips a linear-phase kernel's spectrum: the result's response is
// 1 minus the input's.
func invert(kernel []float64) {
	for i := range kernel {
		kernel[i] = -kernel[i]
	}
	kernel[len(kernel)/2] += 1
}

// Lowpass designs a lowpass kernel with cutoff and transition bandwidth
// in Hz.
func (w *WindowedSinc) Lowpass(cutoff, bandwidth float64) error {
	w.kernel = w.lowpassKernel(cutoff, w.kernelOrder(bandwidth))

	return w.conv.SetKernel(w.kernel)
}

// Highpass designs a highpass kernel by spectral inversion of the
// matching lowpass.
func (w *WindowedSinc) Highpass(cutoff, bandwidth float64) error {
	w.kernel = w.lowpassKernel(cutoff, w.kernelOrder(bandwidth))
	invert(w.kernel)

	return w.conv.SetKernel(w.kernel)
}

// bandrejectKernel sums a lowpass at center-width/2 and a highpass at
// center+width/2, both sized from the full width.
func (w *WindowedSinc) bandrejectKernel(center, width float64) []float64 {
	m := w.kernelOrder(width)

	low := w.lowpassKernel(center-width/2, m)
	high := w.lowpassKernel(center+width/2, m)
	invert(high)

	for i := range low {
		low[i] += high[i]
	}

	return low
}

// Bandreject designs a band-reject kernel as the sum of a lowpass at
// center-width/2 and a highpass at center+width/2.
func (w *WindowedSinc) Bandreject(center, width float64) error {
	w.kernel = w.bandrejectKernel(center, width)

	return w.conv.SetKernel(w.kernel)
}

// Bandpass designs a bandpass kernel by spectral inversion of the
// matching band-reject.
func (w *WindowedSinc) Bandpass(center, width float64) error {
	w.kernel = w.bandrejectKernel(center, width)
	invert(w.kernel)

	return w.conv.SetKernel(w.kernel)
}

// Kernel returns the current impulse response. The slice is owned by the
// filter; callers must not modify it.
func (w *WindowedSinc) Kernel() []float64 {
	return w.kernel
}

// FrameSize returns the fixed frame length.
func (w *WindowedSinc) FrameSize() int {
	return w.frameSize
}

// Reset drops convolution history without touching the kernel.
func (w *WindowedSinc) Reset() {
	w.conv.Reset()
}

// Process filters one frame of src into dst. Both must be FrameSize()
// long; dst == src works in place.
func (w *WindowedSinc) Process(dst, src []float64) error {
	return w.conv.Process(dst, src)
}

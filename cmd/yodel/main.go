// Command yodel prints frequency responses of the library's filters and
// properties of its analysis windows.
//
// Usage:
//
//	yodel -mode biquad -type lowpass -freq 1000 -q 0.7071
//	yodel -mode sinc -type bandpass -freq 12000 -width 400
//	yodel -mode comb -type feedback -delay 0.25 -gain 0.5
//	yodel -mode eq -preset warm.yaml
//	yodel -mode window
//
// Responses are printed as a frequency/magnitude table on a log spaced
// grid up to Nyquist.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/yodel-dsp/yodel/dsp/eq"
	"github.com/yodel-dsp/yodel/dsp/filter/biquad"
	"github.com/yodel-dsp/yodel/dsp/filter/comb"
	"github.com/yodel-dsp/yodel/dsp/filter/fir"
	"github.com/yodel-dsp/yodel/dsp/window"
)

func main() {
	mode := flag.String("mode", "biquad", "what to inspect: biquad, sinc, comb, eq, window")
	typ := flag.String("type", "lowpass", "filter type within the mode")
	rate := flag.Float64("rate", 48000, "sample rate in Hz")
	freq := flag.Float64("freq", 1000, "cutoff or center frequency in Hz")
	q := flag.Float64("q", 1/math.Sqrt2, "resonance (biquad)")
	gain := flag.Float64("gain", 0, "gain in dB (peak/shelf) or linear comb gain")
	width := flag.Float64("width", 400, "bandwidth in Hz (sinc)")
	delay := flag.Float64("delay", 1, "comb delay in ms")
	points := flag.Int("points", 32, "number of response points")
	size := flag.Int("size", 1024, "window length in samples")
	preset := flag.String("preset", "", "YAML preset file (eq)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: yodel [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints filter frequency responses and window properties.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  yodel -mode biquad -type peak -freq 1000 -q 2 -gain 6\n")
		fmt.Fprintf(os.Stderr, "  yodel -mode sinc -type highpass -freq 4000 -width 384\n")
		fmt.Fprintf(os.Stderr, "  yodel -mode comb -type allpass -delay 0.25 -gain 0.5\n")
		fmt.Fprintf(os.Stderr, "  yodel -mode eq -preset warm.yaml\n")
		fmt.Fprintf(os.Stderr, "  yodel -mode window -size 4096\n")
	}
	flag.Parse()

	var err error
	switch *mode {
	case "biquad":
		err = runBiquad(*typ, *freq, *q, *gain, *rate, *points)
	case "sinc":
		err = runSinc(*typ, *freq, *width, *rate, *points)
	case "comb":
		err = runComb(*typ, *delay, *gain, *rate, *points)
	case "eq":
		err = runEQ(*preset, *rate, *points)
	case "window":
		err = runWindow(*size)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// responseGrid returns n log spaced frequencies from 10 Hz up to just
// under Nyquist.
func responseGrid(sampleRate float64, n int) []float64 {
	if n < 2 {
		n = 2
	}

	lo := math.Log10(10)
	hi := math.Log10(sampleRate / 2 * 0.99)

	grid := make([]float64, n)
	for i := range grid {
		grid[i] = math.Pow(10, lo+(hi-lo)*float64(i)/float64(n-1))
	}

	return grid
}

func printResponse(title string, sampleRate float64, n int, magDB func(freq float64) float64) error {
	fmt.Println(title)

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tMagnitude [dB]\n")
	fmt.Fprintf(tw, "---------\t--------------\n")
	for _, f := range responseGrid(sampleRate, n) {
		fmt.Fprintf(tw, "%.1f\t%+.3f\n", f, magDB(f))
	}

	return tw.Flush()
}

func runBiquad(typ string, freq, q, gainDB, rate float64, points int) error {
	var c biquad.Coefficients
	switch typ {
	case "lowpass":
		c = biquad.Lowpass(freq, q, rate)
	case "highpass":
		c = biquad.Highpass(freq, q, rate)
	case "bandpass":
		c = biquad.Bandpass(freq, q, rate)
	case "allpass":
		c = biquad.Allpass(freq, q, rate)
	case "notch":
		c = biquad.Notch(freq, q, rate)
	case "peak":
		c = biquad.Peak(freq, gainDB, q, rate)
	case "lowshelf":
		c = biquad.LowShelf(freq, gainDB, q, rate)
	case "highshelf":
		c = biquad.HighShelf(freq, gainDB, q, rate)
	default:
		return fmt.Errorf("unknown biquad type %q", typ)
	}

	title := fmt.Sprintf("biquad %s  fc=%g Hz  q=%g  gain=%g dB  fs=%g Hz", typ, freq, q, gainDB, rate)

	return printResponse(title, rate, points, func(f float64) float64 {
		return c.MagnitudeDB(f, rate)
	})
}

func runSinc(typ string, freq, width, rate float64, points int) error {
	w, err := fir.NewWindowedSinc(rate, 512)
	if err != nil {
		return err
	}

	switch typ {
	case "lowpass":
		err = w.Lowpass(freq, width)
	case "highpass":
		err = w.Highpass(freq, width)
	case "bandpass":
		err = w.Bandpass(freq, width)
	case "bandreject":
		err = w.Bandreject(freq, width)
	default:
		return fmt.Errorf("unknown sinc type %q", typ)
	}
	if err != nil {
		return err
	}

	d, err := fir.NewDirect(w.Kernel())
	if err != nil {
		return err
	}

	title := fmt.Sprintf("windowed sinc %s  fc=%g Hz  bw=%g Hz  %d taps  fs=%g Hz",
		typ, freq, width, d.Order()+1, rate)

	return printResponse(title, rate, points, func(f float64) float64 {
		return d.MagnitudeDB(f, rate)
	})
}

func runComb(typ string, delayMs, gain, rate float64, points int) error {
	f, err := comb.New(rate, delayMs, gain)
	if err != nil {
		return err
	}

	switch typ {
	case "feedforward":
		f.Feedforward(delayMs, gain)
	case "feedback":
		f.Feedback(delayMs, gain)
	case "allpass":
		f.Allpass(delayMs, gain)
	default:
		return fmt.Errorf("unknown comb type %q", typ)
	}

	// Magnitude from a long truncated impulse response.
	d, err := fir.NewDirect(impulseResponse(f, 8192))
	if err != nil {
		return err
	}

	title := fmt.Sprintf("comb %s  delay=%g ms (%d samples)  gain=%g  fs=%g Hz",
		typ, delayMs, f.Delay(), f.Gain(), rate)

	return printResponse(title, rate, points, func(freq float64) float64 {
		return d.MagnitudeDB(freq, rate)
	})
}

func impulseResponse(f *comb.Filter, n int) []float64 {
	ir := make([]float64, n)
	ir[0] = f.ProcessSample(1)
	for i := 1; i < n; i++ {
		ir[i] = f.ProcessSample(0)
	}

	return ir
}

func runEQ(preset string, rate float64, points int) error {
	if preset == "" {
		return fmt.Errorf("eq mode needs -preset")
	}

	p, err := eq.LoadPreset(preset)
	if err != nil {
		return err
	}

	e, err := eq.NewFromPreset(rate, p)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("eq %q  %d bands  fs=%g Hz", p.Name, e.NumBands(), rate)

	return printResponse(title, rate, points, e.MagnitudeDB)
}

func runWindow(size int) error {
	types := []window.Type{
		window.TypeRectangular,
		window.TypeHann,
		window.TypeHamming,
		window.TypeBlackman,
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\n")

	for _, t := range types {
		coeffs := window.Generate(t, size)

		cg, err := window.CoherentGain(coeffs)
		if err != nil {
			return err
		}
		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\n", t, size, cg, enbw)
	}

	return tw.Flush()
}

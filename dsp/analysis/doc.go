// Package analysis provides Fourier transforms over split real/imaginary
// spectra.
//
// Transforms operate on full-length slices: an N-point real signal maps to an
// N-point conjugate-symmetric spectrum held in separate real and imaginary
// slices. The forward transform is unnormalized (a unit impulse yields an
// all-ones real spectrum); the inverse divides by N.
//
// [FFT] is the production transform, backed by algo-fft plans and restricted
// to power-of-two sizes. [DFT] is a naive O(N^2) reference for any size,
// useful for validating results at small lengths.
package analysis

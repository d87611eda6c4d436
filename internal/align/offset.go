package align

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"clipsync/internal/services"
	"clipsync/internal/wave"
)

// stddevFloor keeps normalization finite on silent or constant signals.
const stddevFloor = 1e-9

// Offset is the signed time shift that best aligns an external source to the
// reference. Positive means the external begins later than the reference.
type Offset struct {
	Seconds float64
	// Confidence is the ratio of the winning correlation peak to the
	// strongest peak outside its immediate neighborhood. Values near 1
	// mean the winner was barely distinguishable from the runner-up.
	Confidence float64
}

// EstimateOffset computes the best-fit offset of external against reference
// via normalized full cross-correlation. Both waveforms must share the
// analysis sample rate.
func EstimateOffset(reference, external wave.Waveform) (Offset, error) {
	if reference.Rate != external.Rate {
		return Offset{}, services.Wrap(services.ErrRateMismatch, "estimating", "compare waveforms",
			fmt.Sprintf("reference %d Hz, external %d Hz", reference.Rate, external.Rate), nil)
	}
	if reference.Len() == 0 || external.Len() == 0 {
		return Offset{}, services.Wrap(services.ErrValidation, "estimating", "compare waveforms", "empty waveform", nil)
	}

	ref := normalized(reference.Samples)
	ext := normalized(external.Samples)

	corr := crossCorrelate(ref, ext)

	// Global maximum; ties resolve to the lowest-index lag so the result
	// is deterministic for any input.
	bestIdx := 0
	for i := 1; i < len(corr); i++ {
		if corr[i] > corr[bestIdx] {
			bestIdx = i
		}
	}

	bestLag := bestIdx - (len(ext) - 1)
	confidence := peakRatio(corr, bestIdx, exclusionRadius(reference.Rate))

	return Offset{
		Seconds:    -float64(bestLag) / float64(reference.Rate),
		Confidence: confidence,
	}, nil
}

// crossCorrelate returns the full linear cross-correlation of ref against
// ext: len(ref)+len(ext)-1 values covering lags -(len(ext)-1) through
// +(len(ref)-1), in that order. Computed circularly over a padded
// power-of-two window large enough to avoid wraparound.
func crossCorrelate(ref, ext []float64) []float64 {
	n1 := len(ref)
	n2 := len(ext)
	size := nextPow2(n1 + n2 - 1)

	refPad := make([]float64, size)
	extPad := make([]float64, size)
	copy(refPad, ref)
	copy(extPad, ext)

	fft := fourier.NewFFT(size)
	refCoeff := fft.Coefficients(nil, refPad)
	extCoeff := fft.Coefficients(nil, extPad)

	prod := make([]complex128, len(refCoeff))
	for i := range prod {
		prod[i] = refCoeff[i] * cmplx.Conj(extCoeff[i])
	}

	// Sequence is unnormalized: scale by the window size.
	circular := fft.Sequence(nil, prod)
	scale := 1 / float64(size)

	full := make([]float64, n1+n2-1)
	for i := range full {
		lag := i - (n2 - 1)
		idx := lag
		if idx < 0 {
			idx += size
		}
		full[i] = circular[idx] * scale
	}
	return full
}

// peakRatio compares the winning peak against the strongest correlation value
// outside an exclusion window around it. A genuine alignment produces one
// sharp peak; matching noise produces many of comparable height.
func peakRatio(corr []float64, bestIdx, radius int) float64 {
	peak := corr[bestIdx]
	if peak <= 0 {
		return 0
	}

	second := 0.0
	found := false
	for i, value := range corr {
		if abs(i-bestIdx) <= radius {
			continue
		}
		if !found || value > second {
			second = value
			found = true
		}
	}
	if !found || second <= 0 {
		return math.Inf(1)
	}
	return peak / second
}

// exclusionRadius is 100 ms worth of lags: wide enough to skip the winning
// peak's own slopes, narrow enough to keep genuine echoes in play.
func exclusionRadius(rate int) int {
	radius := rate / 10
	if radius < 1 {
		radius = 1
	}
	return radius
}

// normalized returns samples with mean removed and unit variance, with a
// floored divisor so silence does not divide by zero.
func normalized(samples []float64) []float64 {
	mean := 0.0
	for _, s := range samples {
		mean += s
	}
	mean /= float64(len(samples))

	variance := 0.0
	for _, s := range samples {
		d := s - mean
		variance += d * d
	}
	std := math.Sqrt(variance/float64(len(samples))) + stddevFloor

	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = (s - mean) / std
	}
	return out
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

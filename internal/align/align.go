package align

import (
	"math"

	"clipsync/internal/wave"
)

// AlignTrack shifts external into alignment with a reference of refLen
// samples and returns a waveform of exactly refLen samples. Regions the
// external does not cover stay zero-filled (silence).
func AlignTrack(refLen int, external wave.Waveform, offsetSeconds float64) wave.Waveform {
	out := wave.Waveform{Samples: make([]float64, refLen), Rate: external.Rate}
	if refLen == 0 {
		return out
	}

	if offsetSeconds >= 0 {
		// External starts later: silence for the first pad samples, then
		// the external from its beginning, truncated to fit.
		pad := int(math.Round(offsetSeconds * float64(external.Rate)))
		if pad >= refLen {
			return out
		}
		copy(out.Samples[pad:], external.Samples)
		return out
	}

	// External starts earlier: drop its leading samples, then copy the
	// remainder from the start of the output.
	lead := int(math.Round(-offsetSeconds * float64(external.Rate)))
	if lead >= external.Len() {
		return out
	}
	copy(out.Samples, external.Samples[lead:])
	return out
}

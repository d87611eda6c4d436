package wave

import "time"

// Waveform is a single-channel sequence of samples at a known rate.
type Waveform struct {
	Samples []float64
	Rate    int
}

// Len returns the number of samples.
func (w Waveform) Len() int {
	return len(w.Samples)
}

// Duration returns the waveform length as wall time.
func (w Waveform) Duration() time.Duration {
	if w.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.Rate) * float64(time.Second))
}

// downmix averages interleaved frames into a single channel.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		sum := 0.0
		for ch := 0; ch < channels; ch++ {
			sum += interleaved[i*channels+ch]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// Package align estimates the time offset between a reference waveform and an
// externally recorded waveform, and materializes the external shifted into
// reference-length alignment.
//
// Offset estimation is full (non-circular) cross-correlation computed through
// the FFT: the two signals are not periodic and may differ wildly in length,
// and tens of minutes of 48 kHz audio is intractable to correlate directly.
// The global correlation maximum is selected with a deterministic lowest-lag
// tie-break, and the result carries a peak-to-runner-up ratio so callers can
// reject implausible alignments.
//
// Alignment is integer sample-accurate shifting only: zero-pad the head when
// the external starts late, trim the head when it starts early, zero-fill
// whatever the external does not cover. No resampling or interpolation.
package align

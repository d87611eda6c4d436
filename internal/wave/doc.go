// Package wave holds the in-memory waveform representation the alignment
// stages operate on, plus the PCM WAV reader/writer used for scratch files
// exchanged with the external transcoder.
//
// Only 16-bit PCM is supported: the decode layer always requests pcm_s16le
// output, and aligned tracks are written back in the same format for muxing.
// Multi-channel input is downmixed by averaging channels so every Waveform
// entering a comparison is single-channel.
package wave

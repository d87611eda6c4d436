package align_test

import (
	"testing"

	"clipsync/internal/align"
	"clipsync/internal/wave"
)

func ramp(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

func TestAlignTrackAlwaysReferenceLength(t *testing.T) {
	cases := []struct {
		name    string
		refLen  int
		extLen  int
		offset  float64
	}{
		{"external shorter", 1000, 400, 0.01},
		{"external longer", 1000, 5000, 0.01},
		{"equal lengths", 1000, 1000, -0.02},
		{"offset beyond reference", 1000, 1000, 100.0},
		{"lead beyond external", 1000, 1000, -100.0},
		{"zero reference", 0, 100, 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext := wave.Waveform{Samples: ramp(tc.extLen), Rate: testRate}
			got := align.AlignTrack(tc.refLen, ext, tc.offset)
			if got.Len() != tc.refLen {
				t.Fatalf("length = %d, want %d", got.Len(), tc.refLen)
			}
		})
	}
}

func TestAlignTrackZeroOffsetIsIdentityTruncated(t *testing.T) {
	ext := wave.Waveform{Samples: ramp(500), Rate: testRate}

	got := align.AlignTrack(300, ext, 0)
	for i := 0; i < 300; i++ {
		if got.Samples[i] != ext.Samples[i] {
			t.Fatalf("sample %d = %f, want %f", i, got.Samples[i], ext.Samples[i])
		}
	}

	padded := align.AlignTrack(800, ext, 0)
	for i := 0; i < 500; i++ {
		if padded.Samples[i] != ext.Samples[i] {
			t.Fatalf("sample %d = %f, want %f", i, padded.Samples[i], ext.Samples[i])
		}
	}
	for i := 500; i < 800; i++ {
		if padded.Samples[i] != 0 {
			t.Fatalf("sample %d = %f, want trailing silence", i, padded.Samples[i])
		}
	}
}

func TestAlignTrackPositiveOffsetPadsHead(t *testing.T) {
	ext := wave.Waveform{Samples: ramp(100), Rate: testRate}
	// 10 samples of delay at the test rate.
	offset := 10.0 / testRate

	got := align.AlignTrack(200, ext, offset)
	for i := 0; i < 10; i++ {
		if got.Samples[i] != 0 {
			t.Fatalf("sample %d = %f, want leading silence", i, got.Samples[i])
		}
	}
	for i := 0; i < 100; i++ {
		if got.Samples[10+i] != ext.Samples[i] {
			t.Fatalf("sample %d = %f, want %f", 10+i, got.Samples[10+i], ext.Samples[i])
		}
	}
}

func TestAlignTrackNegativeOffsetTrimsHead(t *testing.T) {
	ext := wave.Waveform{Samples: ramp(100), Rate: testRate}
	offset := -25.0 / testRate

	got := align.AlignTrack(50, ext, offset)
	for i := 0; i < 50; i++ {
		if got.Samples[i] != ext.Samples[25+i] {
			t.Fatalf("sample %d = %f, want %f", i, got.Samples[i], ext.Samples[25+i])
		}
	}
}

func TestAlignTrackFullyOutOfRangeIsSilence(t *testing.T) {
	ext := wave.Waveform{Samples: ramp(100), Rate: testRate}

	late := align.AlignTrack(100, ext, 1.0) // pad = testRate >= refLen
	for i, s := range late.Samples {
		if s != 0 {
			t.Fatalf("late sample %d = %f, want 0", i, s)
		}
	}

	early := align.AlignTrack(100, ext, -1.0) // lead = testRate >= len(ext)
	for i, s := range early.Samples {
		if s != 0 {
			t.Fatalf("early sample %d = %f, want 0", i, s)
		}
	}
}

func TestAlignTrackRoundsOffsetToNearestSample(t *testing.T) {
	ext := wave.Waveform{Samples: ramp(10), Rate: testRate}
	// 2.6 samples of delay rounds to 3.
	offset := 2.6 / testRate

	got := align.AlignTrack(20, ext, offset)
	if got.Samples[2] != 0 {
		t.Fatalf("sample 2 = %f, want silence before rounded pad", got.Samples[2])
	}
	if got.Samples[3] != ext.Samples[0] {
		t.Fatalf("sample 3 = %f, want first external sample", got.Samples[3])
	}
}

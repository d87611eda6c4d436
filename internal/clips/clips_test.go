package clips_test

import (
	"testing"

	"clipsync/internal/clips"
	"clipsync/internal/config"
)

func testRules() clips.Rules {
	cfg := config.Default()
	return clips.Rules{
		VideoExts:        cfg.Media.VideoExts,
		AudioExts:        cfg.Media.AudioExts,
		Separator:        "_",
		MultiVideoPolicy: config.MultiVideoFirst,
	}
}

func TestClassify(t *testing.T) {
	cfg := config.Default()
	classifier := clips.NewClassifier(cfg.Media.VideoExts, cfg.Media.AudioExts)

	cases := []struct {
		path string
		want clips.Kind
	}{
		{"A001_cam.mp4", clips.KindVideo},
		{"A001_cam.MOV", clips.KindVideo},
		{"B002_cam.braw", clips.KindVideo},
		{"A001_zoom.wav", clips.KindAudio},
		{"A001_boom.FLAC", clips.KindAudio},
		{"notes.txt", clips.KindUnrecognized},
		{"noextension", clips.KindUnrecognized},
	}
	for _, tc := range cases {
		if got := classifier.Classify(tc.path).Kind; got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestGroupBasicClip(t *testing.T) {
	got := clips.Group([]string{
		"/up/A001_cam.mp4",
		"/up/A001_zoom.wav",
		"/up/A001_boom.wav",
	}, testRules())

	if len(got) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(got))
	}
	clip := got[0]
	if clip.Key != "A001" {
		t.Fatalf("key = %q", clip.Key)
	}
	if clip.Reference != "/up/A001_cam.mp4" {
		t.Fatalf("reference = %q", clip.Reference)
	}
	if len(clip.Externals) != 2 || clip.Externals[0] != "/up/A001_zoom.wav" || clip.Externals[1] != "/up/A001_boom.wav" {
		t.Fatalf("externals = %v, want zoom then boom in upload order", clip.Externals)
	}
}

func TestGroupSkipsIncompleteGroups(t *testing.T) {
	got := clips.Group([]string{
		"/up/A001_cam.mp4", // video only
		"/up/B002_zoom.wav", // audio only
		"/up/C003_cam.mp4",
		"/up/C003_zoom.wav",
	}, testRules())

	if len(got) != 1 || got[0].Key != "C003" {
		t.Fatalf("expected only complete C003 clip, got %v", got)
	}
}

func TestGroupNoSeparatorUsesWholeBaseName(t *testing.T) {
	got := clips.Group([]string{
		"/up/interview.mp4",
		"/up/interview.wav",
	}, testRules())

	if len(got) != 1 || got[0].Key != "interview" {
		t.Fatalf("expected clip keyed by whole base name, got %v", got)
	}
}

func TestGroupDropsUnrecognizedSilently(t *testing.T) {
	got := clips.Group([]string{
		"/up/A001_cam.mp4",
		"/up/A001_zoom.wav",
		"/up/A001_notes.txt",
		"/up/A001_slate.jpg",
	}, testRules())

	if len(got) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(got))
	}
	if len(got[0].Externals) != 1 {
		t.Fatalf("unrecognized files leaked into externals: %v", got[0].Externals)
	}
}

func TestGroupFirstVideoWinsByUploadOrder(t *testing.T) {
	got := clips.Group([]string{
		"/up/A001_wide.mp4",
		"/up/A001_tight.mp4",
		"/up/A001_zoom.wav",
	}, testRules())

	if len(got) != 1 {
		t.Fatalf("expected 1 clip, got %d", len(got))
	}
	if got[0].Reference != "/up/A001_wide.mp4" {
		t.Fatalf("reference = %q, want first uploaded video", got[0].Reference)
	}
	if got[0].Rejected != nil {
		t.Fatalf("first policy must not reject, got %v", got[0].Rejected)
	}
}

func TestGroupRejectPolicyFlagsAmbiguousClip(t *testing.T) {
	rules := testRules()
	rules.MultiVideoPolicy = config.MultiVideoReject

	got := clips.Group([]string{
		"/up/A001_wide.mp4",
		"/up/A001_tight.mp4",
		"/up/A001_zoom.wav",
		"/up/B002_cam.mp4",
		"/up/B002_zoom.wav",
	}, rules)

	if len(got) != 2 {
		t.Fatalf("expected 2 clips, got %d", len(got))
	}
	if got[0].Key != "A001" || got[0].Rejected == nil {
		t.Fatalf("expected A001 rejected, got %+v", got[0])
	}
	if got[1].Key != "B002" || got[1].Rejected != nil {
		t.Fatalf("expected B002 accepted, got %+v", got[1])
	}
}

func TestGroupDeterministicAcrossEnumerationOrder(t *testing.T) {
	forward := []string{
		"/up/A001_cam.mp4",
		"/up/A001_zoom.wav",
		"/up/B002_cam.braw",
		"/up/B002_lav.wav",
	}
	// Reordering across clips must not change membership; only order
	// within a clip's own files is meaningful.
	shuffled := []string{
		"/up/B002_cam.braw",
		"/up/A001_cam.mp4",
		"/up/B002_lav.wav",
		"/up/A001_zoom.wav",
	}

	a := clips.Group(forward, testRules())
	b := clips.Group(shuffled, testRules())

	if len(a) != len(b) {
		t.Fatalf("clip counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Key != b[i].Key || a[i].Reference != b[i].Reference {
			t.Fatalf("clip %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGroupCustomSeparator(t *testing.T) {
	rules := testRules()
	rules.Separator = "-"

	got := clips.Group([]string{
		"/up/SC01-cam.mp4",
		"/up/SC01-zoom.wav",
	}, rules)

	if len(got) != 1 || got[0].Key != "SC01" {
		t.Fatalf("expected SC01 clip with dash separator, got %v", got)
	}
}

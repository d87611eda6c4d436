package clips

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"clipsync/internal/services"
)

// Kind classifies a media file by its extension.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindVideo
	KindAudio
)

func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "unrecognized"
	}
}

// MediaFile is a local path with its classification. Immutable once built.
type MediaFile struct {
	Path string
	Kind Kind
}

// Rules carries the configuration the grouper depends on.
type Rules struct {
	VideoExts        []string
	AudioExts        []string
	Separator        string
	MultiVideoPolicy string
}

// Clip is one logical unit of work: a reference video plus the external audio
// sources sharing its key, in original upload order.
type Clip struct {
	Key       string
	Reference string
	Externals []string
	// Rejected carries the policy error for clips that grouped
	// structurally but were refused (ambiguous multiple videos). The clip
	// is reported as failed instead of being silently skipped.
	Rejected error
}

// Classifier resolves paths to media kinds using configured extension sets.
type Classifier struct {
	video map[string]struct{}
	audio map[string]struct{}
}

// NewClassifier builds a classifier from the extension lists. Extensions are
// matched case-insensitively and include the leading dot.
func NewClassifier(videoExts, audioExts []string) *Classifier {
	return &Classifier{
		video: extSet(videoExts),
		audio: extSet(audioExts),
	}
}

// Classify tags a path as video, audio, or unrecognized.
func (c *Classifier) Classify(path string) MediaFile {
	ext := strings.ToLower(filepath.Ext(path))
	kind := KindUnrecognized
	if _, ok := c.video[ext]; ok {
		kind = KindVideo
	} else if _, ok := c.audio[ext]; ok {
		kind = KindAudio
	}
	return MediaFile{Path: path, Kind: kind}
}

// Group partitions paths into clips. Input order is significant: it decides
// external track order and the "first video wins" reference choice. The
// returned slice is sorted by key for stable downstream reporting; membership
// never depends on enumeration order.
func Group(paths []string, rules Rules) []Clip {
	classifier := NewClassifier(rules.VideoExts, rules.AudioExts)

	type group struct {
		videos    []string
		externals []string
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, path := range paths {
		file := classifier.Classify(path)
		if file.Kind == KindUnrecognized {
			continue
		}
		key := clipKey(path, rules.Separator)
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, key)
		}
		switch file.Kind {
		case KindVideo:
			g.videos = append(g.videos, path)
		case KindAudio:
			g.externals = append(g.externals, path)
		}
	}

	clips := make([]Clip, 0, len(groups))
	for _, key := range order {
		g := groups[key]
		// A group without both sides is not a clip; skipped, not an error.
		if len(g.videos) == 0 || len(g.externals) == 0 {
			continue
		}
		clip := Clip{Key: key, Reference: g.videos[0], Externals: g.externals}
		if len(g.videos) > 1 && rules.MultiVideoPolicy == "reject" {
			clip.Rejected = services.Wrap(services.ErrValidation, "grouping", "select reference",
				fmt.Sprintf("%d videos share key %q; remove the extras or set multi_video_policy to \"first\"", len(g.videos), key), nil)
		}
		clips = append(clips, clip)
	}

	sort.Slice(clips, func(i, j int) bool { return clips[i].Key < clips[j].Key })
	return clips
}

// clipKey is the base filename up to the first separator; files with no
// separator use the whole base name.
func clipKey(path, separator string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if separator == "" {
		return base
	}
	if idx := strings.Index(base, separator); idx >= 0 {
		return base[:idx]
	}
	return base
}

func extSet(exts []string) map[string]struct{} {
	set := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return set
}

package muxplan

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Strategy is the video handling decision for the output container.
type Strategy string

const (
	// StrategyCopy passes the original video stream through untouched.
	StrategyCopy Strategy = "copy"
	// StrategyProxy re-encodes RAW camera footage to an edit-friendly
	// intermediate codec.
	StrategyProxy Strategy = "proxy"
)

// Rules carries the codec configuration the planner depends on.
type Rules struct {
	RawVideoExts []string
	AudioCodec   string
	ProxyCodec   string
	ProxyProfile string
	ProxyPixFmt  string
}

// Plan is the full ordered recipe for assembling one clip's container.
type Plan struct {
	// Inputs lists media paths in invocation order: reference video
	// first, then one aligned-audio file per external source in original
	// upload order.
	Inputs []string
	// Mappings are input:stream selectors in output track order. The
	// reference's own audio (when present) always precedes the externals.
	Mappings []string
	Video    Strategy
	// Proxy codec parameters; only meaningful when Video is StrategyProxy.
	ProxyCodec   string
	ProxyProfile string
	ProxyPixFmt  string
	// AudioCodec applies uniformly to every output audio track.
	AudioCodec string
	OutputPath string
}

// Build produces the plan for one clip. refHasAudio reports whether the
// reference container carries an embedded scratch track; mapping it blindly
// would fail the whole mux for cameras that record no audio.
func Build(referencePath string, refHasAudio bool, alignedPaths []string, outputPath string, rules Rules) Plan {
	plan := Plan{
		Inputs:     append([]string{referencePath}, alignedPaths...),
		Video:      StrategyCopy,
		AudioCodec: rules.AudioCodec,
		OutputPath: outputPath,
	}

	if isRaw(referencePath, rules.RawVideoExts) {
		plan.Video = StrategyProxy
		plan.ProxyCodec = rules.ProxyCodec
		plan.ProxyProfile = rules.ProxyProfile
		plan.ProxyPixFmt = rules.ProxyPixFmt
	}

	plan.Mappings = append(plan.Mappings, "0:v:0")
	if refHasAudio {
		plan.Mappings = append(plan.Mappings, "0:a:0")
	}
	for i := range alignedPaths {
		plan.Mappings = append(plan.Mappings, fmt.Sprintf("%d:a:0", i+1))
	}

	return plan
}

// Args renders the plan as the transcoder argument vector.
func (p Plan) Args() []string {
	args := make([]string, 0, len(p.Inputs)*2+len(p.Mappings)*2+12)
	for _, input := range p.Inputs {
		args = append(args, "-i", input)
	}
	for _, mapping := range p.Mappings {
		args = append(args, "-map", mapping)
	}

	switch p.Video {
	case StrategyProxy:
		args = append(args,
			"-c:v", p.ProxyCodec,
			"-profile:v", p.ProxyProfile,
			"-pix_fmt", p.ProxyPixFmt,
		)
	default:
		args = append(args, "-c:v", "copy")
	}

	args = append(args,
		"-c:a", p.AudioCodec,
		"-shortest",
		"-movflags", "+faststart",
		p.OutputPath,
	)
	return args
}

// AudioTrackCount returns the number of audio tracks the output will carry.
func (p Plan) AudioTrackCount() int {
	count := 0
	for _, mapping := range p.Mappings {
		if strings.Contains(mapping, ":a:") {
			count++
		}
	}
	return count
}

func isRaw(path string, rawExts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, raw := range rawExts {
		if ext == strings.ToLower(raw) {
			return true
		}
	}
	return false
}

package config

const (
	defaultStagingDir          = "~/.local/share/clipsync/staging"
	defaultOutputDir           = "~/clipsync-output"
	defaultLogDir              = "~/.local/share/clipsync/logs"
	defaultSampleRate          = 48000
	defaultGroupSeparator      = "_"
	defaultMultiVideoPolicy    = MultiVideoFirst
	defaultAudioCodec          = "pcm_s16le"
	defaultProxyCodec          = "prores_ks"
	defaultProxyProfile        = "3"
	defaultProxyPixFmt         = "yuv422p10le"
	defaultContainerExt        = "mov"
	defaultFFmpegBin           = "ffmpeg"
	defaultFFprobeBin          = "ffprobe"
	defaultWorkers             = 2
	defaultDecodeTimeout       = 600
	defaultMuxTimeout          = 1800
	defaultStaleRunMaxAgeHours = 24
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Multi-video policy values accepted by analysis.multi_video_policy.
const (
	// MultiVideoFirst keeps the first video encountered for a key, by
	// original upload order, and ignores the rest.
	MultiVideoFirst = "first"
	// MultiVideoReject fails any clip whose key matched more than one
	// video so the ambiguity surfaces to the operator.
	MultiVideoReject = "reject"
)

func defaultVideoExts() []string {
	return []string{".mp4", ".mov", ".mxf", ".avi", ".mkv", ".braw", ".r3d", ".crm"}
}

func defaultRawVideoExts() []string {
	return []string{".braw", ".r3d", ".crm"}
}

func defaultAudioExts() []string {
	return []string{".wav", ".mp3", ".m4a", ".aac", ".flac"}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		Analysis: Analysis{
			SampleRate:       defaultSampleRate,
			GroupSeparator:   defaultGroupSeparator,
			MultiVideoPolicy: defaultMultiVideoPolicy,
		},
		Media: Media{
			VideoExts:    defaultVideoExts(),
			RawVideoExts: defaultRawVideoExts(),
			AudioExts:    defaultAudioExts(),
			AudioCodec:   defaultAudioCodec,
			ProxyCodec:   defaultProxyCodec,
			ProxyProfile: defaultProxyProfile,
			ProxyPixFmt:  defaultProxyPixFmt,
			ContainerExt: defaultContainerExt,
			FFmpegBin:    defaultFFmpegBin,
			FFprobeBin:   defaultFFprobeBin,
		},
		Workflow: Workflow{
			Workers:              defaultWorkers,
			DecodeTimeoutSeconds: defaultDecodeTimeout,
			MuxTimeoutSeconds:    defaultMuxTimeout,
			StaleRunMaxAgeHours:  defaultStaleRunMaxAgeHours,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}

package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeAnalysis()
	c.normalizeMedia()
	c.normalizeWorkflow()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.StagingDir, err = expandPath(c.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAnalysis() {
	if c.Analysis.SampleRate == 0 {
		c.Analysis.SampleRate = defaultSampleRate
	}
	if c.Analysis.GroupSeparator == "" {
		c.Analysis.GroupSeparator = defaultGroupSeparator
	}
	c.Analysis.MultiVideoPolicy = strings.ToLower(strings.TrimSpace(c.Analysis.MultiVideoPolicy))
	if c.Analysis.MultiVideoPolicy == "" {
		c.Analysis.MultiVideoPolicy = defaultMultiVideoPolicy
	}
}

func (c *Config) normalizeMedia() {
	c.Media.VideoExts = normalizeExts(c.Media.VideoExts, defaultVideoExts())
	c.Media.RawVideoExts = normalizeExts(c.Media.RawVideoExts, defaultRawVideoExts())
	c.Media.AudioExts = normalizeExts(c.Media.AudioExts, defaultAudioExts())

	c.Media.AudioCodec = defaultString(c.Media.AudioCodec, defaultAudioCodec)
	c.Media.ProxyCodec = defaultString(c.Media.ProxyCodec, defaultProxyCodec)
	c.Media.ProxyProfile = defaultString(c.Media.ProxyProfile, defaultProxyProfile)
	c.Media.ProxyPixFmt = defaultString(c.Media.ProxyPixFmt, defaultProxyPixFmt)
	c.Media.ContainerExt = strings.TrimPrefix(defaultString(c.Media.ContainerExt, defaultContainerExt), ".")
	c.Media.FFmpegBin = defaultString(c.Media.FFmpegBin, defaultFFmpegBin)
	c.Media.FFprobeBin = defaultString(c.Media.FFprobeBin, defaultFFprobeBin)
}

func (c *Config) normalizeWorkflow() {
	if c.Workflow.Workers == 0 {
		c.Workflow.Workers = defaultWorkers
	}
	if c.Workflow.DecodeTimeoutSeconds == 0 {
		c.Workflow.DecodeTimeoutSeconds = defaultDecodeTimeout
	}
	if c.Workflow.MuxTimeoutSeconds == 0 {
		c.Workflow.MuxTimeoutSeconds = defaultMuxTimeout
	}
	if c.Workflow.StaleRunMaxAgeHours == 0 {
		c.Workflow.StaleRunMaxAgeHours = defaultStaleRunMaxAgeHours
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

// normalizeExts lowercases extensions and guarantees a leading dot; an empty
// list falls back to the defaults so a sparse config stays usable.
func normalizeExts(exts []string, fallback []string) []string {
	if len(exts) == 0 {
		return fallback
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

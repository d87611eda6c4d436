package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateMedia(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.SampleRate <= 0 {
		return errors.New("analysis.sample_rate must be positive")
	}
	if len([]rune(c.Analysis.GroupSeparator)) != 1 {
		return fmt.Errorf("analysis.group_separator must be a single character, got %q", c.Analysis.GroupSeparator)
	}
	switch c.Analysis.MultiVideoPolicy {
	case MultiVideoFirst, MultiVideoReject:
	default:
		return fmt.Errorf("analysis.multi_video_policy must be %q or %q, got %q",
			MultiVideoFirst, MultiVideoReject, c.Analysis.MultiVideoPolicy)
	}
	if c.Analysis.MinConfidence < 0 {
		return errors.New("analysis.min_confidence must not be negative")
	}
	return nil
}

func (c *Config) validateMedia() error {
	if len(c.Media.VideoExts) == 0 {
		return errors.New("media.video_exts must not be empty")
	}
	if len(c.Media.AudioExts) == 0 {
		return errors.New("media.audio_exts must not be empty")
	}
	video := make(map[string]struct{}, len(c.Media.VideoExts))
	for _, ext := range c.Media.VideoExts {
		video[ext] = struct{}{}
	}
	for _, ext := range c.Media.RawVideoExts {
		if _, ok := video[ext]; !ok {
			return fmt.Errorf("media.raw_video_exts entry %q is not in media.video_exts", ext)
		}
	}
	if c.Media.ContainerExt == "" {
		return errors.New("media.container_ext must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.Workers < 1 {
		return errors.New("workflow.workers must be at least 1")
	}
	if c.Workflow.DecodeTimeoutSeconds < 0 || c.Workflow.MuxTimeoutSeconds < 0 {
		return errors.New("workflow timeouts must not be negative")
	}
	return nil
}

package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	OutputDir  string `toml:"output_dir"`
	LogDir     string `toml:"log_dir"`
}

// Analysis contains waveform comparison settings.
type Analysis struct {
	// SampleRate is the fixed analysis rate every waveform is resampled
	// to before comparison, in Hz.
	SampleRate int `toml:"sample_rate"`
	// GroupSeparator splits filenames into clip key and remainder; the
	// clip key is everything before its first occurrence.
	GroupSeparator string `toml:"group_separator"`
	// MultiVideoPolicy decides what happens when several videos share a
	// clip key: "first" keeps the first by upload order, "reject" fails
	// the clip so the ambiguity surfaces instead of dropping an angle.
	MultiVideoPolicy string `toml:"multi_video_policy"`
	// MinConfidence rejects alignments whose correlation peak-to-runner-up
	// ratio falls below this value. Zero disables the check.
	MinConfidence float64 `toml:"min_confidence"`
}

// Media contains format recognition and codec parameters.
type Media struct {
	VideoExts    []string `toml:"video_exts"`
	RawVideoExts []string `toml:"raw_video_exts"`
	AudioExts    []string `toml:"audio_exts"`
	AudioCodec   string   `toml:"audio_codec"`
	ProxyCodec   string   `toml:"proxy_codec"`
	ProxyProfile string   `toml:"proxy_profile"`
	ProxyPixFmt  string   `toml:"proxy_pix_fmt"`
	ContainerExt string   `toml:"container_ext"`
	FFmpegBin    string   `toml:"ffmpeg_bin"`
	FFprobeBin   string   `toml:"ffprobe_bin"`
}

// Workflow contains concurrency and external tool timeout settings.
type Workflow struct {
	Workers              int `toml:"workers"`
	DecodeTimeoutSeconds int `toml:"decode_timeout_seconds"`
	MuxTimeoutSeconds    int `toml:"mux_timeout_seconds"`
	StaleRunMaxAgeHours  int `toml:"stale_run_max_age_hours"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for clipsync.
//
// Sections by subsystem:
//   - Paths: staging, output, and log directories
//   - Analysis: sample rate, grouping separator, alignment policies
//   - Media: recognized extensions and codec identifiers
//   - Workflow: worker count and external tool timeouts
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Analysis Analysis `toml:"analysis"`
	Media    Media    `toml:"media"`
	Workflow Workflow `toml:"workflow"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/clipsync/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("clipsync.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a pipeline run writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StagingDir, c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// WriteSample writes the annotated sample configuration to path, refusing to
// overwrite an existing file.
func WriteSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(expanded, []byte(sampleConfig), 0o644)
}

func expandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	path = os.ExpandEnv(path)
	return filepath.Abs(path)
}

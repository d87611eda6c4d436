package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"clipsync/internal/align"
	"clipsync/internal/clips"
	"clipsync/internal/config"
	"clipsync/internal/logging"
	"clipsync/internal/media/ffprobe"
	"clipsync/internal/media/transcode"
	"clipsync/internal/muxplan"
	"clipsync/internal/services"
	"clipsync/internal/staging"
	"clipsync/internal/wave"
)

// StreamProber inspects a media file for its stream layout. Satisfied by
// BinaryProber in production and by fakes in tests.
type StreamProber interface {
	Inspect(ctx context.Context, path string) (ffprobe.Report, error)
}

// BinaryProber shells out to the configured ffprobe binary.
type BinaryProber struct {
	Binary string
}

func (p BinaryProber) Inspect(ctx context.Context, path string) (ffprobe.Report, error) {
	return ffprobe.Inspect(ctx, p.Binary, path)
}

// TrackOffset records the estimated offset for one external audio source.
type TrackOffset struct {
	Source string
	Offset align.Offset
}

// ClipResult is the terminal state of one clip.
type ClipResult struct {
	Key        string
	Status     ClipStatus
	OutputPath string
	Offsets    []TrackOffset
	Elapsed    time.Duration
	Err        error
}

// JobResult aggregates per-clip outcomes for one sync run.
type JobResult struct {
	Results []ClipResult
}

// Synced returns the output paths of clips that finished successfully, in
// result order.
func (j JobResult) Synced() []string {
	var paths []string
	for _, r := range j.Results {
		if r.Status == StatusDone {
			paths = append(paths, r.OutputPath)
		}
	}
	return paths
}

// DoneCount returns how many clips reached Done.
func (j JobResult) DoneCount() int {
	return len(j.Synced())
}

// Pipeline drives uploaded media through grouping, decoding, offset
// estimation, alignment, and muxing. Clips are independent: a failure in one
// never aborts its siblings.
type Pipeline struct {
	cfg        *config.Config
	transcoder transcode.MediaTranscoder
	prober     StreamProber
	logger     *slog.Logger
}

// New builds a pipeline over the given collaborators. A nil logger disables
// logging.
func New(cfg *config.Config, transcoder transcode.MediaTranscoder, prober StreamProber, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{cfg: cfg, transcoder: transcoder, prober: prober, logger: logger}
}

// Run groups the input paths into clips and processes each group. It returns
// a job-level error only when grouping yields no viable clip at all;
// otherwise every outcome, including per-clip failures, is in the JobResult.
func (p *Pipeline) Run(ctx context.Context, inputPaths []string, run *staging.Run) (JobResult, error) {
	groups := clips.Group(inputPaths, clips.Rules{
		VideoExts:        p.cfg.Media.VideoExts,
		AudioExts:        p.cfg.Media.AudioExts,
		Separator:        p.cfg.Analysis.GroupSeparator,
		MultiVideoPolicy: p.cfg.Analysis.MultiVideoPolicy,
	})
	if len(groups) == 0 {
		return JobResult{}, services.Wrap(services.ErrNoValidClips, "grouping", "group",
			"no group contains both a reference video and external audio", nil)
	}

	ctx = services.WithRunID(ctx, run.ID)
	p.logger.Info("starting sync job",
		logging.Int("clips", len(groups)),
		logging.Int("workers", p.workers()),
		logging.String(logging.FieldRunID, run.ID),
		logging.String(logging.FieldEventType, "job_started"),
	)

	results := make([]ClipResult, len(groups))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers(); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = p.processClip(ctx, groups[i], run)
			}
		}()
	}
	for i := range groups {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	job := JobResult{Results: results}
	p.logger.Info("sync job finished",
		logging.Int("done", job.DoneCount()),
		logging.Int("failed", len(job.Results)-job.DoneCount()),
		logging.String(logging.FieldRunID, run.ID),
		logging.String(logging.FieldEventType, "job_finished"),
	)
	return job, nil
}

func (p *Pipeline) workers() int {
	if p.cfg.Workflow.Workers < 1 {
		return 1
	}
	return p.cfg.Workflow.Workers
}

// processClip walks one clip through the stage sequence. The returned result
// is always terminal.
func (p *Pipeline) processClip(ctx context.Context, clip clips.Clip, run *staging.Run) ClipResult {
	started := time.Now()
	ctx = services.WithClipKey(ctx, clip.Key)
	result := ClipResult{Key: clip.Key, Status: StatusPending}

	fail := func(status ClipStatus, err error) ClipResult {
		result.Status = StatusFailed
		result.Err = err
		result.Elapsed = time.Since(started)
		logging.WithContext(services.WithStage(ctx, string(status)), p.logger).Error("clip failed",
			logging.Error(err),
			logging.String("reason", services.Category(err)),
			logging.String(logging.FieldEventType, "clip_failed"),
		)
		return result
	}

	if clip.Rejected != nil {
		return fail(StatusPending, clip.Rejected)
	}

	clipDir, err := run.ClipDir(clip.Key)
	if err != nil {
		return fail(StatusPending, services.Wrap(services.ErrConfiguration, "staging", "clip_dir", "create scratch directory", err))
	}

	// Decoding: extract mono analysis waveforms at the configured rate.
	p.transition(ctx, StatusDecoding)
	reference, err := p.decode(ctx, clip.Reference, filepath.Join(clipDir, "reference.wav"))
	if err != nil {
		return fail(StatusDecoding, err)
	}
	externals := make([]wave.Waveform, len(clip.Externals))
	for i, src := range clip.Externals {
		scratch := filepath.Join(clipDir, fmt.Sprintf("external_%d.wav", i))
		externals[i], err = p.decode(ctx, src, scratch)
		if err != nil {
			return fail(StatusDecoding, err)
		}
	}

	// Estimating: cross-correlate each external track against the reference.
	p.transition(ctx, StatusEstimating)
	offsets := make([]align.Offset, len(externals))
	for i, ext := range externals {
		offset, err := align.EstimateOffset(reference, ext)
		if err != nil {
			return fail(StatusEstimating, err)
		}
		if min := p.cfg.Analysis.MinConfidence; min > 0 && offset.Confidence < min {
			return fail(StatusEstimating, services.Wrap(services.ErrLowConfidence, "estimating", "confidence",
				fmt.Sprintf("%s: confidence %.2f below threshold %.2f", filepath.Base(clip.Externals[i]), offset.Confidence, min), nil))
		}
		offsets[i] = offset
		result.Offsets = append(result.Offsets, TrackOffset{Source: clip.Externals[i], Offset: offset})
		logging.WithContext(services.WithStage(ctx, string(StatusEstimating)), p.logger).Info("estimated offset",
			logging.String("source", filepath.Base(clip.Externals[i])),
			logging.Float64("offset_seconds", offset.Seconds),
			logging.Float64("confidence", offset.Confidence),
			logging.String(logging.FieldEventType, "offset_estimated"),
		)
	}

	// Aligning: pad or trim each external track to the reference timeline.
	p.transition(ctx, StatusAligning)
	alignedPaths := make([]string, len(externals))
	for i, ext := range externals {
		aligned := align.AlignTrack(reference.Len(), ext, offsets[i].Seconds)
		path := filepath.Join(clipDir, fmt.Sprintf("external_%d_aligned.wav", i))
		if err := wave.WriteFile(path, aligned); err != nil {
			return fail(StatusAligning, services.Wrap(services.ErrValidation, "aligning", "write_wav", "write aligned track", err))
		}
		alignedPaths[i] = path
	}

	// Muxing: assemble the output container with all audio tracks.
	p.transition(ctx, StatusMuxing)
	report, err := p.prober.Inspect(ctx, clip.Reference)
	if err != nil {
		return fail(StatusMuxing, err)
	}
	outputPath := filepath.Join(clipDir, fmt.Sprintf("%s_synced.%s", clip.Key, p.cfg.Media.ContainerExt))
	plan := muxplan.Build(clip.Reference, report.HasAudio(), alignedPaths, outputPath, muxplan.Rules{
		RawVideoExts: p.cfg.Media.RawVideoExts,
		AudioCodec:   p.cfg.Media.AudioCodec,
		ProxyCodec:   p.cfg.Media.ProxyCodec,
		ProxyProfile: p.cfg.Media.ProxyProfile,
		ProxyPixFmt:  p.cfg.Media.ProxyPixFmt,
	})
	if err := p.transcoder.Mux(ctx, plan.Args()); err != nil {
		return fail(StatusMuxing, err)
	}

	result.Status = StatusDone
	result.OutputPath = outputPath
	result.Elapsed = time.Since(started)
	logging.WithContext(ctx, p.logger).Info("clip synced",
		logging.String("output", outputPath),
		logging.Int("audio_tracks", plan.AudioTrackCount()),
		logging.String("video_strategy", string(plan.Video)),
		logging.Duration("elapsed", result.Elapsed),
		logging.String(logging.FieldEventType, "clip_done"),
	)
	return result
}

// decode extracts a mono waveform from src into scratchPath and reads it
// back, verifying the analysis sample rate.
func (p *Pipeline) decode(ctx context.Context, src, scratchPath string) (wave.Waveform, error) {
	if err := p.transcoder.ExtractMonoWAV(ctx, src, scratchPath, p.cfg.Analysis.SampleRate); err != nil {
		return wave.Waveform{}, err
	}
	w, err := wave.ReadFile(scratchPath)
	if err != nil {
		return wave.Waveform{}, services.Wrap(services.ErrDecode, "decoding", "read_wav", filepath.Base(src), err)
	}
	if w.Rate != p.cfg.Analysis.SampleRate {
		return wave.Waveform{}, services.Wrap(services.ErrRateMismatch, "decoding", "read_wav",
			fmt.Sprintf("%s: got %d Hz, want %d Hz", filepath.Base(src), w.Rate, p.cfg.Analysis.SampleRate), nil)
	}
	return w, nil
}

func (p *Pipeline) transition(ctx context.Context, status ClipStatus) {
	logging.WithContext(services.WithStage(ctx, string(status)), p.logger).Debug("stage started",
		logging.String("status", string(status)),
		logging.String(logging.FieldEventType, "stage_started"),
	)
}

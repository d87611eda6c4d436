// Package transcode is the boundary to the external transcoding tool.
//
// The pipeline never builds ffmpeg-specific arguments outside this package
// and the mux planner; everything else depends on the MediaTranscoder
// capability, which tests satisfy with in-memory fakes. Invocations are
// synchronous subprocess calls bounded by per-operation timeouts; captured
// stderr is attached to errors for logging but never parsed.
package transcode

// Package deps verifies the external tools clipsync shells out to. The sync
// pipeline requires ffmpeg for audio extraction and muxing and ffprobe for
// stream inspection; this package resolves the configured binaries and
// reports what is missing before any work starts.
package deps

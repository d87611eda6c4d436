// Package ffprobe wraps ffprobe JSON inspection of media containers.
//
// The mux planner uses it to learn whether the reference video carries an
// embedded scratch-audio stream before deciding track mappings; nothing else
// in the pipeline parses container metadata.
package ffprobe

// Package pipeline orchestrates the audio sync workflow. It groups uploaded
// media into clips, then walks each clip through decoding, offset estimation,
// alignment, and muxing on a bounded worker pool. Clips fail independently;
// the job itself only fails when grouping produces nothing to work on.
package pipeline

// Package clips partitions a flat upload of media files into logical clips.
//
// Classification is by file extension against configured video and audio
// sets; anything else is dropped silently. The grouping key is the filename
// prefix before the first occurrence of the configured separator, so
// A001_cam.mp4 and A001_zoom.wav both land in clip "A001". Groups missing a
// video or missing audio are skipped, not errors. When several videos share a
// key the configured policy decides between keeping the first by upload order
// and rejecting the clip outright.
package clips

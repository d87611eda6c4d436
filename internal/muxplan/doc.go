// Package muxplan decides how one clip's deliverable container gets
// assembled: which inputs in which order, whether the reference video is
// stream-copied or proxy re-encoded, and the exact stream-to-track mappings.
//
// The plan is a plain data structure so tests can assert on the decision
// without running the external tool; Args renders it into the transcoder's
// argument vector.
package muxplan

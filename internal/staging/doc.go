// Package staging manages run-scoped scratch directories for intermediate
// audio artifacts. Every sync job works inside its own uniquely named run
// directory, with one subdirectory per clip, and removes the whole tree when
// the job finishes. Stale runs left behind by interrupted processes are
// reclaimed by CleanStale.
package staging

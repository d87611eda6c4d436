// Package bundle delivers finished synced clips to the output directory. One
// clip is moved directly; multiple clips are packed into a single zip archive
// so a job always yields exactly one artifact.
package bundle

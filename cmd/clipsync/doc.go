// Package main hosts the clipsync CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, sets up structured
// logging, and drives the sync pipeline. Subcommands stay thin: grouping,
// offset estimation, alignment, and muxing live in the internal packages and
// are surfaced here as `sync`, `offset`, `config`, and `deps`.
package main

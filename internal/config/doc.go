// Package config owns clipsync's TOML configuration: declared structure,
// defaults, normalization (path expansion and env fallbacks), and validation.
//
// The loaded Config is immutable after Load returns and is passed explicitly
// into each component at construction. Nothing in the pipeline reads ambient
// package-level settings, so tests can substitute alternate extension sets or
// sample rates without process-wide side effects.
package config

// Package services defines the error taxonomy and context plumbing shared by
// every pipeline stage.
//
// Errors are tagged with sentinel markers (ErrDecode, ErrMux, ...) via Wrap so
// callers can classify failures with errors.Is without parsing message text.
// Context helpers annotate a context with the clip key, stage name, and run
// identifier so logging can tag every line produced while a clip is in flight.
package services

package pipeline

// ClipStatus tracks a clip through the sync stages. Transitions run strictly
// forward; Done and Failed are terminal.
type ClipStatus string

const (
	StatusPending    ClipStatus = "pending"
	StatusDecoding   ClipStatus = "decoding"
	StatusEstimating ClipStatus = "estimating"
	StatusAligning   ClipStatus = "aligning"
	StatusMuxing     ClipStatus = "muxing"
	StatusDone       ClipStatus = "done"
	StatusFailed     ClipStatus = "failed"
)

// IsTerminal reports whether the status ends a clip's lifecycle.
func (s ClipStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusFailed
}

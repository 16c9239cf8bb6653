package lifecycle

// Phase is the externally visible state of a machine, derived from its flags.
type Phase int

const (
	// PhaseCollapsed shows only the pill.
	PhaseCollapsed Phase = iota
	// PhaseExpanded shows the description and button.
	PhaseExpanded
	// PhasePendingSwap is collapsing so queued content can be applied.
	PhasePendingSwap
	// PhaseExiting is playing the exit animation.
	PhaseExiting
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseCollapsed:
		return "collapsed"
	case PhaseExpanded:
		return "expanded"
	case PhasePendingSwap:
		return "pending-swap"
	case PhaseExiting:
		return "exiting"
	default:
		return "unknown"
	}
}

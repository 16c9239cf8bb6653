package domain

// State is the semantic tag of a toast. It selects the icon and colours.
type State string

const (
	StateSuccess State = "success"
	StateLoading State = "loading"
	StateError   State = "error"
	StateWarning State = "warning"
	StateInfo    State = "info"
	StateAction  State = "action"
)

// States lists every known state.
var States = []State{StateSuccess, StateLoading, StateError, StateWarning, StateInfo, StateAction}

// Valid reports whether s is a known state.
func (s State) Valid() bool {
	for _, known := range States {
		if s == known {
			return true
		}
	}
	return false
}

// OrDefault returns s, or StateSuccess when s is empty or unknown.
func (s State) OrDefault() State {
	if s.Valid() {
		return s
	}
	return StateSuccess
}

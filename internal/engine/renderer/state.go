package renderer

// State is the renderer lifecycle stage.
//
//	Uninitialized -> Initializing -> Ready -> Running <-> Stopped
//	                      \-> Error
type State uint8

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateRunning
	StateStopped
	StateError
)

var stateNames = [...]string{
	StateUninitialized: "uninitialized",
	StateInitializing:  "initializing",
	StateReady:         "ready",
	StateRunning:       "running",
	StateStopped:       "stopped",
	StateError:         "error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// canStart reports whether Start may move s to Running.
func (s State) canStart() bool {
	return s == StateReady || s == StateStopped
}

package postboard

import (
	"github.com/bft-labs/postboard/internal/app"
)

// State represents the mount state of an App.
type State int

const (
	// StateCreated indicates the App has been built but not mounted.
	StateCreated State = iota
	// StateMounting indicates the root component is being rendered.
	StateMounting
	// StateMounted indicates the component tree is attached to its element.
	StateMounted
	// StateUnmounting indicates plugins are being shut down.
	StateUnmounting
	// StateUnmounted indicates the App has been torn down. It cannot be mounted again.
	StateUnmounted
	// StateCrashed indicates mounting failed.
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "Created"
	case StateMounting:
		return "Mounting"
	case StateMounted:
		return "Mounted"
	case StateUnmounting:
		return "Unmounting"
	case StateUnmounted:
		return "Unmounted"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent is emitted when the App changes state.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// EventHandler receives lifecycle events.
// Implementations must be safe for concurrent use.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interface.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateCreated:
		return StateCreated
	case app.StateMounting:
		return StateMounting
	case app.StateMounted:
		return StateMounted
	case app.StateUnmounting:
		return StateUnmounting
	case app.StateUnmounted:
		return StateUnmounted
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateCreated
	}
}

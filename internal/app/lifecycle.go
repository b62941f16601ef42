package app

import (
	"sync"

	"github.com/bft-labs/postboard/internal/domain"
	"github.com/bft-labs/postboard/internal/ports"
)

// State represents the mount state of an application.
type State int

const (
	StateCreated State = iota
	StateMounting
	StateMounted
	StateUnmounting
	StateUnmounted
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

// EventEmitter is called when the lifecycle state changes.
type EventEmitter interface {
	OnStateChange(previous, current State, reason string)
}

// Lifecycle manages the mount state machine of an application.
// An application is mounted at most once; Unmounted is terminal.
type Lifecycle struct {
	mu           sync.RWMutex
	state        State
	logger       ports.Logger
	eventEmitter EventEmitter
}

// NewLifecycle creates a lifecycle in StateCreated.
func NewLifecycle(logger ports.Logger, emitter EventEmitter) *Lifecycle {
	return &Lifecycle{
		state:        StateCreated,
		logger:       logger,
		eventEmitter: emitter,
	}
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// TransitionTo attempts to transition to a new state.
// Returns an error if the transition is not valid.
func (l *Lifecycle) TransitionTo(newState State, reason string) error {
	l.mu.Lock()
	oldState := l.state

	if err := validTransition(oldState, newState); err != nil {
		l.mu.Unlock()
		return err
	}

	l.state = newState
	l.mu.Unlock()

	// Emit event outside of lock
	if l.eventEmitter != nil {
		l.eventEmitter.OnStateChange(oldState, newState, reason)
	}

	l.logger.Info("state transition",
		ports.String("from", oldState.String()),
		ports.String("to", newState.String()),
		ports.String("reason", reason),
	)

	return nil
}

func validTransition(from, to State) error {
	switch from {
	case StateCreated:
		if to != StateMounting && to != StateUnmounting {
			return domain.ErrNotMounted
		}
	case StateMounting:
		if to != StateMounted && to != StateCrashed {
			return domain.ErrAlreadyMounted
		}
	case StateMounted:
		if to != StateUnmounting && to != StateCrashed {
			return domain.ErrAlreadyMounted
		}
	case StateUnmounting:
		if to != StateUnmounted && to != StateCrashed {
			return domain.ErrAlreadyMounted
		}
	case StateCrashed:
		if to != StateUnmounting {
			return domain.ErrNotMounted
		}
	case StateUnmounted:
		return domain.ErrNotMounted
	}
	return nil
}

// CanMount returns true if Mount can be called.
func (l *Lifecycle) CanMount() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateCreated
}

// CanUnmount returns true if Unmount can be called. An application that
// was never mounted can still be unmounted to release its plugins.
func (l *Lifecycle) CanUnmount() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state == StateCreated || l.state == StateMounted || l.state == StateCrashed
}

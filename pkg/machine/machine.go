package machine

import (
	"errors"
	"fmt"
	"slices"
)

type State interface {
	~string
}

var (
	ErrInvalidTransition = errors.New("invalid state transition")
)

// Allowable lists the states reachable from one state
type Allowable[S State] struct {
	from S
	to   []S
}

// StateMachine tracks a current state and moves it only along declared transitions
type StateMachine[S State] struct {
	current     S
	transitions []Allowable[S]
}

// TransitionBuilder helps in creating a from-to relationship for state transitions
type TransitionBuilder[S State] struct {
	transition Allowable[S]
}

func New[S State](currentState S, transitions ...Allowable[S]) *StateMachine[S] {
	return &StateMachine[S]{current: currentState, transitions: transitions}
}

// From initializes a transition from a specific state
func From[S State](from S) *TransitionBuilder[S] {
	return &TransitionBuilder[S]{transition: Allowable[S]{from: from}}
}

// To sets the possible destination states and returns the configured transition
func (tb *TransitionBuilder[S]) To(to ...S) Allowable[S] {
	tb.transition.to = to
	return tb.transition
}

// State returns the current state
func (m *StateMachine[S]) State() S {
	return m.current
}

// CanTransition reports whether the current state may move to s
func (m *StateMachine[S]) CanTransition(s S) bool {
	for _, t := range m.transitions {
		if t.from == m.current && slices.Contains(t.to, s) {
			return true
		}
	}

	return false
}

// Transition moves to s, leaving the current state untouched if the move is not allowed
func (m *StateMachine[S]) Transition(s S) error {
	if !m.CanTransition(s) {
		return fmt.Errorf("%w: %q to %q", ErrInvalidTransition, m.current, s)
	}

	m.current = s
	return nil
}

package fakturo

import "fmt"

// State represents the lifecycle state of an invoice. The set of valid
// states is closed: created, sent and paid.
type State struct {
	value string
}

// Valid state tags.
const (
	stateCreated = "created"
	stateSent    = "sent"
	statePaid    = "paid"
)

// NewState constructs a State from its string tag. It returns
// ErrInvalidValue for anything outside the allowed set.
func NewState(raw string) (State, error) {
	switch raw {
	case stateCreated, stateSent, statePaid:
		return State{value: raw}, nil
	}
	return State{}, fmt.Errorf("%w: invoice state %q", ErrInvalidValue, raw)
}

// StateCreated returns the "created" state.
func StateCreated() State { return State{value: stateCreated} }

// StateSent returns the "sent" state.
func StateSent() State { return State{value: stateSent} }

// StatePaid returns the "paid" state.
func StatePaid() State { return State{value: statePaid} }

// String returns the underlying state tag.
func (s State) String() string {
	return s.value
}

// IsZero reports whether the state has not been set.
func (s State) IsZero() bool {
	return s.value == ""
}

package core

import (
	erand "golang.org/x/exp/rand"
)

// Action identifies a transition out of a state. Implementations must
// return a stable hash: two actions with the same hash are the same
// action.
type Action interface {
	Hash() string
}

// ActionValue pairs an action with its current value estimate.
type ActionValue[A Action] struct {
	Action A
	Value  float64
}

// State is a position in the problem's state space, parameterized over
// the domain's action type. Implementations must be immutable; Apply
// returns a new state and never mutates the receiver.
type State[A Action] interface {
	// Hash is a stable identity key for the state.
	Hash() string
	// Actions lists the legal actions from this state. An empty
	// slice marks the state as terminal.
	Actions() []A
	// Apply returns the state that results from taking the action.
	Apply(A) State[A]
	// Reward is the immediate reward for having arrived in this state.
	Reward() float64
	// SelectBest picks the best (action, value) pair from choices,
	// breaking ties with the supplied random source.
	SelectBest(choices []ActionValue[A], rand *erand.Rand) ActionValue[A]
}

// MaxActionValue picks the pair with the largest value, choosing
// uniformly among ties. Environments without a domain-specific notion
// of "best" can delegate SelectBest to it. Panics on an empty slice;
// callers guard against terminal states before selecting.
func MaxActionValue[A Action](choices []ActionValue[A], rand *erand.Rand) ActionValue[A] {
	best := make([]ActionValue[A], 0, 1)
	for _, av := range choices {
		if len(best) == 0 || av.Value > best[0].Value {
			best = append(best[:0], av)
		} else if av.Value == best[0].Value {
			best = append(best, av)
		}
	}
	return best[rand.Intn(len(best))]
}

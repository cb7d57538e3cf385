// Package qtable implements a tabular action-value store for Q-learning
// over discrete, finite state spaces. The table is built once, either by
// exhaustive traversal from an initial state or from caller-supplied
// entries, and afterwards only its values change.
package qtable

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/zeu5/qtable/core"
)

const (
	// DefaultEpsilon is the base exploration rate used when Params
	// leaves Epsilon unset.
	DefaultEpsilon = 0.01
	// Dropoff controls exploration decay in NextAction. The effective
	// rate for an episode is epsilon + Dropoff/(episode+Dropoff).
	Dropoff = 5.0
)

// Params configures a QTable. The zero value is usable: Epsilon
// defaults to DefaultEpsilon and Rand to a time-seeded source.
type Params struct {
	Epsilon float64
	Rand    *erand.Rand
}

func (p Params) withDefaults() Params {
	if p.Epsilon == 0 {
		p.Epsilon = DefaultEpsilon
	}
	if p.Rand == nil {
		p.Rand = erand.New(erand.NewSource(uint64(time.Now().UnixNano())))
	}
	return p
}

// QTable maps every reachable state to a value per legal action.
// The key set is fixed at construction; Update mutates values in place.
// A QTable assumes a single writer and no concurrent readers; callers
// that share one across goroutines must synchronize externally.
type QTable[A core.Action] struct {
	values  map[string]map[string]float64
	actions map[string][]A

	epsilon float64
	rand    *erand.Rand
}

// New builds the table by traversal from initial: every state reachable
// through legal actions becomes a key, mapped to all of its actions at
// value 0.0. States are expanded once, so cycles in the state graph are
// handled; the graph must be finite or New never returns.
func New[A core.Action](initial core.State[A], params Params) *QTable[A] {
	params = params.withDefaults()
	q := &QTable[A]{
		values:  make(map[string]map[string]float64),
		actions: make(map[string][]A),
		epsilon: params.Epsilon,
		rand:    params.Rand,
	}

	queue := []core.State[A]{initial}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		hash := state.Hash()
		if _, ok := q.values[hash]; ok {
			continue
		}
		acts := state.Actions()
		vals := make(map[string]float64, len(acts))
		for _, a := range acts {
			vals[a.Hash()] = 0.0
			queue = append(queue, state.Apply(a))
		}
		q.values[hash] = vals
		q.actions[hash] = acts
	}

	glog.V(1).Infof("Built table with %d states", len(q.values))
	return q
}

// Entry is one state of a pre-built table together with its
// (action, value) pairs.
type Entry[A core.Action] struct {
	State   core.State[A]
	Actions []core.ActionValue[A]
}

// FromEntries builds the table from caller-supplied entries instead of
// traversal. The entries must cover every state the caller will later
// query; lookups against missing states fail with ErrUnknownState.
func FromEntries[A core.Action](entries []Entry[A], params Params) *QTable[A] {
	params = params.withDefaults()
	q := &QTable[A]{
		values:  make(map[string]map[string]float64, len(entries)),
		actions: make(map[string][]A, len(entries)),
		epsilon: params.Epsilon,
		rand:    params.Rand,
	}
	for _, e := range entries {
		hash := e.State.Hash()
		vals := make(map[string]float64, len(e.Actions))
		acts := make([]A, 0, len(e.Actions))
		for _, av := range e.Actions {
			vals[av.Action.Hash()] = av.Value
			acts = append(acts, av.Action)
		}
		q.values[hash] = vals
		q.actions[hash] = acts
	}
	return q
}

// Has reports whether state is a key of the table.
func (q *QTable[A]) Has(state core.State[A]) bool {
	_, ok := q.values[state.Hash()]
	return ok
}

// Size is the number of states in the table.
func (q *QTable[A]) Size() int {
	return len(q.values)
}

// PossibleActions returns a snapshot of the state's actions and their
// current values, in a stable per-state order.
func (q *QTable[A]) PossibleActions(state core.State[A]) ([]core.ActionValue[A], error) {
	return q.snapshot(state)
}

func (q *QTable[A]) snapshot(state core.State[A]) ([]core.ActionValue[A], error) {
	hash := state.Hash()
	vals, ok := q.values[hash]
	if !ok {
		return nil, errors.Wrapf(core.ErrUnknownState, "state %s", hash)
	}
	out := make([]core.ActionValue[A], 0, len(vals))
	for _, a := range q.actions[hash] {
		val, ok := vals[a.Hash()]
		if !ok {
			return nil, errors.Wrapf(core.ErrUnknownState, "state %s has no entry for action %s", hash, a.Hash())
		}
		out = append(out, core.ActionValue[A]{Action: a, Value: val})
	}
	return out, nil
}

// BestAction returns the best-valued action for state, delegating
// tie-breaking to the state's SelectBest with the table's random
// source.
func (q *QTable[A]) BestAction(state core.State[A]) (core.ActionValue[A], error) {
	choices, err := q.snapshot(state)
	if err != nil {
		return core.ActionValue[A]{}, err
	}
	if len(choices) == 0 {
		return core.ActionValue[A]{}, errors.Wrapf(core.ErrNoActions, "state %s", state.Hash())
	}
	return state.SelectBest(choices, q.rand), nil
}

// NextAction is the epsilon-greedy policy step for the given episode.
// With probability epsilon + Dropoff/(episode+Dropoff) a uniformly
// random action is returned, otherwise the best one. Early episodes
// push the rate above 1 so training starts fully exploratory and
// decays toward the base epsilon.
func (q *QTable[A]) NextAction(state core.State[A], episode int) (core.ActionValue[A], error) {
	choices, err := q.snapshot(state)
	if err != nil {
		return core.ActionValue[A]{}, err
	}
	if len(choices) == 0 {
		return core.ActionValue[A]{}, errors.Wrapf(core.ErrNoActions, "state %s", state.Hash())
	}
	if q.rand.Float64() < explorationRate(q.epsilon, episode) {
		return choices[q.rand.Intn(len(choices))], nil
	}
	return state.SelectBest(choices, q.rand), nil
}

func explorationRate(epsilon float64, episode int) float64 {
	return epsilon + Dropoff/(float64(episode)+Dropoff)
}

// SoftmaxAction samples an action with Boltzmann weights
// exp(value/temperature), normalized after shifting by the largest
// value for numerical stability.
func (q *QTable[A]) SoftmaxAction(state core.State[A], temperature float64) (core.ActionValue[A], error) {
	choices, err := q.snapshot(state)
	if err != nil {
		return core.ActionValue[A]{}, err
	}
	if len(choices) == 0 {
		return core.ActionValue[A]{}, errors.Wrapf(core.ErrNoActions, "state %s", state.Hash())
	}

	largest := choices[0].Value
	for _, av := range choices {
		if av.Value > largest {
			largest = av.Value
		}
	}
	weights := make([]float64, len(choices))
	for i, av := range choices {
		weights[i] = math.Exp((av.Value - largest) / temperature)
	}
	i, ok := sampleuv.NewWeighted(weights, q.rand).Take()
	if !ok {
		return state.SelectBest(choices, q.rand), nil
	}
	return choices[i], nil
}

// Update applies the one-step Q-learning rule to the (state, action)
// entry:
//
//	new = old + learningRate * (reward + discount*future - old)
//
// where reward is nextState's immediate reward and future is the value
// of nextState's best action, or 0.0 when nextState is terminal. The
// stored value is overwritten in place.
func (q *QTable[A]) Update(state core.State[A], action A, nextState core.State[A], learningRate, discount float64) error {
	hash := state.Hash()
	vals, ok := q.values[hash]
	if !ok {
		return errors.Wrapf(core.ErrUnknownState, "state %s", hash)
	}
	old, ok := vals[action.Hash()]
	if !ok {
		return errors.Wrapf(core.ErrUnknownState, "state %s has no entry for action %s", hash, action.Hash())
	}

	future := 0.0
	nextChoices, err := q.snapshot(nextState)
	if err != nil {
		return err
	}
	if len(nextChoices) > 0 {
		future = nextState.SelectBest(nextChoices, q.rand).Value
	}

	reward := nextState.Reward()
	updated := old + learningRate*(reward+discount*future-old)
	vals[action.Hash()] = updated
	glog.V(2).Infof("Updated (%s, %s): %f -> %f", hash, action.Hash(), old, updated)
	return nil
}

// Actions returns the live action-value map for a state. It is an
// inspection escape hatch; mutating it is not part of the contract.
func (q *QTable[A]) Actions(state core.State[A]) (map[string]float64, error) {
	hash := state.Hash()
	vals, ok := q.values[hash]
	if !ok {
		return nil, errors.Wrapf(core.ErrUnknownState, "state %s", hash)
	}
	return vals, nil
}

// FirstPositiveEntries renders up to n states whose action values sum
// to a strictly positive total, in map iteration order. Diagnostic
// output only.
func (q *QTable[A]) FirstPositiveEntries(n int) string {
	buf := new(bytes.Buffer)
	count := 0
	for hash, vals := range q.values {
		if count >= n {
			break
		}
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if sum <= 0 {
			continue
		}
		fmt.Fprintf(buf, "%s:", hash)
		for _, a := range q.actions[hash] {
			fmt.Fprintf(buf, " %s=%f", a.Hash(), vals[a.Hash()])
		}
		fmt.Fprintln(buf)
		count++
	}
	return buf.String()
}

package trainer

import (
	"sync"

	"github.com/zeu5/qtable/core"
)

// Step is one transition of an episode.
type Step[A core.Action] struct {
	State     core.State[A]
	Action    A
	NextState core.State[A]
	Reward    float64
}

// Trace records the steps of a single episode.
type Trace[A core.Action] struct {
	mtx   *sync.Mutex
	steps []*Step[A]
}

func NewTrace[A core.Action]() *Trace[A] {
	return &Trace[A]{
		mtx:   &sync.Mutex{},
		steps: make([]*Step[A], 0),
	}
}

func (t *Trace[A]) AddStep(s *Step[A]) {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	t.steps = append(t.steps, s)
}

func (t *Trace[A]) Step(i int) *Step[A] {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return t.steps[i]
}

func (t *Trace[A]) Len() int {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	return len(t.steps)
}

func (t *Trace[A]) Last() *Step[A] {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	if len(t.steps) == 0 {
		return nil
	}
	return t.steps[len(t.steps)-1]
}

// Return is the cumulative reward over the episode.
func (t *Trace[A]) Return() float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()
	total := 0.0
	for _, s := range t.steps {
		total += s.Reward
	}
	return total
}

// Package trainer drives Q-learning episodes against a qtable.QTable.
package trainer

import (
	"context"
	"fmt"
	"io"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/zeu5/qtable/core"
	"github.com/zeu5/qtable/qtable"
)

// Config controls a training run. Zero fields take the defaults:
// 1000 episodes, horizon 100, learning rate 0.1, discount 1.0.
type Config struct {
	Episodes     int
	Horizon      int
	LearningRate float64
	Discount     float64
}

func (c Config) withDefaults() Config {
	if c.Episodes == 0 {
		c.Episodes = 1000
	}
	if c.Horizon == 0 {
		c.Horizon = 100
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.1
	}
	if c.Discount == 0 {
		c.Discount = 1.0
	}
	return c
}

// Result accumulates the accounting of a training run.
type Result struct {
	CompletedEpisodes int       `json:"completed_episodes"`
	TotalSteps        int       `json:"total_steps"`
	TerminalEpisodes  int       `json:"terminal_episodes"`
	HorizonEpisodes   int       `json:"horizon_episodes"`
	Returns           []float64 `json:"returns"`
}

// Trainer runs sequential episodes, calling NextAction and Update on
// the table at every step. It is the table's single writer.
type Trainer[A core.Action] struct {
	table *qtable.QTable[A]
	cfg   Config
	out   io.Writer
}

// New creates a Trainer writing progress lines to out. A nil out
// silences progress output.
func New[A core.Action](table *qtable.QTable[A], cfg Config, out io.Writer) *Trainer[A] {
	return &Trainer[A]{
		table: table,
		cfg:   cfg.withDefaults(),
		out:   out,
	}
}

// Run trains from the initial state. Each episode walks the state graph
// until a terminal state or the horizon; the context is checked between
// episodes and cancellation returns the partial result with the
// context's error.
func (t *Trainer[A]) Run(ctx context.Context, initial core.State[A]) (*Result, error) {
	result := &Result{
		Returns: make([]float64, 0, t.cfg.Episodes),
	}

	for episode := 0; episode < t.cfg.Episodes; episode++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		trace := NewTrace[A]()
		state := initial
		terminal := false
		for step := 0; step < t.cfg.Horizon; step++ {
			av, err := t.table.NextAction(state, episode)
			if err != nil {
				if errors.Is(err, core.ErrNoActions) {
					terminal = true
					break
				}
				return result, err
			}
			nextState := state.Apply(av.Action)
			if err := t.table.Update(state, av.Action, nextState, t.cfg.LearningRate, t.cfg.Discount); err != nil {
				return result, err
			}
			trace.AddStep(&Step[A]{
				State:     state,
				Action:    av.Action,
				NextState: nextState,
				Reward:    nextState.Reward(),
			})
			state = nextState
		}

		episodeReturn := trace.Return()
		result.Returns = append(result.Returns, episodeReturn)
		result.TotalSteps += trace.Len()
		result.CompletedEpisodes++
		if terminal {
			result.TerminalEpisodes++
		} else {
			result.HorizonEpisodes++
		}

		glog.V(1).Infof("Episode %d: %d steps, return %f", episode, trace.Len(), episodeReturn)
		if t.out != nil {
			fmt.Fprintf(
				t.out,
				"Episode %d/%d, Steps: %d, Return: %.2f, Terminal: %d, Horizon: %d\n",
				episode+1, t.cfg.Episodes, trace.Len(), episodeReturn,
				result.TerminalEpisodes, result.HorizonEpisodes,
			)
		}
	}

	return result, nil
}

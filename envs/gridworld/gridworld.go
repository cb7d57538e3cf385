// Package gridworld is a small deterministic environment for exercising
// the table: a bounded grid with absorbing goal and pit cells.
package gridworld

import (
	"fmt"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/qtable/core"
)

type Move int

const (
	Up Move = iota
	Down
	Left
	Right
)

var moveNames = [...]string{"up", "down", "left", "right"}

func (m Move) String() string {
	return moveNames[m]
}

func (m Move) Hash() string {
	return moveNames[m]
}

// Point is a cell coordinate on the grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Config describes the grid. Goal and pit cells are absorbing: arriving
// there ends the episode.
type Config struct {
	Width  int
	Height int
	Goal   Point
	Pits   []Point

	StepCost   float64
	GoalReward float64
	PitPenalty float64
}

type Grid struct {
	cfg  Config
	pits map[Point]struct{}
}

// New creates a grid. Width and Height default to 5, GoalReward to 10
// and PitPenalty to -10; the goal defaults to the far corner.
func New(cfg Config) *Grid {
	if cfg.Width == 0 {
		cfg.Width = 5
	}
	if cfg.Height == 0 {
		cfg.Height = 5
	}
	if cfg.Goal == (Point{}) {
		cfg.Goal = Point{X: cfg.Width - 1, Y: cfg.Height - 1}
	}
	if cfg.GoalReward == 0 {
		cfg.GoalReward = 10
	}
	if cfg.PitPenalty == 0 {
		cfg.PitPenalty = -10
	}
	pits := make(map[Point]struct{}, len(cfg.Pits))
	for _, p := range cfg.Pits {
		pits[p] = struct{}{}
	}
	return &Grid{cfg: cfg, pits: pits}
}

// Start is the state at the origin cell.
func (g *Grid) Start() core.State[Move] {
	return &State{grid: g}
}

// At is the state at the given cell.
func (g *Grid) At(x, y int) core.State[Move] {
	return &State{X: x, Y: y, grid: g}
}

func (g *Grid) isAbsorbing(p Point) bool {
	if p == g.cfg.Goal {
		return true
	}
	_, pit := g.pits[p]
	return pit
}

func (g *Grid) step(p Point, m Move) Point {
	next := p
	switch m {
	case Up:
		next.Y--
	case Down:
		next.Y++
	case Left:
		next.X--
	case Right:
		next.X++
	}
	if next.X < 0 || next.X >= g.cfg.Width || next.Y < 0 || next.Y >= g.cfg.Height {
		return p
	}
	return next
}

// State is one cell of the grid.
type State struct {
	X, Y int

	grid *Grid
}

var _ core.State[Move] = &State{}

func (s *State) Hash() string {
	return fmt.Sprintf("%d,%d", s.X, s.Y)
}

// Actions lists the moves that change the cell. Absorbing cells have
// none.
func (s *State) Actions() []Move {
	p := Point{X: s.X, Y: s.Y}
	if s.grid.isAbsorbing(p) {
		return nil
	}
	moves := make([]Move, 0, 4)
	for _, m := range []Move{Up, Down, Left, Right} {
		if s.grid.step(p, m) != p {
			moves = append(moves, m)
		}
	}
	return moves
}

func (s *State) Apply(m Move) core.State[Move] {
	next := s.grid.step(Point{X: s.X, Y: s.Y}, m)
	return &State{X: next.X, Y: next.Y, grid: s.grid}
}

// Reward is for having arrived in this cell.
func (s *State) Reward() float64 {
	p := Point{X: s.X, Y: s.Y}
	if p == s.grid.cfg.Goal {
		return s.grid.cfg.GoalReward
	}
	if _, pit := s.grid.pits[p]; pit {
		return s.grid.cfg.PitPenalty
	}
	return s.grid.cfg.StepCost
}

func (s *State) SelectBest(choices []core.ActionValue[Move], rand *erand.Rand) core.ActionValue[Move] {
	return core.MaxActionValue(choices, rand)
}

package gridworld

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/qtable/qtable"
)

func TestGrid(t *testing.T) {
	Convey("Given a 3x3 grid with a goal and a pit", t, func() {
		grid := New(Config{
			Width:      3,
			Height:     3,
			Goal:       Point{X: 2, Y: 2},
			Pits:       []Point{{X: 1, Y: 1}},
			StepCost:   -1,
			GoalReward: 10,
			PitPenalty: -10,
		})

		Convey("Corner cells have two moves", func() {
			So(grid.Start().Actions(), ShouldResemble, []Move{Down, Right})
		})

		Convey("Edge cells have three moves", func() {
			So(grid.At(1, 0).Actions(), ShouldHaveLength, 3)
			So(grid.At(1, 2).Actions(), ShouldResemble, []Move{Up, Left, Right})
		})

		Convey("Goal and pit cells are terminal", func() {
			So(grid.At(2, 2).Actions(), ShouldBeEmpty)
			So(grid.At(1, 1).Actions(), ShouldBeEmpty)
		})

		Convey("Moves off the edge are not offered", func() {
			start := grid.Start()
			for _, m := range start.Actions() {
				So(m, ShouldNotEqual, Up)
				So(m, ShouldNotEqual, Left)
			}
		})

		Convey("Apply walks one cell", func() {
			next := grid.Start().Apply(Right)
			So(next.Hash(), ShouldEqual, "1,0")
		})

		Convey("Rewards follow the cell type", func() {
			So(grid.At(2, 2).Reward(), ShouldEqual, 10.0)
			So(grid.At(1, 1).Reward(), ShouldEqual, -10.0)
			So(grid.At(0, 1).Reward(), ShouldEqual, -1.0)
		})

		Convey("Table traversal discovers every cell", func() {
			table := qtable.New(grid.Start(), qtable.Params{
				Rand: erand.New(erand.NewSource(1)),
			})
			So(table.Size(), ShouldEqual, 9)
		})
	})

	Convey("An empty config takes defaults", t, func() {
		grid := New(Config{})
		So(grid.At(4, 4).Actions(), ShouldBeEmpty)
		So(grid.At(4, 4).Reward(), ShouldEqual, 10.0)
		So(grid.Start().Reward(), ShouldEqual, 0.0)
	})
}

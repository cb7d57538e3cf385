package trainer

import (
	"bytes"
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/qtable/envs/gridworld"
	"github.com/zeu5/qtable/qtable"
)

func TestTrainer(t *testing.T) {
	Convey("Given a table over a small grid", t, func() {
		grid := gridworld.New(gridworld.Config{
			Width:      3,
			Height:     3,
			Goal:       gridworld.Point{X: 2, Y: 2},
			GoalReward: 10,
		})
		table := qtable.New(grid.Start(), qtable.Params{
			Rand: erand.New(erand.NewSource(42)),
		})

		Convey("A run accounts for every episode", func() {
			out := new(bytes.Buffer)
			result, err := New(table, Config{
				Episodes: 50,
				Horizon:  20,
			}, out).Run(context.Background(), grid.Start())

			So(err, ShouldBeNil)
			So(result.CompletedEpisodes, ShouldEqual, 50)
			So(result.Returns, ShouldHaveLength, 50)
			So(result.TerminalEpisodes+result.HorizonEpisodes, ShouldEqual, 50)
			So(result.TotalSteps, ShouldBeGreaterThan, 0)
			So(out.String(), ShouldContainSubstring, "Episode 50/50")
		})

		Convey("Training propagates value back to the start", func() {
			result, err := New(table, Config{
				Episodes: 300,
				Horizon:  30,
				Discount: 0.9,
			}, nil).Run(context.Background(), grid.Start())

			So(err, ShouldBeNil)
			So(result.TerminalEpisodes, ShouldBeGreaterThan, 0)

			best, err := table.BestAction(grid.Start())
			So(err, ShouldBeNil)
			So(best.Value, ShouldBeGreaterThan, 0)
		})

		Convey("A cancelled context stops the run", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := New(table, Config{Episodes: 50}, nil).Run(ctx, grid.Start())
			So(err, ShouldEqual, context.Canceled)
			So(result.CompletedEpisodes, ShouldEqual, 0)
		})
	})
}

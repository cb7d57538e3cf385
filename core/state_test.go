package core

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	erand "golang.org/x/exp/rand"
)

type move string

func (m move) Hash() string { return string(m) }

func TestMaxActionValue(t *testing.T) {
	Convey("Given a list of action values", t, func() {
		rand := erand.New(erand.NewSource(7))

		Convey("The single maximum is always picked", func() {
			choices := []ActionValue[move]{
				{Action: move("a"), Value: 1.0},
				{Action: move("b"), Value: 3.0},
				{Action: move("c"), Value: 2.0},
			}
			for i := 0; i < 20; i++ {
				av := MaxActionValue(choices, rand)
				So(av.Action, ShouldEqual, move("b"))
				So(av.Value, ShouldEqual, 3.0)
			}
		})

		Convey("Ties are broken among the tied actions only", func() {
			choices := []ActionValue[move]{
				{Action: move("a"), Value: 3.0},
				{Action: move("b"), Value: 1.0},
				{Action: move("c"), Value: 3.0},
			}
			seen := map[move]bool{}
			for i := 0; i < 100; i++ {
				av := MaxActionValue(choices, rand)
				So(av.Value, ShouldEqual, 3.0)
				seen[av.Action] = true
			}
			So(seen[move("a")], ShouldBeTrue)
			So(seen[move("c")], ShouldBeTrue)
			So(seen[move("b")], ShouldBeFalse)
		})
	})
}

package analysis

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSummarize(t *testing.T) {
	Convey("Given a series of returns", t, func() {
		returns := []float64{1, 2, 3, 4}

		Convey("Summarize reports the basic statistics", func() {
			stats := Summarize(returns)
			So(stats.Episodes, ShouldEqual, 4)
			So(stats.Mean, ShouldAlmostEqual, 2.5)
			So(stats.StdDev, ShouldAlmostEqual, 1.2909944487358056)
			So(stats.Min, ShouldEqual, 1.0)
			So(stats.Max, ShouldEqual, 4.0)
			So(stats.Final, ShouldEqual, 4.0)
		})

		Convey("WindowMean averages the trailing window", func() {
			So(WindowMean(returns, 2), ShouldAlmostEqual, 3.5)
			So(WindowMean(returns, 10), ShouldAlmostEqual, 2.5)
		})
	})

	Convey("Empty inputs yield zero values", t, func() {
		So(Summarize(nil), ShouldResemble, ReturnStats{})
		So(WindowMean(nil, 5), ShouldEqual, 0.0)
		So(WindowMean([]float64{1}, 0), ShouldEqual, 0.0)
	})
}

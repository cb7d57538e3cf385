// Package analysis summarizes per-episode returns of a training run.
package analysis

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

type ReturnStats struct {
	Episodes int     `json:"episodes"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Final    float64 `json:"final"`
}

// Summarize computes statistics over the per-episode returns. An empty
// slice yields the zero stats.
func Summarize(returns []float64) ReturnStats {
	if len(returns) == 0 {
		return ReturnStats{}
	}
	return ReturnStats{
		Episodes: len(returns),
		Mean:     stat.Mean(returns, nil),
		StdDev:   stat.StdDev(returns, nil),
		Min:      slices.Min(returns),
		Max:      slices.Max(returns),
		Final:    returns[len(returns)-1],
	}
}

// WindowMean is the mean over the trailing n returns, or over all of
// them when fewer are available.
func WindowMean(returns []float64, n int) float64 {
	if len(returns) == 0 || n <= 0 {
		return 0
	}
	if n > len(returns) {
		n = len(returns)
	}
	return stat.Mean(returns[len(returns)-n:], nil)
}

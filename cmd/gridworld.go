package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/qtable/analysis"
	"github.com/zeu5/qtable/envs/gridworld"
	"github.com/zeu5/qtable/qtable"
	"github.com/zeu5/qtable/trainer"
	"github.com/zeu5/qtable/util"
)

func GridworldCommand() *cobra.Command {
	var (
		width      int
		height     int
		pits       []string
		stepCost   float64
		goalReward float64
		pitPenalty float64
	)

	cmd := &cobra.Command{
		Use:   "gridworld",
		Short: "Train on a bounded grid with an absorbing goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)

			doneCh := make(chan struct{})
			defer close(doneCh)

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				select {
				case <-sigCh:
				case <-doneCh:
				}
				cancel()
			}()

			pitPoints, err := parsePoints(pits)
			if err != nil {
				return err
			}
			grid := gridworld.New(gridworld.Config{
				Width:      width,
				Height:     height,
				Pits:       pitPoints,
				StepCost:   stepCost,
				GoalReward: goalReward,
				PitPenalty: pitPenalty,
			})

			seed := flags.Seed
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			table := qtable.New(grid.Start(), qtable.Params{
				Epsilon: flags.Epsilon,
				Rand:    erand.New(erand.NewSource(seed)),
			})
			fmt.Printf("Built table with %d states\n", table.Size())

			progress := util.NewProgressWriter(100 * time.Millisecond)
			progress.Start()
			result, err := trainer.New(table, trainer.Config{
				Episodes:     flags.Episodes,
				Horizon:      flags.Horizon,
				LearningRate: flags.LearningRate,
				Discount:     flags.Discount,
			}, progress).Run(ctx, grid.Start())
			progress.Stop()
			if err != nil {
				return err
			}

			stats := analysis.Summarize(result.Returns)
			fmt.Printf(
				"Episodes: %d (terminal: %d, horizon: %d), Steps: %d\n",
				result.CompletedEpisodes, result.TerminalEpisodes,
				result.HorizonEpisodes, result.TotalSteps,
			)
			fmt.Printf(
				"Return: mean %.3f, stddev %.3f, min %.3f, max %.3f, last-100 mean %.3f\n",
				stats.Mean, stats.StdDev, stats.Min, stats.Max,
				analysis.WindowMean(result.Returns, 100),
			)

			if err := flags.Record(); err != nil {
				return err
			}
			return util.SaveJSON(path.Join(flags.SavePath, "gridworld.json"), map[string]interface{}{
				"result": result,
				"stats":  stats,
			})
		},
	}

	cmd.Flags().IntVar(&width, "width", 5, "Grid width")
	cmd.Flags().IntVar(&height, "height", 5, "Grid height")
	cmd.Flags().StringArrayVar(&pits, "pits", nil, "Pit cells as x,y pairs (repeatable)")
	cmd.Flags().Float64Var(&stepCost, "step-cost", 0, "Reward for entering a regular cell")
	cmd.Flags().Float64Var(&goalReward, "goal-reward", 10, "Reward for entering the goal cell")
	cmd.Flags().Float64Var(&pitPenalty, "pit-penalty", -10, "Reward for entering a pit cell")

	return cmd
}

func parsePoints(specs []string) ([]gridworld.Point, error) {
	points := make([]gridworld.Point, 0, len(specs))
	for _, s := range specs {
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, errors.Errorf("invalid point %q, want x,y", s)
		}
		x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid point %q", s)
		}
		y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid point %q", s)
		}
		points = append(points, gridworld.Point{X: x, Y: y})
	}
	return points, nil
}

package cmd

import (
	"path"

	"github.com/spf13/cobra"

	"github.com/zeu5/qtable/util"
)

type Flags struct {
	SavePath string
	Seed     uint64
	Epsilon  float64
	RunFlags
}

type RunFlags struct {
	Episodes     int
	Horizon      int
	LearningRate float64
	Discount     float64
}

func DefaultFlags() *Flags {
	return &Flags{
		SavePath: "results",
		Seed:     0,
		Epsilon:  0.01,
		RunFlags: RunFlags{
			Episodes:     1000,
			Horizon:      100,
			LearningRate: 0.1,
			Discount:     1.0,
		},
	}
}

func (f *Flags) Record() error {
	return util.SaveJSON(path.Join(f.SavePath, "config.json"), f)
}

var flags = DefaultFlags()

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flags.SavePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().Uint64Var(&flags.Seed, "seed", flags.Seed, "Random seed (0 uses the current time)")
	cmd.PersistentFlags().Float64Var(&flags.Epsilon, "epsilon", flags.Epsilon, "Base exploration rate")
	cmd.PersistentFlags().IntVar(&flags.Episodes, "episodes", flags.Episodes, "Number of episodes")
	cmd.PersistentFlags().IntVar(&flags.Horizon, "horizon", flags.Horizon, "Maximum steps per episode")
	cmd.PersistentFlags().Float64Var(&flags.LearningRate, "learning-rate", flags.LearningRate, "Q-learning step size")
	cmd.PersistentFlags().Float64Var(&flags.Discount, "discount", flags.Discount, "Future reward discount")
}

package cmd

import "github.com/spf13/cobra"

func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qtable",
		Short: "Train tabular Q-learning agents",
	}
	AddFlags(cmd)

	cmd.AddCommand(
		GridworldCommand(),
	)

	return cmd
}

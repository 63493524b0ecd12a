package benchmarks

import (
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-mdp/runner"
	"github.com/zeu5/tabular-mdp/types"
)

// Compare runs the sampling based algorithms on the same world and plots
// their smoothed episode returns side by side
func Compare(algorithms []string, p runner.Params, window int, out io.Writer) error {
	comparison := types.NewComparison(types.MovingAverageReturns(window), types.ReturnCurvePlotter(saveFile))
	for _, name := range algorithms {
		name := strings.TrimSpace(name)
		e := types.NewExperiment(name, p.Episodes, func(observer types.Observer) error {
			_, err := runner.Run(name, p, observer)
			return err
		})
		e.SetOutput(out)
		comparison.AddExperiment(e)
	}
	return comparison.Run()
}

func CompareCommand() *cobra.Command {
	var algorithms []string
	var window int

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare the returns of learning algorithms on the selected world",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Compare(algorithms, params(), window, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringSliceVar(&algorithms, "algorithms", []string{runner.Sarsa, runner.QLearning, runner.MCOnPolicy}, "Algorithms to compare")
	cmd.Flags().IntVar(&window, "window", 50, "Window of the moving average over episode returns")
	return cmd
}

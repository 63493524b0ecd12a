package benchmarks

import (
	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-mdp/runner"
)

var (
	episodes int
	horizon  int
	saveFile string
	seed     uint64

	world  string
	size   int
	width  int
	height int

	gamma   float64
	theta   float64
	alpha   float64
	epsilon float64

	record bool
	plots  bool

	cpuprofile string
	memprofile string
)

func GetRootCommand() *cobra.Command {
	defaults := runner.DefaultParams()
	rootCommand := &cobra.Command{
		Use:               "tabular-mdp",
		Short:             "Solve small tabular MDPs with dynamic programming, Monte Carlo and TD learning",
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return startProfiling() },
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return stopProfiling()
		},
	}
	rootCommand.PersistentFlags().IntVarP(&episodes, "episodes", "e", defaults.Episodes, "Number of episodes to run")
	rootCommand.PersistentFlags().IntVar(&horizon, "horizon", defaults.MaxSteps, "Maximum number of steps of each episode")
	rootCommand.PersistentFlags().StringVarP(&saveFile, "save", "s", "results", "Save the result data in the specified folder")
	rootCommand.PersistentFlags().Uint64Var(&seed, "seed", 0, "Seed of the random source, 0 seeds from the clock")

	rootCommand.PersistentFlags().StringVar(&world, "world", defaults.World, "World to solve: line or grid")
	rootCommand.PersistentFlags().IntVar(&size, "size", defaults.Size, "Number of states of the line world")
	rootCommand.PersistentFlags().IntVar(&width, "width", defaults.Width, "Width of the grid world")
	rootCommand.PersistentFlags().IntVar(&height, "height", defaults.Height, "Height of the grid world")

	rootCommand.PersistentFlags().Float64Var(&gamma, "gamma", defaults.Gamma, "Discount factor")
	rootCommand.PersistentFlags().Float64Var(&theta, "theta", defaults.Theta, "Convergence threshold of policy evaluation")
	rootCommand.PersistentFlags().Float64Var(&alpha, "alpha", defaults.Alpha, "Learning rate of TD methods")
	rootCommand.PersistentFlags().Float64Var(&epsilon, "epsilon", defaults.Epsilon, "Exploration rate of control methods")

	rootCommand.PersistentFlags().BoolVar(&record, "record", false, "Record the resulting tables as json in the save folder")
	rootCommand.PersistentFlags().BoolVar(&plots, "plot", false, "Plot the resulting values in the save folder")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a cpu profile to this file in the save folder")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a memory profile to this file in the save folder")

	// adding the subcommands here
	for _, name := range runner.Algorithms() {
		rootCommand.AddCommand(SolveCommand(name))
	}
	rootCommand.AddCommand(CompareCommand())
	rootCommand.AddCommand(ServeCommand())
	return rootCommand
}

// params maps the persistent flags onto runner parameters
func params() runner.Params {
	return runner.Params{
		World:    world,
		Size:     size,
		Width:    width,
		Height:   height,
		Gamma:    gamma,
		Theta:    theta,
		Alpha:    alpha,
		Epsilon:  epsilon,
		Episodes: episodes,
		MaxSteps: horizon,
		Seed:     seed,
	}
}

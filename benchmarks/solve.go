package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/spf13/cobra"
	"github.com/zeu5/tabular-mdp/grid"
	"github.com/zeu5/tabular-mdp/policies"
	"github.com/zeu5/tabular-mdp/runner"
	"github.com/zeu5/tabular-mdp/types"
	"github.com/zeu5/tabular-mdp/util"
	"gonum.org/v1/gonum/mat"
)

// Solve runs one algorithm with the given parameters, prints the tables
// and optionally records and plots them
func Solve(name string, p runner.Params, out io.Writer) (*runner.Result, error) {
	var result *runner.Result
	experiment := types.NewExperiment(name, p.Episodes, func(observer types.Observer) error {
		var err error
		result, err = runner.Run(name, p, observer)
		return err
	})
	experiment.SetOutput(out)
	if err := experiment.Run(); err != nil {
		return nil, err
	}
	if len(experiment.Result) > 0 {
		fmt.Fprintf(out, "Mean return over %d episodes: %.4f\n", len(experiment.Result), types.MeanReturn(experiment.Result))
	}
	printResult(out, result)

	if record {
		bs, err := json.Marshal(result)
		if err != nil {
			return nil, err
		}
		if err := util.WriteToFile(path.Join(saveFile, name+".json"), string(bs)); err != nil {
			return nil, err
		}
		if len(experiment.Result) > 0 {
			lines := make([]string, len(experiment.Result))
			for i, stats := range experiment.Result {
				bs, _ := json.Marshal(stats)
				lines[i] = string(bs)
			}
			if err := util.WriteToFile(path.Join(saveFile, name+"_episodes.jsonl"), lines...); err != nil {
				return nil, err
			}
		}
	}
	if plots {
		if err := plotResult(result, path.Join(saveFile, name+"_values.png")); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// stateValues returns V, or max_a Q(s, a) for control results
func stateValues(result *runner.Result) *mat.VecDense {
	if result.V != nil {
		return result.V
	}
	states, _ := result.Q.Dims()
	v := mat.NewVecDense(states, nil)
	for s := 0; s < states; s++ {
		v.SetVec(s, policies.MaxValue(result.Q, s))
	}
	return v
}

func printResult(out io.Writer, result *runner.Result) {
	w := result.World
	fmt.Fprintf(out, "Values:\n%s", w.ValuesString(stateValues(result)))
	if result.Q != nil {
		fmt.Fprintln(out, "Action values:")
		states, _ := result.Q.Dims()
		for s := 0; s < states; s++ {
			fmt.Fprintf(out, "%4d:", s)
			for _, q := range result.Q.RawRowView(s) {
				fmt.Fprintf(out, " %8.3f", q)
			}
			fmt.Fprintln(out)
		}
	}
	if runner.IsControl(result.Algorithm) {
		fmt.Fprintf(out, "Policy:\n%s", w.PolicyString(result.Policy))
	}
}

func plotResult(result *runner.Result, file string) error {
	if err := os.MkdirAll(path.Dir(file), os.ModePerm); err != nil {
		return err
	}
	title := result.Algorithm + " on " + result.World.Name
	if result.World.Height == 1 {
		return types.PlotStateValues(stateValues(result), title, file)
	}
	return grid.PlotValues(result.World, stateValues(result), title, file)
}

func SolveCommand(name string) *cobra.Command {
	var exploringStarts bool
	var epsilonGreedyBehaviour bool

	cmd := &cobra.Command{
		Use:   name,
		Short: "Run " + name + " on the selected world",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := params()
			p.ExploringStarts = exploringStarts
			p.EpsilonGreedyBehaviour = epsilonGreedyBehaviour
			_, err := Solve(name, p, cmd.OutOrStdout())
			return err
		},
	}
	switch name {
	case runner.MCPrediction, runner.MCOnPolicy:
		cmd.Flags().BoolVar(&exploringStarts, "exploring-starts", false, "Start episodes from uniformly drawn states")
	case runner.MCOffPolicy:
		cmd.Flags().BoolVar(&exploringStarts, "exploring-starts", true, "Start episodes from uniformly drawn states")
		cmd.Flags().BoolVar(&epsilonGreedyBehaviour, "epsilon-greedy-behaviour", false, "Use an epsilon-greedy behaviour policy instead of the uniform one")
	}
	return cmd
}

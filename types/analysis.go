package types

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// MovingAverageReturns smooths the episode returns over a trailing window
func MovingAverageReturns(window int) Analyzer {
	if window < 1 {
		window = 1
	}
	return func(_ string, stats []EpisodeStats) DataSet {
		returns := make([]float64, len(stats))
		for i, s := range stats {
			returns[i] = s.Return
		}
		smoothed := make([]float64, len(returns))
		for i := range returns {
			from := i - window + 1
			if from < 0 {
				from = 0
			}
			smoothed[i] = stat.Mean(returns[from:i+1], nil)
		}
		return smoothed
	}
}

// MeanReturn is the average return over all recorded episodes
func MeanReturn(stats []EpisodeStats) float64 {
	if len(stats) == 0 {
		return 0
	}
	returns := make([]float64, len(stats))
	for i, s := range stats {
		returns[i] = s.Return
	}
	return stat.Mean(returns, nil)
}

// ReturnCurvePlotter draws one line per experiment into plotPath/returns.png
func ReturnCurvePlotter(plotPath string) Comparator {
	return func(names []string, ds []DataSet) error {
		if err := os.MkdirAll(plotPath, os.ModePerm); err != nil {
			return err
		}
		p := plot.New()
		p.Title.Text = "Comparison"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Return"
		for i := 0; i < len(names); i++ {
			returns := ds[i].([]float64)
			points := make(plotter.XYs, len(returns))
			for j, r := range returns {
				points[j] = plotter.XY{X: float64(j), Y: r}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(returns) > 0 {
				fmt.Printf("Final smoothed return: %.4f for experiment: %s\n", returns[len(returns)-1], names[i])
			}
		}
		return p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, "returns.png"))
	}
}

// PlotStateValues saves V as a bar chart, one bar per state
func PlotStateValues(v *mat.VecDense, title, file string) error {
	values := make(plotter.Values, v.Len())
	labels := make([]string, v.Len())
	for s := 0; s < v.Len(); s++ {
		values[s] = v.AtVec(s)
		labels[s] = strconv.Itoa(s)
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "State"
	p.Y.Label.Text = "Value"
	bars, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)
	return p.Save(8*vg.Inch, 4*vg.Inch, file)
}

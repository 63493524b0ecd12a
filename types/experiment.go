package types

import (
	"fmt"
	"io"
	"os"
)

// EpisodeStats summarises one finished episode of a sampling-based algorithm
type EpisodeStats struct {
	Episode int     `json:"episode"`
	Steps   int     `json:"steps"`
	Return  float64 `json:"return"`
}

// Observer is notified after every episode. A nil Observer is ignored.
type Observer func(EpisodeStats)

func (o Observer) Notify(stats EpisodeStats) {
	if o != nil {
		o(stats)
	}
}

// RunFunc runs one algorithm invocation reporting episodes to the observer
type RunFunc func(Observer) error

// Experiment is a named algorithm run whose episode statistics are recorded
type Experiment struct {
	Name     string
	Result   []EpisodeStats
	episodes int
	run      RunFunc
	out      io.Writer
}

// NewExperiment creates a new experiment instance
func NewExperiment(name string, episodes int, run RunFunc) *Experiment {
	return &Experiment{
		Name:     name,
		Result:   make([]EpisodeStats, 0),
		episodes: episodes,
		run:      run,
		out:      os.Stdout,
	}
}

// SetOutput redirects the progress line
func (e *Experiment) SetOutput(w io.Writer) {
	e.out = w
}

func (e *Experiment) Run() error {
	fmt.Fprintf(e.out, "Running Experiment: %s\n", e.Name)
	e.Result = make([]EpisodeStats, 0, e.episodes)
	err := e.run(func(stats EpisodeStats) {
		e.Result = append(e.Result, stats)
		fmt.Fprintf(e.out, "\rExperiment: %s, Episode: %d/%d", e.Name, stats.Episode+1, e.episodes)
	})
	fmt.Fprintln(e.out, "")
	return err
}

type DataSet interface{}

type Analyzer func(string, []EpisodeStats) DataSet

type Comparator func([]string, []DataSet) error

// Comparison runs experiments one after another, analyzes each result
// and hands all datasets to the comparator
type Comparison struct {
	Experiments []*Experiment
	analyzer    Analyzer
	comparator  Comparator
}

func NewComparison(analyzer Analyzer, comparator Comparator) *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzer:    analyzer,
		comparator:  comparator,
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

func (c *Comparison) Run() error {
	datasets := make([]DataSet, len(c.Experiments))
	names := make([]string, len(c.Experiments))
	for i, e := range c.Experiments {
		if err := e.Run(); err != nil {
			return fmt.Errorf("experiment %s: %w", e.Name, err)
		}
		datasets[i] = c.analyzer(e.Name, e.Result)
		names[i] = e.Name
	}
	return c.comparator(names, datasets)
}

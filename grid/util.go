package grid

import (
	"fmt"
	"strings"

	"github.com/zeu5/tabular-mdp/types"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ValueDataSet lays state values out on the board for heat maps.
// Row 0 of the heat map is the bottom row of the board.
type ValueDataSet struct {
	Values []float64
	Height int
	Width  int
}

var _ plotter.GridXYZ = &ValueDataSet{}

func NewValueDataSet(w *World, v *mat.VecDense) *ValueDataSet {
	return &ValueDataSet{
		Values: types.VecValues(v),
		Height: w.Height,
		Width:  w.Width,
	}
}

func (g *ValueDataSet) Dims() (int, int) {
	return g.Width, g.Height
}

func (g *ValueDataSet) Z(c, r int) float64 {
	return g.Values[(g.Height-1-r)*g.Width+c]
}

func (g *ValueDataSet) X(c int) float64 {
	return float64(c)
}

func (g *ValueDataSet) Y(r int) float64 {
	return float64(r)
}

func (g *ValueDataSet) Min() float64 {
	min := g.Values[0]
	for _, v := range g.Values {
		if v < min {
			min = v
		}
	}
	return min
}

func (g *ValueDataSet) Max() float64 {
	max := g.Values[0]
	for _, v := range g.Values {
		if v > max {
			max = v
		}
	}
	return max
}

// PlotValues saves a heat map of v over the board
func PlotValues(w *World, v *mat.VecDense, title, file string) error {
	p := plot.New()
	p.Title.Text = title
	heat := plotter.NewHeatMap(NewValueDataSet(w, v), palette.Heat(12, 1))
	if heat.Min == heat.Max {
		heat.Max = heat.Min + 1
	}
	p.Add(heat)
	return p.Save(vg.Length(w.Width)*vg.Inch, vg.Length(w.Height)*vg.Inch+vg.Inch, file)
}

var arrows = map[Movement]string{
	MovementLeft:  "<",
	MovementRight: ">",
	MovementUp:    "^",
	MovementDown:  "v",
}

// PolicyString draws the most probable move of every state, terminals as #
func (w *World) PolicyString(p *types.Policy) string {
	var b strings.Builder
	for i := 0; i < w.Height; i++ {
		for j := 0; j < w.Width; j++ {
			s := w.StateOf(Position{I: i, J: j})
			if w.Model.IsTerminal(s) {
				b.WriteString("#")
			} else {
				b.WriteString(arrows[Movement(p.Greedy(s))])
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ValuesString prints v laid out on the board
func (w *World) ValuesString(v *mat.VecDense) string {
	var b strings.Builder
	for i := 0; i < w.Height; i++ {
		for j := 0; j < w.Width; j++ {
			fmt.Fprintf(&b, "%8.3f ", v.AtVec(w.StateOf(Position{I: i, J: j})))
		}
		b.WriteString("\n")
	}
	return b.String()
}

package types

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ArgMax returns the index of the largest value, the first one on ties
func ArgMax(values []float64) int {
	return floats.MaxIdx(values)
}

// RandomStateValues draws V(s) uniformly from [0, 1) and fixes terminal states at 0
func RandomStateValues(states int, isTerminal TerminalFunc, rng *Rand) *mat.VecDense {
	v := mat.NewVecDense(states, nil)
	for s := 0; s < states; s++ {
		if isTerminal(s) {
			continue
		}
		v.SetVec(s, rng.Float64())
	}
	return v
}

// RandomActionValues draws Q(s, a) uniformly from [0, 1) and zeroes terminal rows
func RandomActionValues(states, actions int, isTerminal TerminalFunc, rng *Rand) *mat.Dense {
	q := mat.NewDense(states, actions, nil)
	for s := 0; s < states; s++ {
		if isTerminal(s) {
			continue
		}
		for a := 0; a < actions; a++ {
			q.Set(s, a, rng.Float64())
		}
	}
	return q
}

// ZeroTerminalRows clears the rows of terminal states in q
func ZeroTerminalRows(q *mat.Dense, isTerminal TerminalFunc) {
	states, _ := q.Dims()
	for s := 0; s < states; s++ {
		if !isTerminal(s) {
			continue
		}
		row := q.RawRowView(s)
		for a := range row {
			row[a] = 0
		}
	}
}

// DenseRows copies a matrix into nested slices
func DenseRows(m *mat.Dense) [][]float64 {
	r, c := m.Dims()
	rows := make([][]float64, r)
	for i := 0; i < r; i++ {
		rows[i] = make([]float64, c)
		mat.Row(rows[i], i, m)
	}
	return rows
}

// VecValues copies a vector into a slice
func VecValues(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

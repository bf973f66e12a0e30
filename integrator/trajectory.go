package integrator

// Trajectory stores the samples of one integration: States[i] is the state at Times[i].
// A trajectory is never modified once returned by Solve.
type Trajectory struct {
	Times  []float64
	States [][]float64
}

// Len returns the number of samples, i.e. the number of steps plus one.
func (tr *Trajectory) Len() int {
	return len(tr.Times)
}

// At returns the i-th sample.
func (tr *Trajectory) At(i int) (float64, []float64) {
	return tr.Times[i], tr.States[i]
}

// Final returns the last sample.
func (tr *Trajectory) Final() (float64, []float64) {
	return tr.At(tr.Len() - 1)
}

// Column returns a copy of the time series of the idx-th state component.
func (tr *Trajectory) Column(idx int) []float64 {
	col := make([]float64, len(tr.States))
	for i, s := range tr.States {
		col[i] = s[idx]
	}
	return col
}

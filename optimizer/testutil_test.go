package optimizer

import "github.com/vecsummary/submod/objective"

// sumFunction is a minimal, stateless monotone submodular-ish stand-in used
// by tests that only care about optimizer bookkeeping (budgets, ids,
// fitted-ness, streaming support) rather than real submodularity.
type sumFunction struct{}

func (sumFunction) Value(solution [][]float64) float64 {
	var total float64
	for _, p := range solution {
		total += p[0]
	}
	return total
}

func (sumFunction) Peek(solution [][]float64, x []float64, pos int) (float64, error) {
	var total float64
	for i, p := range solution {
		if i == pos {
			continue
		}
		total += p[0]
	}
	total += x[0]
	return total, nil
}

func (sumFunction) Update(solution [][]float64, x []float64, pos int) error { return nil }

func (sumFunction) Clone() objective.Function { return sumFunction{} }

func intPtr(v int) *int { return &v }

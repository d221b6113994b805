package optimizer

import (
	"math/rand"

	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// Reservoir is the uniform-random streaming baseline. Offer implements
// Vitter's reservoir swap; Fit uses Floyd's sampling algorithm to draw K
// indices without replacement in one shot.
type Reservoir struct {
	*Base
	rng *rand.Rand
	n   int
}

// NewReservoir constructs a Reservoir optimizer seeded deterministically:
// the same seed yields the same sequence of selections given the same input.
func NewReservoir(k int, f objective.Function, seed int64) (*Reservoir, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &Reservoir{Base: b, rng: rand.New(rand.NewSource(seed))}, nil
}

// Offer implements Optimizer.
func (r *Reservoir) Offer(x []float64, id *int) error {
	peekTotal.WithLabelValues("reservoir").Inc()

	if len(r.solution) < r.K {
		val, err := r.Objective.Peek(r.solution, x, len(r.solution))
		if err != nil {
			return err
		}
		updateTotal.WithLabelValues("reservoir").Inc()
		if err := r.Objective.Update(r.solution, x, len(r.solution)); err != nil {
			return err
		}
		r.accept(x, id, len(r.solution), val)
	} else {
		j := r.rng.Intn(r.n+1) + 1 // uniform in {1, ..., n+1}
		if j <= r.K {
			pos := j - 1
			val, err := r.Objective.Peek(r.solution, x, pos)
			if err != nil {
				return err
			}
			updateTotal.WithLabelValues("reservoir").Inc()
			if err := r.Objective.Update(r.solution, x, pos); err != nil {
				return err
			}
			r.accept(x, id, pos, val)
		}
	}
	r.n++
	r.fitted = true
	return nil
}

// Fit samples K indices without replacement via Floyd's algorithm, then
// folds them into the summary in the order they were drawn.
func (r *Reservoir) Fit(points [][]float64, ids []int, maxIterations int) error {
	if len(ids) > 0 && len(ids) != len(points) {
		return &Error{Op: "Fit", Err: ErrIDsCardinalityMismatch}
	}
	withIDs := len(ids) == len(points) && len(ids) > 0

	n := len(points)
	k := r.K
	if k > n {
		k = n
	}

	for _, idx := range floydSample(n, k, r.rng) {
		val, err := r.Objective.Peek(r.solution, points[idx], len(r.solution))
		if err != nil {
			return err
		}
		if err := r.Objective.Update(r.solution, points[idx], len(r.solution)); err != nil {
			return err
		}
		var idp *int
		if withIDs {
			v := ids[idx]
			idp = &v
		}
		r.accept(points[idx], idp, len(r.solution), val)
	}
	r.n = n

	log.Debug().Int("k", k).Int("n", n).Msg("reservoir: batch fit via floyd sampling")
	return nil
}

// floydSample draws k indices without replacement from [0,n) using Floyd's
// algorithm, in the order they were selected.
func floydSample(n, k int, rng *rand.Rand) []int {
	selected := make(map[int]struct{}, k)
	result := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := rng.Intn(j + 1)
		if _, ok := selected[t]; !ok {
			selected[t] = struct{}{}
			result = append(result, t)
		} else {
			selected[j] = struct{}{}
			result = append(result, j)
		}
	}
	return result
}

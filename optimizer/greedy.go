package optimizer

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// Greedy is the offline optimizer achieving the classic 1-1/e approximation
// for non-negative monotone submodular functions.
type Greedy struct {
	*Base
}

// NewGreedy constructs a Greedy optimizer with cardinality budget k over f.
func NewGreedy(k int, f objective.Function) (*Greedy, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &Greedy{Base: b}, nil
}

// Offer always fails: Greedy is an offline optimizer, see Fit.
func (g *Greedy) Offer(x []float64, id *int) error {
	return &Error{Op: "Offer", Err: ErrStreamingUnsupported}
}

// Fit repeatedly picks the remaining candidate with the largest marginal
// gain until K elements have been selected or the candidate pool is empty.
// Ties keep the lowest remaining index (first-maximum semantics).
func (g *Greedy) Fit(points [][]float64, ids []int, maxIterations int) error {
	if len(ids) > 0 && len(ids) != len(points) {
		return &Error{Op: "Fit", Err: ErrIDsCardinalityMismatch}
	}
	withIDs := len(ids) == len(points) && len(ids) > 0

	start := time.Now()
	defer func() { offerDuration.WithLabelValues("greedy").Observe(time.Since(start).Seconds()) }()

	remaining := make([]int, len(points))
	for i := range remaining {
		remaining[i] = i
	}

	for len(g.solution) < g.K && len(remaining) > 0 {
		bestVal := 0.0
		bestPos := -1
		for ri, idx := range remaining {
			peekTotal.WithLabelValues("greedy").Inc()
			val, err := g.Objective.Peek(g.solution, points[idx], len(g.solution))
			if err != nil {
				return err
			}
			if bestPos == -1 || val > bestVal {
				bestVal = val
				bestPos = ri
			}
		}

		chosen := remaining[bestPos]
		updateTotal.WithLabelValues("greedy").Inc()
		if err := g.Objective.Update(g.solution, points[chosen], len(g.solution)); err != nil {
			return err
		}

		var idp *int
		if withIDs {
			v := ids[chosen]
			idp = &v
		}
		g.accept(points[chosen], idp, len(g.solution), bestVal)
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	log.Debug().Int("k", g.K).Int("selected", len(g.solution)).Msg("greedy: selection complete")
	return nil
}

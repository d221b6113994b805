package optimizer

import (
	"container/heap"

	"github.com/vecsummary/submod/objective"
)

// weightSlot pairs a frozen marginal gain with the solution slot it was
// measured for.
type weightSlot struct {
	weight float64
	slot   int
}

// weightHeap is a min-heap over weightSlot by weight, so the smallest
// frozen gain is always at the root.
type weightHeap []weightSlot

func (h weightHeap) Len() int           { return len(h) }
func (h weightHeap) Less(i, j int) bool { return h[i].weight < h[j].weight }
func (h weightHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *weightHeap) Push(x interface{}) { *h = append(*h, x.(weightSlot)) }

func (h *weightHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// IndependentSetImprovement is a streaming 1/4-approximation that maintains
// the marginal gain of each slot's occupant frozen at insertion time and
// replaces a slot only when a new candidate's gain more than doubles it.
// Weights are never recomputed when other slots change — that frozen-weight
// property is what makes the algorithm tractable.
type IndependentSetImprovement struct {
	*Base
	weights weightHeap
}

// NewIndependentSetImprovement constructs an IndependentSetImprovement
// optimizer with cardinality budget k over f.
func NewIndependentSetImprovement(k int, f objective.Function) (*IndependentSetImprovement, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &IndependentSetImprovement{Base: b}, nil
}

// Offer implements Optimizer.
func (o *IndependentSetImprovement) Offer(x []float64, id *int) error {
	peekTotal.WithLabelValues("isi").Inc()

	if len(o.solution) < o.K {
		val, err := o.Objective.Peek(o.solution, x, len(o.solution))
		if err != nil {
			return err
		}
		w := val - o.value
		slot := len(o.solution)

		updateTotal.WithLabelValues("isi").Inc()
		if err := o.Objective.Update(o.solution, x, slot); err != nil {
			return err
		}
		o.accept(x, id, slot, val)
		heap.Push(&o.weights, weightSlot{weight: w, slot: slot})
	} else {
		min := o.weights[0]
		val, err := o.Objective.Peek(o.solution, x, len(o.solution))
		if err != nil {
			return err
		}
		w := val - o.value
		if w > 2*min.weight {
			updateTotal.WithLabelValues("isi").Inc()
			if err := o.Objective.Update(o.solution, x, min.slot); err != nil {
				return err
			}
			o.accept(x, id, min.slot, val)
			heap.Pop(&o.weights)
			heap.Push(&o.weights, weightSlot{weight: w, slot: min.slot})
		}
	}

	o.value = o.Objective.Value(o.solution)
	o.fitted = true
	return nil
}

// Fit implements Optimizer via the shared default streaming loop.
func (o *IndependentSetImprovement) Fit(points [][]float64, ids []int, maxIterations int) error {
	return DefaultFit(o, o.K, points, ids, maxIterations)
}

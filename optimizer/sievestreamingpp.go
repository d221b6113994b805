package optimizer

import (
	"math"

	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// sievePP is SieveStreaming++'s inner sieve. Unlike the generic sieve in
// sievestreaming.go, it accepts a candidate whenever the marginal gain
// clears its threshold outright — the tighter rule that makes the O(K/eps)
// memory bound possible.
type sievePP struct {
	*Base
	threshold float64
}

func newSievePP(k int, f objective.Function, threshold float64) (*sievePP, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &sievePP{Base: b, threshold: threshold}, nil
}

func (s *sievePP) offer(x []float64, id *int) error {
	kcur := len(s.solution)
	if kcur < s.K {
		val, err := s.Objective.Peek(s.solution, x, kcur)
		if err != nil {
			return err
		}
		delta := val - s.value
		if delta >= s.threshold {
			if err := s.Objective.Update(s.solution, x, kcur); err != nil {
				return err
			}
			s.accept(x, id, kcur, val)
		}
	}
	s.fitted = true
	return nil
}

// SieveStreamingPP re-seeds its sieve population as the best observed value
// grows: it prunes sieves whose threshold has fallen below the viability
// floor max(lowerBound, m)/(2K) and inserts any still-missing grid point in
// the newly viable range. Newly inserted sieves always start empty — the
// smaller-memory proof requires it.
type SieveStreamingPP struct {
	*Base
	sieves     []*sievePP
	lowerBound float64
	m          float64
	epsilon    float64
	f          objective.Function
}

// NewSieveStreamingPP constructs a SieveStreamingPP optimizer with the same
// parameters as SieveStreaming. The initial grid covers the viable range
// [m/(2K), K*m] that applies while the lower bound is still zero.
func NewSieveStreamingPP(k int, f objective.Function, m, epsilon float64) (*SieveStreamingPP, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	ts, err := Thresholds(m/(2*float64(k)), float64(k)*m, epsilon)
	if err != nil {
		return nil, err
	}

	sieves := make([]*sievePP, 0, len(ts))
	for _, t := range ts {
		sv, err := newSievePP(k, f, t)
		if err != nil {
			return nil, err
		}
		sieves = append(sieves, sv)
	}

	return &SieveStreamingPP{Base: b, sieves: sieves, m: m, epsilon: epsilon, f: f.Clone()}, nil
}

// Offer implements Optimizer.
func (o *SieveStreamingPP) Offer(x []float64, id *int) error {
	for _, s := range o.sieves {
		peekTotal.WithLabelValues("sievestreamingpp").Inc()
		if err := s.offer(x, id); err != nil {
			return err
		}
		if s.value > o.value {
			o.value = s.value
			o.solution = s.solution
			o.ids = s.ids
		}
	}
	o.fitted = true

	if o.lowerBound < o.value {
		o.lowerBound = o.value
		if err := o.resieve(); err != nil {
			return err
		}
	}
	return nil
}

// resieve prunes sieves whose threshold fell below the viability floor and
// inserts any missing, now-viable grid points, seeded as empty sieves.
func (o *SieveStreamingPP) resieve() error {
	tauMin := math.Max(o.lowerBound, o.m) / (2 * float64(o.K))
	if tauMin <= 0 {
		return nil
	}

	kept := o.sieves[:0]
	for _, s := range o.sieves {
		if s.threshold >= tauMin {
			kept = append(kept, s)
		}
	}
	o.sieves = kept

	present := make(map[float64]bool, len(o.sieves))
	for _, s := range o.sieves {
		present[s.threshold] = true
	}

	ts, err := Thresholds(tauMin, float64(o.K)*o.m, o.epsilon)
	if err != nil {
		// the viable range has collapsed to nothing new; keep whatever survives.
		return nil
	}
	for _, t := range ts {
		if present[t] {
			continue
		}
		sv, err := newSievePP(o.K, o.f, t)
		if err != nil {
			return err
		}
		o.sieves = append(o.sieves, sv)
		present[t] = true
	}

	log.Debug().Float64("lower_bound", o.lowerBound).Float64("tau_min", tauMin).Int("sieves", len(o.sieves)).
		Msg("sievestreamingpp: re-sieved")
	sieveCount.WithLabelValues("sievestreamingpp").Set(float64(len(o.sieves)))
	return nil
}

// Fit implements Optimizer via the shared default streaming loop.
func (o *SieveStreamingPP) Fit(points [][]float64, ids []int, maxIterations int) error {
	return DefaultFit(o, o.K, points, ids, maxIterations)
}

// NumCandidateSolutions returns the number of sieves currently alive.
func (o *SieveStreamingPP) NumCandidateSolutions() int { return len(o.sieves) }

// NumElementsStored sums the solution size across all live sieves.
func (o *SieveStreamingPP) NumElementsStored() int {
	total := 0
	for _, s := range o.sieves {
		total += len(s.solution)
	}
	return total
}

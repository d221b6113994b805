package optimizer

import (
	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// sieve is a single threshold-gated acceptance rule with its own private
// summary and cloned objective. SieveStreaming runs one per grid threshold;
// SieveStreamingPP uses its own sievePP type with a different acceptance
// rule (see sievestreamingpp.go).
type sieve struct {
	*Base
	threshold float64
}

func newSieve(k int, f objective.Function, threshold float64) (*sieve, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &sieve{Base: b, threshold: threshold}, nil
}

// offer applies SieveStreaming's per-remaining-slot amortized acceptance
// rule: accept if the marginal gain clears (threshold/2 - value) spread over
// the remaining open slots.
func (s *sieve) offer(x []float64, id *int) error {
	kcur := len(s.solution)
	if kcur < s.K {
		val, err := s.Objective.Peek(s.solution, x, kcur)
		if err != nil {
			return err
		}
		delta := val - s.value
		required := (s.threshold/2 - s.value) / float64(s.K-kcur)
		if delta >= required {
			if err := s.Objective.Update(s.solution, x, kcur); err != nil {
				return err
			}
			s.accept(x, id, kcur, val)
		}
	}
	s.fitted = true
	return nil
}

// SieveStreaming is the 1/2-epsilon streaming optimizer that runs one sieve
// per threshold on a geometric grid seeded from the caller's singleton
// bound m.
type SieveStreaming struct {
	*Base
	sieves []*sieve
}

// NewSieveStreaming constructs a SieveStreaming optimizer. m is the
// caller-estimated upper bound on f({x}) over the stream; epsilon controls
// the grid density and the approximation slack.
func NewSieveStreaming(k int, f objective.Function, m, epsilon float64) (*SieveStreaming, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	ts, err := Thresholds(m, float64(k)*m, epsilon)
	if err != nil {
		return nil, err
	}

	sieves := make([]*sieve, 0, len(ts))
	for _, t := range ts {
		sv, err := newSieve(k, f, t)
		if err != nil {
			return nil, err
		}
		sieves = append(sieves, sv)
	}

	log.Debug().Int("k", k).Float64("m", m).Float64("epsilon", epsilon).Int("sieves", len(sieves)).
		Msg("sievestreaming: constructed")
	sieveCount.WithLabelValues("sievestreaming").Set(float64(len(sieves)))

	return &SieveStreaming{Base: b, sieves: sieves}, nil
}

// Offer implements Optimizer: every sieve processes x, then the parent's
// (summary, value) is set to the best sieve.
func (o *SieveStreaming) Offer(x []float64, id *int) error {
	for _, s := range o.sieves {
		peekTotal.WithLabelValues("sievestreaming").Inc()
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
	return nil
}

// Fit implements Optimizer via the shared default streaming loop.
func (o *SieveStreaming) Fit(points [][]float64, ids []int, maxIterations int) error {
	return DefaultFit(o, o.K, points, ids, maxIterations)
}

// NumCandidateSolutions returns the number of sieves maintained.
func (o *SieveStreaming) NumCandidateSolutions() int { return len(o.sieves) }

// NumElementsStored sums the solution size across all sieves.
func (o *SieveStreaming) NumElementsStored() int {
	total := 0
	for _, s := range o.sieves {
		total += len(s.solution)
	}
	return total
}

package optimizer

import (
	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// fixedThreshold accepts a candidate if delta >= (threshold/K)*(0.5+epsilon).
type fixedThreshold struct {
	*Base
	epsilon   float64
	threshold float64
}

func newFixedThreshold(k int, f objective.Function, epsilon, threshold float64) (*fixedThreshold, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &fixedThreshold{Base: b, epsilon: epsilon, threshold: threshold}, nil
}

func (s *fixedThreshold) offer(x []float64, id *int) error {
	kcur := len(s.solution)
	if kcur < s.K {
		val, err := s.Objective.Peek(s.solution, x, kcur)
		if err != nil {
			return err
		}
		delta := val - s.value
		if delta >= (s.threshold/float64(s.K))*(0.5+s.epsilon) {
			if err := s.Objective.Update(s.solution, x, kcur); err != nil {
				return err
			}
			s.accept(x, id, kcur, val)
		}
	}
	s.fitted = true
	return nil
}

// dense splits the stream at observed <= beta*N vs observed > beta*N,
// accepting above c1*threshold/K before the split and above
// threshold/(c2*K) after.
type dense struct {
	*Base
	threshold    float64
	beta, c1, c2 float64
	n, observed  int
}

func newDense(k int, f objective.Function, threshold, beta, c1, c2 float64, n int) (*dense, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &dense{Base: b, threshold: threshold, beta: beta, c1: c1, c2: c2, n: n}, nil
}

func (s *dense) offer(x []float64, id *int) error {
	kcur := len(s.solution)
	if kcur < s.K {
		val, err := s.Objective.Peek(s.solution, x, kcur)
		if err != nil {
			return err
		}
		delta := val - s.value
		var need float64
		if float64(s.observed) <= s.beta*float64(s.n) {
			need = (s.c1 * s.threshold) / float64(s.K)
		} else {
			need = s.threshold / (s.c2 * float64(s.K))
		}
		if delta >= need {
			if err := s.Objective.Update(s.solution, x, kcur); err != nil {
				return err
			}
			s.accept(x, id, kcur, val)
		}
	}
	s.observed++
	s.fitted = true
	return nil
}

// highLow splits the stream at observed <= beta*N vs observed > beta*N,
// accepting above (threshold/K)*(0.5+epsilon) before the split and above
// (threshold/K)*(0.5-delta) after.
type highLow struct {
	*Base
	threshold            float64
	epsilon, beta, delta float64
	n, observed          int
}

func newHighLow(k int, f objective.Function, epsilon, threshold, beta, delta float64, n int) (*highLow, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &highLow{Base: b, epsilon: epsilon, threshold: threshold, beta: beta, delta: delta, n: n}, nil
}

func (s *highLow) offer(x []float64, id *int) error {
	kcur := len(s.solution)
	if kcur < s.K {
		val, err := s.Objective.Peek(s.solution, x, kcur)
		if err != nil {
			return err
		}
		d := val - s.value
		var need float64
		if float64(s.observed) <= s.beta*float64(s.n) {
			need = (s.threshold / float64(s.K)) * (0.5 + s.epsilon)
		} else {
			need = (s.threshold / float64(s.K)) * (0.5 - s.delta)
		}
		if d >= need {
			if err := s.Objective.Update(s.solution, x, kcur); err != nil {
				return err
			}
			s.accept(x, id, kcur, val)
		}
	}
	s.observed++
	s.fitted = true
	return nil
}

// salsaMember is the interface Salsa drives each ensemble member through;
// satisfied by fixedThreshold, dense and highLow via their embedded *Base.
type salsaMember interface {
	offer(x []float64, id *int) error
	Value() (float64, error)
	Solution() ([][]float64, error)
	IDs() ([]int, error)
}

// SalsaConfig holds the ensemble's hyperparameters.
type SalsaConfig struct {
	HiLowEpsilon float64
	HiLowBeta    float64
	HiLowDelta   float64
	DenseBeta    float64
	DenseC1      float64
	DenseC2      float64
	FixedEpsilon float64
}

// DefaultSalsaConfig returns the hyperparameters the reference
// thresholding-strategy papers use.
func DefaultSalsaConfig() SalsaConfig {
	return SalsaConfig{
		HiLowEpsilon: 0.05,
		HiLowBeta:    0.1,
		HiLowDelta:   0.025,
		DenseBeta:    0.8,
		DenseC1:      10,
		DenseC2:      0.2,
		FixedEpsilon: 1.0 / 6.0,
	}
}

// Salsa runs three thresholding strategies (Fixed, Dense, HighLow) in
// parallel, one member per strategy per grid threshold, and reports the
// best member's summary. It needs the stream length N up front and
// therefore only supports batch Fit, not Offer.
type Salsa struct {
	*Base
	m, epsilon float64
	cfg        SalsaConfig
	members    []salsaMember
}

// NewSalsa constructs a Salsa optimizer with cardinality budget k over f.
func NewSalsa(k int, f objective.Function, m, epsilon float64, cfg SalsaConfig) (*Salsa, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	return &Salsa{Base: b, m: m, epsilon: epsilon, cfg: cfg}, nil
}

// Offer always fails: Salsa needs the full stream length up front.
func (o *Salsa) Offer(x []float64, id *int) error {
	return &Error{Op: "Offer", Err: ErrStreamingUnsupported}
}

// Fit builds one ensemble member per (strategy, threshold) pair, then
// iterates the stream up to maxIterations times, stopping early once the
// first full pass completes with some member already at K elements.
func (o *Salsa) Fit(points [][]float64, ids []int, maxIterations int) error {
	if len(ids) > 0 && len(ids) != len(points) {
		return &Error{Op: "Fit", Err: ErrIDsCardinalityMismatch}
	}
	withIDs := len(ids) == len(points) && len(ids) > 0
	n := len(points)

	ts, err := Thresholds(o.m, float64(o.K)*o.m, o.epsilon)
	if err != nil {
		return err
	}

	o.members = o.members[:0]
	for _, t := range ts {
		fx, err := newFixedThreshold(o.K, o.Objective, o.cfg.FixedEpsilon, t)
		if err != nil {
			return err
		}
		hl, err := newHighLow(o.K, o.Objective, o.cfg.HiLowEpsilon, t, o.cfg.HiLowBeta, o.cfg.HiLowDelta, n)
		if err != nil {
			return err
		}
		dn, err := newDense(o.K, o.Objective, t, o.cfg.DenseBeta, o.cfg.DenseC1, o.cfg.DenseC2, n)
		if err != nil {
			return err
		}
		o.members = append(o.members, fx, hl, dn)
	}

	log.Debug().Int("k", o.K).Int("thresholds", len(ts)).Int("members", len(o.members)).
		Msg("salsa: ensemble constructed")
	sieveCount.WithLabelValues("salsa").Set(float64(len(o.members)))

	if maxIterations < 1 {
		maxIterations = 1
	}
	for it := 0; it < maxIterations; it++ {
		for i, x := range points {
			var idp *int
			if withIDs {
				v := ids[i]
				idp = &v
			}
			for _, mem := range o.members {
				peekTotal.WithLabelValues("salsa").Inc()
				if err := mem.offer(x, idp); err != nil {
					return err
				}
				if mval, merr := mem.Value(); merr == nil && mval > o.value {
					o.value = mval
					o.solution, _ = mem.Solution()
					o.ids, _ = mem.IDs()
					o.fitted = true
				}
			}
		}
		if it == 0 {
			for _, mem := range o.members {
				if sol, err := mem.Solution(); err == nil && len(sol) >= o.K {
					return nil
				}
			}
		}
	}
	return nil
}

// NumCandidateSolutions returns the number of ensemble members.
func (o *Salsa) NumCandidateSolutions() int { return len(o.members) }

// NumElementsStored sums the solution size across all ensemble members.
func (o *Salsa) NumElementsStored() int {
	total := 0
	for _, mem := range o.members {
		if sol, err := mem.Solution(); err == nil {
			total += len(sol)
		}
	}
	return total
}

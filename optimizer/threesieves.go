package optimizer

import (
	"math"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/vecsummary/submod/objective"
)

// DecayStrategy selects how ThreeSieves lowers its threshold after T
// consecutive rejections.
type DecayStrategy int

const (
	// Geometric drops to the next-lower rung of the (1+epsilon)^i grid.
	Geometric DecayStrategy = iota
	// Constant drops straight to epsilon in one step.
	Constant
)

// ParseDecayStrategy maps "sieve" to Geometric and anything else to
// Constant, matching the two strategy names used in the reference
// implementation's configuration.
func ParseDecayStrategy(s string) DecayStrategy {
	if strings.EqualFold(s, "sieve") {
		return Geometric
	}
	return Constant
}

// ThreeSieves is a single-sieve, O(K)-memory streaming optimizer that
// decays its acceptance threshold by one grid level after T consecutive
// rejections, trading a Rule-of-Three confidence bound for the
// O(K log K / epsilon) memory SieveStreaming needs to run many sieves at
// once.
type ThreeSieves struct {
	*Base
	threshold float64
	epsilon   float64
	strategy  DecayStrategy
	t         int
	tMax      int
}

// NewThreeSieves constructs a ThreeSieves optimizer. m is the caller's
// singleton-value bound, used to seed the initial threshold at K*m; T is
// the number of consecutive rejections tolerated before decaying.
func NewThreeSieves(k int, f objective.Function, m, epsilon float64, strategy DecayStrategy, t int) (*ThreeSieves, error) {
	b, err := NewBase(k, f)
	if err != nil {
		return nil, err
	}
	if t < 1 {
		return nil, &Error{Op: "NewThreeSieves", Param: "T", Value: t, Err: ErrInvalidHyperparameter}
	}
	if epsilon <= 0 {
		return nil, &Error{Op: "NewThreeSieves", Param: "epsilon", Value: epsilon, Err: ErrInvalidThresholdRange}
	}
	return &ThreeSieves{
		Base:      b,
		threshold: float64(k) * m,
		epsilon:   epsilon,
		strategy:  strategy,
		tMax:      t,
	}, nil
}

func (o *ThreeSieves) decay() {
	switch o.strategy {
	case Geometric:
		tmp := math.Log(o.threshold) / math.Log(1+o.epsilon)
		i := int(math.Floor(tmp))
		if math.Abs(tmp-math.Floor(tmp)) < 1e-7 {
			i--
		}
		o.threshold = math.Pow(1+o.epsilon, float64(i))
	case Constant:
		o.threshold = o.epsilon
	}
	log.Debug().Float64("threshold", o.threshold).Msg("threesieves: threshold decayed")
}

// Offer implements Optimizer.
func (o *ThreeSieves) Offer(x []float64, id *int) error {
	kcur := len(o.solution)
	if kcur >= o.K {
		o.fitted = true
		return nil
	}

	if o.t >= o.tMax {
		o.decay()
		o.t = 0
	}

	peekTotal.WithLabelValues("threesieves").Inc()
	val, err := o.Objective.Peek(o.solution, x, kcur)
	if err != nil {
		return err
	}
	delta := val - o.value
	required := (o.threshold/2 - o.value) / float64(o.K-kcur)

	if delta >= required {
		updateTotal.WithLabelValues("threesieves").Inc()
		if err := o.Objective.Update(o.solution, x, kcur); err != nil {
			return err
		}
		o.accept(x, id, kcur, val)
		o.t = 0
	} else {
		o.t++
	}
	o.fitted = true
	return nil
}

// Fit implements Optimizer via the shared default streaming loop.
func (o *ThreeSieves) Fit(points [][]float64, ids []int, maxIterations int) error {
	return DefaultFit(o, o.K, points, ids, maxIterations)
}

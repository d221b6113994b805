// Package kernel implements the similarity-function capability set (C2):
// the built-in RBF kernel, a closure wrapper for user-supplied functions, and
// (in cache.go) an LRU memoization decorator.
package kernel

import "math"

// Kernel is a binary similarity function k: R^D x R^D -> R, polymorphic over
// evaluate/clone. Clone must yield an independent, deep-copyable instance —
// several optimizers clone the objective, which in turn clones the kernel.
type Kernel interface {
	Eval(x, y []float64) float64
	Clone() Kernel
}

// RBF is the built-in radial-basis-function kernel
// k(x,y) = scale * exp(-||x-y||^2 / sigma), with a short-circuit returning
// scale outright when x and y are identical.
type RBF struct {
	Sigma float64
	Scale float64
}

// NewRBF validates sigma and scale and constructs an RBF kernel.
func NewRBF(sigma, scale float64) (*RBF, error) {
	if sigma <= 0 {
		return nil, &ConfigError{Op: "NewRBF", Param: "sigma", Value: sigma, Err: ErrInvalidParameter}
	}
	if scale <= 0 {
		return nil, &ConfigError{Op: "NewRBF", Param: "scale", Value: scale, Err: ErrInvalidParameter}
	}
	return &RBF{Sigma: sigma, Scale: scale}, nil
}

// Eval implements Kernel.
func (k *RBF) Eval(x, y []float64) float64 {
	if equalVectors(x, y) {
		return k.Scale
	}
	var sq float64
	for i := range x {
		d := x[i] - y[i]
		sq += d * d
	}
	return k.Scale * math.Exp(-sq/k.Sigma)
}

// Clone implements Kernel.
func (k *RBF) Clone() Kernel { return &RBF{Sigma: k.Sigma, Scale: k.Scale} }

func equalVectors(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Func adapts any stateless closure into the Kernel capability set. Clone
// shares the underlying function, which the contract requires be stateless
// in that case — declared, not enforced.
type Func struct {
	F func(x, y []float64) float64
}

// Eval implements Kernel.
func (k Func) Eval(x, y []float64) float64 { return k.F(x, y) }

// Clone implements Kernel.
func (k Func) Clone() Kernel { return k }

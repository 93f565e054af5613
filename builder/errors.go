// Package builder: sentinel errors.
//
// Constructors wrap these with the method tag and parameters, e.g.
// "Chain: n=0 < min=1: builder: parameter too small".

package builder

import "errors"

// ErrTooFewMolecules indicates a size parameter below the constructor minimum.
var ErrTooFewMolecules = errors.New("builder: parameter too small")

// ErrInvalidProbability indicates a probability outside [0,1].
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates a stochastic constructor without WithSeed or WithRand.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates a failure while assembling the graph.
var ErrConstructFailed = errors.New("builder: construction failed")

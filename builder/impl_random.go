// SPDX-License-Identifier: MIT
// Package: rulenet/builder
//
// impl_random.go - stochastic fixtures.
//
// Contract:
//   - cfg.rng must be non-nil (else ErrNeedRandSource), set via WithSeed or WithRand.
//   - Trials run in unit order, so a fixed seed yields a fixed graph.

package builder

import (
	"fmt"
	"math/rand"

	"github.com/katalvlaran/rulenet/core"
)

const (
	methodRandomChain = "RandomChain"
	stateOn           = "P"
	stateOff          = "U"
)

// RandomChain returns a Constructor appending an n-unit chain whose units
// carry one extra site named site, set to "P" with probability p and "U"
// otherwise.
func RandomChain(n int, p float64, site string) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minChain {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRandomChain, n, minChain, ErrTooFewMolecules)
		}
		if p < 0 || p > 1 {
			return fmt.Errorf("%s: p=%.6f not in [0,1]: %w", methodRandomChain, p, ErrInvalidProbability)
		}
		if cfg.rng == nil {
			return fmt.Errorf("%s: %w", methodRandomChain, ErrNeedRandSource)
		}
		first := g.NumMolecules()
		for i := 0; i < n; i++ {
			m := cfg.unit(i)
			state := stateOff
			if cfg.rng.Float64() < p {
				state = stateOn
			}
			m.Components = append(m.Components, core.Component{Name: site, State: state})
			g.AddMolecule(m)
		}
		for i := 1; i < n; i++ {
			if err := link(g, first+i-1, first+i); err != nil {
				return fmt.Errorf("%s: %w", methodRandomChain, err)
			}
		}

		return nil
	}
}

// Shuffle returns g with its molecules in a random order drawn from rng.
// Bonds and labels are kept, so the result is the same species.
func Shuffle(g *core.Graph, rng *rand.Rand) *core.Graph {
	out, _ := g.Induced(rng.Perm(g.NumMolecules()))

	return out
}

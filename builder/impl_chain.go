// SPDX-License-Identifier: MIT
// Package: rulenet/builder
//
// impl_chain.go - linear polymers.
//
// Contract:
//   - n >= 1 (else ErrTooFewMolecules).
//   - Unit i carries (left, right, states...); right of unit i binds left of unit i+1.
//   - The ends keep one free linker each.

package builder

import (
	"fmt"

	"github.com/katalvlaran/rulenet/core"
)

const (
	methodChain = "Chain"
	minChain    = 1
)

// Chain returns a Constructor appending an n-unit linear polymer.
func Chain(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minChain {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodChain, n, minChain, ErrTooFewMolecules)
		}
		first := appendUnits(g, cfg, n)
		for i := 1; i < n; i++ {
			if err := link(g, first+i-1, first+i); err != nil {
				return fmt.Errorf("%s: %w", methodChain, err)
			}
		}

		return nil
	}
}

// appendUnits adds n units and returns the index of the first.
func appendUnits(g *core.Graph, cfg builderConfig, n int) int {
	first := g.NumMolecules()
	for i := 0; i < n; i++ {
		g.AddMolecule(cfg.unit(i))
	}

	return first
}

// link bonds the right linker of unit a to the left linker of unit b.
// Linkers are components 0 (left) and 1 (right) of every unit.
func link(g *core.Graph, a, b int) error {
	if _, err := g.AddBond(core.Site{Mol: a, Comp: 1}, core.Site{Mol: b, Comp: 0}, 0); err != nil {
		return fmt.Errorf("link %d-%d: %v: %w", a, b, err, ErrConstructFailed)
	}

	return nil
}

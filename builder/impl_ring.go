// Package: rulenet/builder
//
// impl_ring.go - closed polymers.
//
// Contract:
//   - n >= 2 (else ErrTooFewMolecules); a one-unit ring would bond a molecule to itself.
//   - Same units and linkage as Chain plus one closing bond from the last unit to the first.

package builder

import (
	"fmt"

	"github.com/katalvlaran/rulenet/core"
)

const (
	methodRing = "Ring"
	minRing    = 2
)

// Ring returns a Constructor appending an n-unit ring.
func Ring(n int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if n < minRing {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodRing, n, minRing, ErrTooFewMolecules)
		}
		first := appendUnits(g, cfg, n)
		for i := 1; i <= n; i++ {
			if err := link(g, first+i-1, first+i%n); err != nil {
				return fmt.Errorf("%s: %w", methodRing, err)
			}
		}

		return nil
	}
}

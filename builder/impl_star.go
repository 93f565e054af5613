// Package: rulenet/builder
//
// impl_star.go - hub-and-spoke complexes.
//
// Contract:
//   - arms >= 1 (else ErrTooFewMolecules).
//   - One hub molecule with arms identical hub sites; arm i binds hub site i
//     through its left linker.

package builder

import (
	"fmt"

	"github.com/katalvlaran/rulenet/core"
)

const (
	methodStar = "Star"
	minArms    = 1
)

// Star returns a Constructor appending a hub with arms bound units.
func Star(arms int) Constructor {
	return func(g *core.Graph, cfg builderConfig) error {
		if arms < minArms {
			return fmt.Errorf("%s: arms=%d < min=%d: %w", methodStar, arms, minArms, ErrTooFewMolecules)
		}
		hubMol := core.Molecule{Name: cfg.hub, Compartment: cfg.compartment}
		for i := 0; i < arms; i++ {
			hubMol.Components = append(hubMol.Components, core.Component{Name: cfg.hubSite})
		}
		hub := g.AddMolecule(hubMol)
		first := appendUnits(g, cfg, arms)
		for i := 0; i < arms; i++ {
			a, b := core.Site{Mol: hub, Comp: i}, core.Site{Mol: first + i, Comp: 0}
			if _, err := g.AddBond(a, b, 0); err != nil {
				return fmt.Errorf("%s: arm %d: %v: %w", methodStar, i, err, ErrConstructFailed)
			}
		}

		return nil
	}
}

package netgen

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/rulenet/core"
)

// validateProducts checks every product of one rule instance before any of
// them is added, so a rejected instance leaves the network untouched.
//
// Errors: ErrMalformedProduct for wildcard or bond table violations;
// *LimitError for MaxAgg and MaxStoich.
func (g *Generator) validateProducts(products []*core.Graph) error {
	for _, p := range products {
		if err := wellFormed(p); err != nil {
			return err
		}
	}
	for _, p := range products {
		if err := g.checkSize(p); err != nil {
			return err
		}
	}

	return nil
}

// wellFormed reports wildcards and unresolved labels, which a fully
// specified species cannot carry.
func wellFormed(p *core.Graph) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedProduct, err)
	}
	for mi := range p.Molecules {
		for ci, c := range p.Molecules[mi].Components {
			s := core.Site{Mol: mi, Comp: ci}
			switch {
			case c.Label == 0 && c.Bond != core.BondNone:
				return fmt.Errorf("%w: component %s of %s carries wildcard !%s",
					ErrMalformedProduct, c.Name, p.Molecules[mi].Name, c.Bond)
			case c.Label > 0:
				if _, ok := p.Partner(s); !ok {
					return fmt.Errorf("%w: component %s of %s has dangling bond %d",
						ErrMalformedProduct, c.Name, p.Molecules[mi].Name, c.Label)
				}
			}
		}
	}

	return nil
}

// checkSize enforces MaxAgg and MaxStoich and warns at 90% of either.
func (g *Generator) checkSize(p *core.Graph) error {
	n := p.NumMolecules()
	if n > g.cfg.MaxAgg {
		return &LimitError{Kind: LimitAgg, Rule: g.rule, Limit: uint64(g.cfg.MaxAgg), Value: uint64(n)}
	}
	if n >= g.cfg.MaxAgg*9/10 && n > 1 {
		g.warn.warn(WarnAgg, g.rule, "rule %q: product of %d molecules is near max_agg (%d)", g.rule, n, g.cfg.MaxAgg)
	}

	counts := make(map[string]int)
	for i := range p.Molecules {
		counts[p.Molecules[i].Name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := counts[name]
		if c > g.cfg.MaxStoich {
			return &LimitError{Kind: LimitStoich, Rule: g.rule, Limit: uint64(g.cfg.MaxStoich), Value: uint64(c), Molecule: name}
		}
		if c >= g.cfg.MaxStoich*9/10 && c > 1 {
			g.warn.warn(WarnStoich, g.rule, "rule %q: %d copies of %s near max_stoich (%d)", g.rule, c, name, g.cfg.MaxStoich)
		}
	}

	return nil
}

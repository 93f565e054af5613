package netgen

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/rulenet/core"
	"github.com/katalvlaran/rulenet/degeneracy"
	"github.com/katalvlaran/rulenet/match"
)

// applyUnimolecular applies a one-reactant rule to every embedding of its
// pattern in sp.
func (g *Generator) applyUnimolecular(ctx context.Context, ri int, sp *core.Species) error {
	key := procKey{rule: ri, a: sp.Index, b: -1}
	if _, done := g.processed[key]; done {
		return nil
	}
	g.processed[key] = struct{}{}

	r := g.rules[ri]
	if !g.constraintsHold(r, []*core.Species{sp}) {
		return nil
	}
	maps, err := g.findAll(ctx, r.Reactants[0], sp.Graph)
	if err != nil {
		return err
	}
	for _, m := range maps {
		if err = g.tick(ctx, false); err != nil {
			return err
		}
		deg, err := g.degeneracy(ctx, r, []*core.Graph{sp.Graph}, []match.Map{m})
		if err != nil {
			return err
		}
		err = g.fire(ri, []*core.Graph{sp.Graph}, []int{0}, []match.Map{m}, []int{sp.Index}, deg, 1)
		if err != nil {
			return err
		}
	}

	return nil
}

// applyBimolecular binds sp to each reactant pattern in turn and pairs it
// with every partner species that holds all molecule types of the other
// pattern. Each ordered (pattern 0 species, pattern 1 species) pair is
// processed once per rule.
func (g *Generator) applyBimolecular(ctx context.Context, ri int, sp *core.Species) error {
	r := g.rules[ri]
	for first := 0; first < 2; first++ {
		second := 1 - first
		firstMaps, err := g.findAll(ctx, r.Reactants[first], sp.Graph)
		if err != nil {
			return err
		}
		if len(firstMaps) == 0 {
			continue
		}
		for _, pi := range g.net.Candidates(moleculeNames(r.Reactants[second])) {
			if err = g.tick(ctx, false); err != nil {
				return err
			}
			partner := g.net.Species[pi]
			species := make([]*core.Species, 2)
			species[first], species[second] = sp, partner
			key := procKey{rule: ri, a: species[0].Index, b: species[1].Index}
			if _, done := g.processed[key]; done {
				continue
			}
			g.processed[key] = struct{}{}
			if !g.constraintsHold(r, species) {
				continue
			}
			secondMaps, err := g.findAll(ctx, r.Reactants[second], partner.Graph)
			if err != nil {
				return err
			}
			if err = g.pair(ctx, ri, species, firstMaps, secondMaps, first); err != nil {
				return err
			}
		}
	}
	if r.Intramolecular {
		return g.applyIntramolecular(ctx, ri, sp)
	}

	return nil
}

// pair fires the rule for every combination of embeddings of the two
// patterns into two distinct copies of their species. Identical species
// get propensity factor 0.5.
func (g *Generator) pair(ctx context.Context, ri int, species []*core.Species, firstMaps, secondMaps []match.Map, first int) error {
	r := g.rules[ri]
	pf := 1.0
	if species[0].Index == species[1].Index {
		pf = 0.5
	}
	graphs := []*core.Graph{species[0].Graph, species[1].Graph}
	reactants := []int{species[0].Index, species[1].Index}
	for _, mf := range firstMaps {
		for _, ms := range secondMaps {
			if err := g.tick(ctx, false); err != nil {
				return err
			}
			maps := make([]match.Map, 2)
			maps[first], maps[1-first] = mf, ms
			deg, err := g.degeneracy(ctx, r, graphs, maps)
			if err != nil {
				return err
			}
			if err := g.fire(ri, graphs, []int{0, 1}, maps, reactants, deg, pf); err != nil {
				return err
			}
		}
	}

	return nil
}

// applyIntramolecular embeds both patterns of a bimolecular rule into one
// copy of sp with disjoint molecule sets. The result is a unimolecular
// reaction of sp.
func (g *Generator) applyIntramolecular(ctx context.Context, ri int, sp *core.Species) error {
	key := procKey{rule: ri, a: sp.Index, b: -2}
	if _, done := g.processed[key]; done {
		return nil
	}
	g.processed[key] = struct{}{}

	r := g.rules[ri]
	maps0, err := g.findAll(ctx, r.Reactants[0], sp.Graph)
	if err != nil {
		return err
	}
	maps1, err := g.findAll(ctx, r.Reactants[1], sp.Graph)
	if err != nil {
		return err
	}
	for _, m0 := range maps0 {
		for _, m1 := range maps1 {
			if m0.Overlaps(m1) {
				continue
			}
			if err = g.tick(ctx, false); err != nil {
				return err
			}
			deg, err := g.degeneracy(ctx, r, []*core.Graph{sp.Graph, sp.Graph}, []match.Map{m0, m1})
			if err != nil {
				return err
			}
			err = g.fire(ri, []*core.Graph{sp.Graph}, []int{0, 0}, []match.Map{m0, m1}, []int{sp.Index}, deg, 1)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// fire rewrites one reaction instance, validates and registers its
// products, and records the reaction. Malformed rule variants and products
// are reported and skipped; limit errors are returned.
func (g *Generator) fire(ri int, graphs []*core.Graph, targets []int, maps []match.Map, reactants []int, deg int, pf float64) error {
	r := g.rules[ri]
	products, err := g.rewrite(ri, graphs, targets, maps)
	if err == nil {
		err = g.validateProducts(products)
	}
	switch {
	case errors.Is(err, errNoReaction):
		g.log.Debug("rewrite does not split into the declared products", zap.String("rule", r.Name))

		return nil
	case errors.Is(err, ErrMalformedRule), errors.Is(err, ErrMalformedProduct):
		g.opts.Metrics.rejected(r.Name, rejectReason(err))
		g.warn.warn(WarnRejected, r.Name, "rule %q: product rejected: %v", r.Name, err)

		return nil
	case err != nil:
		return err
	}

	idx := make([]int, len(products))
	for i, p := range products {
		sp, _, err := g.addSpecies(p)
		if err != nil {
			return err
		}
		idx[i] = sp.Index
	}
	rxn := &core.Rxn{
		Reactants:        reactants,
		Products:         idx,
		Rate:             r.Rate / float64(max(deg, 1)),
		Degeneracy:       max(deg, 1),
		PropensityFactor: pf,
		Rule:             r.Name,
	}
	if g.net.HasReaction(rxn) {
		return nil
	}
	if n := g.net.NumReactions(); n >= g.cfg.MaxReactions {
		return &LimitError{Kind: LimitReactions, Rule: r.Name, Limit: uint64(g.cfg.MaxReactions), Value: uint64(n + 1)}
	}
	g.net.AddReaction(rxn)
	g.opts.Metrics.applied(r.Name)

	return nil
}

// constraintsHold checks include/exclude reactant constraints against the
// species bound to each reactant pattern.
func (g *Generator) constraintsHold(r *core.Rule, species []*core.Species) bool {
	for _, c := range r.Include {
		if c.Reactant < len(species) && !match.Matches(c.Pattern, species[c.Reactant].Graph) {
			return false
		}
	}
	for _, c := range r.Exclude {
		if c.Reactant < len(species) && match.Matches(c.Pattern, species[c.Reactant].Graph) {
			return false
		}
	}

	return true
}

// degeneracy multiplies the per-side degeneracy of each reactant pattern
// of r under maps[i] into graphs[i].
func (g *Generator) degeneracy(ctx context.Context, r *core.Rule, graphs []*core.Graph, maps []match.Map) (int, error) {
	counts := make([]int, len(maps))
	for i, m := range maps {
		n, err := degeneracy.Count(r.Reactants[i], graphs[i], m, match.WithContext(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return 0, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
			}

			return 0, err
		}
		counts[i] = n
	}

	return degeneracy.Product(counts...), nil
}

func (g *Generator) findAll(ctx context.Context, pattern, target *core.Graph) ([]match.Map, error) {
	maps, err := match.FindAll(pattern, target, match.WithContext(ctx))
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		}

		return nil, err
	}

	return maps, nil
}

// moleculeNames lists the distinct molecule names of a pattern.
func moleculeNames(p *core.Graph) []string {
	seen := make(map[string]struct{}, len(p.Molecules))
	var out []string
	for i := range p.Molecules {
		name := p.Molecules[i].Name
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}

	return out
}

func rejectReason(err error) string {
	if errors.Is(err, ErrMalformedRule) {
		return "malformed_rule"
	}

	return "malformed_product"
}

package netgen

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/rulenet/bfs"
	"github.com/katalvlaran/rulenet/core"
	"github.com/katalvlaran/rulenet/match"
)

// errNoReaction marks a rule instance whose result does not split into the
// declared product patterns, e.g. an unbinding inside a ring. The instance
// is not a reaction and is skipped without a warning.
var errNoReaction = errors.New("netgen: no reaction")

// rewriter applies one rule instance to a working copy of its reactants.
type rewriter struct {
	rule *core.Rule
	corr core.Correspondence
	work *core.Graph

	targets []int       // reactant pattern -> reactant graph
	offsets []int       // reactant graph -> first molecule in work
	maps    []match.Map // reactant pattern -> embedding

	placed [][]int // product pattern, molecule -> molecule in work
}

// rewrite applies rule ri to the reactant graphs. Pattern k embeds into
// graphs[targets[k]] through maps[k]. The result lists one graph per
// connected product complex, in product pattern order when every product
// pattern is accounted for.
//
// Errors: ErrMalformedRule, ErrMalformedProduct, errNoReaction.
func (g *Generator) rewrite(ri int, graphs []*core.Graph, targets []int, maps []match.Map) ([]*core.Graph, error) {
	rw := &rewriter{
		rule:    g.rules[ri],
		corr:    g.corr[ri],
		work:    graphs[0].Clone(),
		targets: targets,
		offsets: make([]int, len(graphs)),
		maps:    maps,
	}
	for i := 1; i < len(graphs); i++ {
		rw.offsets[i] = rw.work.Merge(graphs[i])
	}

	rw.breakReactantBonds()
	if err := rw.editSites(); err != nil {
		return nil, err
	}
	rw.synthesize()
	if err := rw.formProductBonds(); err != nil {
		return nil, err
	}

	return rw.split()
}

// site maps a site of reactant pattern k into the working graph.
func (rw *rewriter) site(k int, s core.Site) core.Site {
	t := rw.maps[k].Site(s)
	t.Mol += rw.offsets[rw.targets[k]]

	return t
}

func (rw *rewriter) mol(ref core.MolRef) int {
	return rw.maps[ref.Pattern].Molecules[ref.Mol] + rw.offsets[rw.targets[ref.Pattern]]
}

// breakReactantBonds removes every bond named in a reactant pattern.
// Product bonds are added back afterwards.
func (rw *rewriter) breakReactantBonds() {
	for k, rp := range rw.rule.Reactants {
		for _, b := range rp.Bonds() {
			rw.work.DeleteBond(rw.site(k, b.A))
		}
	}
}

// editSites applies compartment moves, state changes and bond removals to
// product molecules that continue a reactant molecule.
func (rw *rewriter) editSites() error {
	rw.placed = make([][]int, len(rw.rule.Products))
	for pi, pp := range rw.rule.Products {
		rw.placed[pi] = make([]int, len(pp.Molecules))
		for mi, pm := range pp.Molecules {
			ref := rw.corr.Molecules[pi][mi]
			if ref == core.None {
				rw.placed[pi][mi] = -1

				continue
			}
			rw.placed[pi][mi] = rw.mol(ref)
			if pm.Compartment != "" && rw.work.Molecules[rw.placed[pi][mi]].Compartment != pm.Compartment {
				rw.work.SetCompartment(rw.placed[pi][mi], pm.Compartment)
			}
			for ci, pc := range pm.Components {
				rc := rw.corr.Sites[pi][mi][ci]
				if rc < 0 {
					return fmt.Errorf("%w: rule %q adds component %s to molecule %s",
						ErrMalformedRule, rw.rule.Name, pc.Name, pm.Name)
				}
				s := rw.site(ref.Pattern, core.Site{Mol: ref.Mol, Comp: rc})
				if pc.State != "" && rw.work.Component(s).State != pc.State {
					rw.work.SetState(s, pc.State)
				}
				if pc.Label == 0 && (pc.Bond == core.BondNone || pc.Bond == core.BondUnbound) {
					rw.work.DeleteBond(s)
				}
			}
		}
	}

	return nil
}

// synthesize appends product molecules without a reactant counterpart.
// Their wildcards are kept so that validation can reject them.
func (rw *rewriter) synthesize() {
	for pi, pp := range rw.rule.Products {
		for mi, pm := range pp.Molecules {
			if rw.placed[pi][mi] >= 0 {
				continue
			}
			m := pm.Clone()
			for ci := range m.Components {
				m.Components[ci].Label = 0
				if m.Components[ci].Bond == core.BondUnbound {
					m.Components[ci].Bond = core.BondNone
				}
			}
			rw.placed[pi][mi] = rw.work.AddMolecule(m)
		}
	}
}

// productSite maps a site of product pattern pi into the working graph.
func (rw *rewriter) productSite(pi int, s core.Site) core.Site {
	ref := rw.corr.Molecules[pi][s.Mol]
	if ref == core.None {
		return core.Site{Mol: rw.placed[pi][s.Mol], Comp: s.Comp}
	}

	return rw.site(ref.Pattern, core.Site{Mol: ref.Mol, Comp: rw.corr.Sites[pi][s.Mol][s.Comp]})
}

// formProductBonds adds the bonds of every product pattern. A product label
// without exactly two endpoints cannot be resolved into a bond.
func (rw *rewriter) formProductBonds() error {
	for pi, pp := range rw.rule.Products {
		for mi, pm := range pp.Molecules {
			for ci, pc := range pm.Components {
				if pc.Label <= 0 {
					continue
				}
				if _, ok := pp.Partner(core.Site{Mol: mi, Comp: ci}); !ok {
					return fmt.Errorf("%w: rule %q: product bond label %d has one endpoint",
						ErrMalformedRule, rw.rule.Name, pc.Label)
				}
			}
		}
		for _, b := range pp.Bonds() {
			a, c := rw.productSite(pi, b.A), rw.productSite(pi, b.B)
			if _, err := rw.work.AddBond(a, c, 0); err != nil {
				return fmt.Errorf("%w: rule %q: %w", ErrMalformedProduct, rw.rule.Name, err)
			}
		}
	}

	return nil
}

// split drops deleted molecules and cuts the working graph into connected
// complexes.
func (rw *rewriter) split() ([]*core.Graph, error) {
	deleted := make(map[int]struct{}, len(rw.corr.Deleted))
	for _, ref := range rw.corr.Deleted {
		deleted[rw.mol(ref)] = struct{}{}
	}
	keep := make([]int, 0, rw.work.NumMolecules())
	for m := 0; m < rw.work.NumMolecules(); m++ {
		if _, ok := deleted[m]; !ok {
			keep = append(keep, m)
		}
	}
	rest, oldToNew := rw.work.Induced(keep)
	comps := bfs.Components(rest)
	if len(comps) != len(rw.rule.Products) {
		if len(deleted) == 0 {
			return nil, errNoReaction
		}

		return rw.induce(rest, comps), nil
	}

	// order complexes by the product pattern they realize
	compOf := make([]int, rest.NumMolecules())
	for ci, comp := range comps {
		for _, m := range comp {
			compOf[m] = ci
		}
	}
	ordered := make([][]int, len(comps))
	used := make([]bool, len(comps))
	for pi := range rw.rule.Products {
		ci := compOf[oldToNew[rw.placed[pi][0]]]
		if used[ci] {
			if len(deleted) == 0 {
				return nil, errNoReaction
			}

			return rw.induce(rest, comps), nil
		}
		used[ci] = true
		ordered[pi] = comps[ci]
	}

	return rw.induce(rest, ordered), nil
}

func (rw *rewriter) induce(g *core.Graph, comps [][]int) []*core.Graph {
	out := make([]*core.Graph, len(comps))
	for i, comp := range comps {
		mols := append([]int(nil), comp...)
		sort.Ints(mols)
		out[i], _ = g.Induced(mols)
	}

	return out
}

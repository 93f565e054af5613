package core

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrRuleArity indicates a rule with no reactant pattern or more than two.
var ErrRuleArity = errors.New("core: rule must have one or two reactant patterns")

// ReactantConstraint restricts which species may serve as a given reactant:
// the species bound to Reactant must (Include) or must not (Exclude) contain
// an embedding of Pattern.
type ReactantConstraint struct {
	Reactant int
	Pattern  *Graph
}

// Rule is a graph-rewrite template: reactant patterns are replaced by product
// patterns at rate constant Rate.
type Rule struct {
	// Name identifies the rule in reactions, logs and limit errors.
	Name string

	// Reactants holds one (unimolecular) or two (bimolecular) patterns.
	Reactants []*Graph

	// Products holds the product patterns; empty means all matched molecules are consumed.
	Products []*Graph

	// Rate is the base rate constant before degeneracy correction.
	Rate float64

	// Intramolecular permits both reactant patterns of a bimolecular rule to
	// embed into one physical complex (e.g. ring closure).
	Intramolecular bool

	// Include and Exclude filter candidate reactant species.
	Include []ReactantConstraint
	Exclude []ReactantConstraint
}

// Validate checks the reactant arity.
func (r *Rule) Validate() error {
	if len(r.Reactants) < 1 || len(r.Reactants) > 2 {
		return fmt.Errorf("%w: rule %q has %d", ErrRuleArity, r.Name, len(r.Reactants))
	}

	return nil
}

// Reverse returns the rule with reactants and products swapped.
func (r *Rule) Reverse(name string, rate float64) *Rule {
	return &Rule{
		Name:           name,
		Reactants:      r.Products,
		Products:       r.Reactants,
		Rate:           rate,
		Intramolecular: r.Intramolecular,
	}
}

// String renders the rule as "R1 + R2 -> P1 k".
func (r *Rule) String() string {
	side := func(gs []*Graph) string {
		if len(gs) == 0 {
			return "0"
		}
		parts := make([]string, len(gs))
		for i, g := range gs {
			parts[i] = g.String()
		}

		return strings.Join(parts, " + ")
	}

	return side(r.Reactants) + " -> " + side(r.Products) + " " + strconv.FormatFloat(r.Rate, 'g', -1, 64)
}

// MolRef addresses a molecule of one pattern of a rule side.
type MolRef struct {
	Pattern int // pattern index, -1 for none
	Mol     int // molecule index within the pattern
}

// None is the MolRef of a product molecule with no reactant counterpart.
var None = MolRef{Pattern: -1, Mol: -1}

// Correspondence pairs product molecules (and their sites) with reactant
// molecules. Product molecules without a reactant counterpart are
// synthesized; reactant molecules without a product counterpart are deleted.
type Correspondence struct {
	// Molecules[p][m] is the reactant molecule behind product molecule m of product pattern p.
	Molecules [][]MolRef

	// Sites[p][m][c] is the reactant pattern component behind product component c, or -1.
	Sites [][][]int

	// Deleted lists reactant molecules consumed by the rule, in flattened order.
	Deleted []MolRef
}

// Correspondence computes the molecule and site pairing of r. Each product
// molecule takes the first unused reactant molecule of the same name in
// flattened (pattern, molecule) order; each of its components takes the
// first unused same-named component of that reactant molecule.
func (r *Rule) Correspondence() Correspondence {
	used := make([][]bool, len(r.Reactants))
	for i, rp := range r.Reactants {
		used[i] = make([]bool, len(rp.Molecules))
	}
	corr := Correspondence{
		Molecules: make([][]MolRef, len(r.Products)),
		Sites:     make([][][]int, len(r.Products)),
	}
	for pi, pp := range r.Products {
		corr.Molecules[pi] = make([]MolRef, len(pp.Molecules))
		corr.Sites[pi] = make([][]int, len(pp.Molecules))
		for mi, pm := range pp.Molecules {
			ref := None
		search:
			for ri, rp := range r.Reactants {
				for rmi, rm := range rp.Molecules {
					if !used[ri][rmi] && rm.Name == pm.Name {
						used[ri][rmi] = true
						ref = MolRef{Pattern: ri, Mol: rmi}

						break search
					}
				}
			}
			corr.Molecules[pi][mi] = ref
			sites := make([]int, len(pm.Components))
			for ci := range sites {
				sites[ci] = -1
			}
			if ref != None {
				taken := make([]bool, len(r.Reactants[ref.Pattern].Molecules[ref.Mol].Components))
				for ci, pc := range pm.Components {
					for rci, rc := range r.Reactants[ref.Pattern].Molecules[ref.Mol].Components {
						if !taken[rci] && rc.Name == pc.Name {
							taken[rci] = true
							sites[ci] = rci

							break
						}
					}
				}
			}
			corr.Sites[pi][mi] = sites
		}
	}
	for ri := range used {
		for rmi, u := range used[ri] {
			if !u {
				corr.Deleted = append(corr.Deleted, MolRef{Pattern: ri, Mol: rmi})
			}
		}
	}

	return corr
}

// Rxn is one concrete reaction of a generated network.
type Rxn struct {
	// Reactants and Products are species indices.
	Reactants []int
	Products  []int

	// Rate is the effective rate constant: rule rate / Degeneracy.
	Rate float64

	// Degeneracy is the symmetry correction applied to the rule rate (>=1).
	Degeneracy int

	// PropensityFactor is 0.5 for reactions between two copies of one
	// species and 1 otherwise.
	PropensityFactor float64

	// Rule names the rule that produced the reaction.
	Rule string
}

// Key identifies the reaction structurally: sorted reactant and product
// index sets. Two reactions with equal keys are duplicates.
func (x *Rxn) Key() string {
	enc := func(idx []int) string {
		s := append([]int(nil), idx...)
		sort.Ints(s)
		parts := make([]string, len(s))
		for i, v := range s {
			parts[i] = strconv.Itoa(v)
		}

		return strings.Join(parts, ",")
	}

	return enc(x.Reactants) + "->" + enc(x.Products)
}

// String renders "0 + 1 -> 2 rate".
func (x *Rxn) String() string {
	join := func(idx []int) string {
		parts := make([]string, len(idx))
		for i, v := range idx {
			parts[i] = strconv.Itoa(v)
		}

		return strings.Join(parts, " + ")
	}

	return join(x.Reactants) + " -> " + join(x.Products) + " " + strconv.FormatFloat(x.Rate, 'g', -1, 64)
}

// Species is a fully specified complex with a stable index in a network.
// Identity is Key, the canonical form of Graph.
type Species struct {
	Graph         *Graph
	Index         int
	Concentration float64
	Key           string
}

// File: methods_bonds.go
// Role: molecule and bond mutation plus bond table queries.
// Failure policy:
//   - Out-of-range molecule or component indices are contract violations of
//     the caller (normally the parser) and panic immediately.
//   - Every mutation drops the cached BondIndex and String().

package core

import (
	"fmt"
	"sort"
)

// AddMolecule appends a copy of m and returns its molecule index.
// Labels on m are kept as declared; they do not create bonds.
func (g *Graph) AddMolecule(m Molecule) int {
	g.Molecules = append(g.Molecules, m.Clone())
	g.invalidate()

	return len(g.Molecules) - 1
}

// NumMolecules returns the molecule count.
func (g *Graph) NumMolecules() int { return len(g.Molecules) }

// NumSites returns the total number of components over all molecules.
func (g *Graph) NumSites() int {
	n := 0
	for i := range g.Molecules {
		n += len(g.Molecules[i].Components)
	}

	return n
}

// Component returns a pointer to the component at s. Panics if s is out of range.
func (g *Graph) Component(s Site) *Component {
	g.mustSite(s)

	return &g.Molecules[s.Mol].Components[s.Comp]
}

// SetState sets the internal state of the component at s.
// Panics if s is out of range.
func (g *Graph) SetState(s Site, state string) {
	g.Component(s).State = state
	g.invalidate()
}

// SetCompartment moves molecule mol to compartment c.
// Panics if mol is out of range.
func (g *Graph) SetCompartment(mol int, c string) {
	if mol < 0 || mol >= len(g.Molecules) {
		panic(fmt.Sprintf("core: molecule %d out of range", mol))
	}
	g.Molecules[mol].Compartment = c
	g.invalidate()
}

// AddBond bonds sites a and b under label. A label of 0 picks the next
// unused label (max label + 1). Returns the label used.
//
// Errors:
//   - ErrSiteBonded if either site already has a bond.
//
// Panics when a or b is out of range or a == b.
// Complexity: O(C) when auto-assigning a label, O(1) otherwise.
func (g *Graph) AddBond(a, b Site, label int) (int, error) {
	g.mustSite(a)
	g.mustSite(b)
	if a == b {
		panic(fmt.Sprintf("core: cannot bond site %s to itself", a))
	}
	if _, ok := g.bonds[a]; ok {
		return 0, fmt.Errorf("%w: %s", ErrSiteBonded, a)
	}
	if _, ok := g.bonds[b]; ok {
		return 0, fmt.Errorf("%w: %s", ErrSiteBonded, b)
	}
	if label <= 0 {
		label = g.nextLabel()
	}
	if g.bonds == nil {
		g.bonds = make(map[Site]Site)
	}
	g.bonds[a] = b
	g.bonds[b] = a
	ca, cb := g.Component(a), g.Component(b)
	ca.Label, ca.Bond = label, BondNone
	cb.Label, cb.Bond = label, BondNone
	g.invalidate()

	return label, nil
}

// DeleteBond removes the bond at s together with its reciprocal entry and
// clears both labels. Deleting an unbonded site is a no-op.
func (g *Graph) DeleteBond(s Site) {
	g.mustSite(s)
	partner, ok := g.bonds[s]
	if !ok {
		return
	}
	delete(g.bonds, s)
	g.Component(s).Label = 0
	if back, ok := g.bonds[partner]; ok && back == s {
		delete(g.bonds, partner)
		g.Component(partner).Label = 0
	}
	g.invalidate()
}

// Partner returns the site bonded to s, if any.
func (g *Graph) Partner(s Site) (Site, bool) {
	g.mustSite(s)
	p, ok := g.bonds[s]

	return p, ok
}

// HasBondFast reports whether a and b are bonded to each other, using the
// cached BondIndex (rebuilt on demand).
func (g *Graph) HasBondFast(a, b Site) bool {
	return g.Index().HasBond(a, b)
}

// ComponentHasAnyBond reports whether s is bonded to anything.
func (g *Graph) ComponentHasAnyBond(s Site) bool {
	return g.Index().Bonded(s)
}

// Bond is one undirected bond with A < B in (Mol, Comp) order.
type Bond struct {
	A, B  Site
	Label int
}

// Bonds lists every bond once, sorted by endpoint A then B.
func (g *Graph) Bonds() []Bond {
	out := make([]Bond, 0, len(g.bonds)/2)
	for a, b := range g.bonds {
		if siteLess(a, b) {
			out = append(out, Bond{A: a, B: b, Label: g.Molecules[a.Mol].Components[a.Comp].Label})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return siteLess(out[i].A, out[j].A)
		}

		return siteLess(out[i].B, out[j].B)
	})

	return out
}

// NumBonds returns the number of bonds.
func (g *Graph) NumBonds() int { return len(g.bonds) / 2 }

// ResolveLabels turns declared component labels into bonds: every label
// carried by exactly two components becomes a bond between them. Labels seen
// once are returned as dangling (legal in reactant patterns, where they mean
// "bound to something"). A label carried by more than two sites is an error.
func (g *Graph) ResolveLabels() (dangling []int, err error) {
	byLabel := make(map[int][]Site)
	labels := make([]int, 0)
	for mi := range g.Molecules {
		for ci, c := range g.Molecules[mi].Components {
			if c.Label <= 0 {
				continue
			}
			if _, bonded := g.bonds[Site{mi, ci}]; bonded {
				continue
			}
			if _, seen := byLabel[c.Label]; !seen {
				labels = append(labels, c.Label)
			}
			byLabel[c.Label] = append(byLabel[c.Label], Site{mi, ci})
		}
	}
	sort.Ints(labels)
	for _, l := range labels {
		sites := byLabel[l]
		switch len(sites) {
		case 1:
			dangling = append(dangling, l)
		case 2:
			if _, err = g.AddBond(sites[0], sites[1], l); err != nil {
				return dangling, err
			}
		default:
			return dangling, fmt.Errorf("%w: label %d has %d endpoints", ErrInconsistentBonds, l, len(sites))
		}
	}

	return dangling, nil
}

// Validate checks bond table reciprocity and label consistency.
func (g *Graph) Validate() error {
	for a, b := range g.bonds {
		if a.Mol >= len(g.Molecules) || a.Comp >= len(g.Molecules[a.Mol].Components) {
			return fmt.Errorf("%w: site %s out of range", ErrInconsistentBonds, a)
		}
		if back, ok := g.bonds[b]; !ok || back != a {
			return fmt.Errorf("%w: bond %s-%s is not reciprocal", ErrInconsistentBonds, a, b)
		}
		la := g.Molecules[a.Mol].Components[a.Comp].Label
		lb := g.Molecules[b.Mol].Components[b.Comp].Label
		if la <= 0 || la != lb {
			return fmt.Errorf("%w: bond %s-%s has labels %d/%d", ErrInconsistentBonds, a, b, la, lb)
		}
	}

	return nil
}

// MoleculeNeighbors returns the distinct molecules bonded to mol, ascending.
// Intramolecular bonds do not make a molecule its own neighbour.
func (g *Graph) MoleculeNeighbors(mol int) []int {
	return g.Index().Neighbors(mol)
}

func (g *Graph) nextLabel() int {
	max := 0
	for i := range g.Molecules {
		for _, c := range g.Molecules[i].Components {
			if c.Label > max {
				max = c.Label
			}
		}
	}

	return max + 1
}

func (g *Graph) mustSite(s Site) {
	if s.Mol < 0 || s.Mol >= len(g.Molecules) || s.Comp < 0 || s.Comp >= len(g.Molecules[s.Mol].Components) {
		panic(fmt.Sprintf("core: site %s out of range", s))
	}
}

func (g *Graph) invalidate() {
	g.mu.Lock()
	g.index = nil
	g.str = ""
	g.mu.Unlock()
}

func siteLess(a, b Site) bool {
	if a.Mol != b.Mol {
		return a.Mol < b.Mol
	}

	return a.Comp < b.Comp
}

// File: methods_clone.go
// Role: deep copies, merging and induced subgraphs.
// Determinism:
//   - Clone keeps molecule order, labels and bonds exactly.
//   - Induced keeps the caller's molecule order and the original labels.

package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Clone returns a deep, independent copy of g. Caches are not shared.
// Rule rewriting always works on clones so that matched species stay intact.
// Complexity: O(M + C + B).
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Molecules: make([]Molecule, len(g.Molecules)),
		bonds:     make(map[Site]Site, len(g.bonds)),
	}
	for i := range g.Molecules {
		out.Molecules[i] = g.Molecules[i].Clone()
	}
	for a, b := range g.bonds {
		out.bonds[a] = b
	}

	return out
}

// Merge appends clones of other's molecules and bonds to g and returns the
// molecule offset at which they were placed. Bond labels of other are
// renumbered above g's current maximum so labels stay unique.
func (g *Graph) Merge(other *Graph) int {
	offset := len(g.Molecules)
	shift := g.nextLabel() - 1
	for i := range other.Molecules {
		m := other.Molecules[i].Clone()
		for ci := range m.Components {
			if m.Components[ci].Label > 0 {
				m.Components[ci].Label += shift
			}
		}
		g.Molecules = append(g.Molecules, m)
	}
	if g.bonds == nil {
		g.bonds = make(map[Site]Site)
	}
	for a, b := range other.bonds {
		g.bonds[Site{a.Mol + offset, a.Comp}] = Site{b.Mol + offset, b.Comp}
	}
	g.invalidate()

	return offset
}

// Induced returns the subgraph on the given molecules, reindexed 0..k-1 in
// the order given, keeping only bonds with both endpoints inside the set.
// Sites whose bond leaves the set lose their label. The second result maps
// old molecule index -> new index (-1 when excluded).
func (g *Graph) Induced(mols []int) (*Graph, []int) {
	oldToNew := make([]int, len(g.Molecules))
	for i := range oldToNew {
		oldToNew[i] = -1
	}
	sub := &Graph{
		Molecules: make([]Molecule, 0, len(mols)),
		bonds:     make(map[Site]Site),
	}
	for _, old := range mols {
		if old < 0 || old >= len(g.Molecules) {
			panic(fmt.Sprintf("core: molecule %d out of range", old))
		}
		oldToNew[old] = len(sub.Molecules)
		sub.Molecules = append(sub.Molecules, g.Molecules[old].Clone())
	}
	for i := range sub.Molecules {
		for ci := range sub.Molecules[i].Components {
			sub.Molecules[i].Components[ci].Label = 0
		}
	}
	for a, b := range g.bonds {
		na, nb := oldToNew[a.Mol], oldToNew[b.Mol]
		if na < 0 || nb < 0 {
			continue
		}
		sa, sb := Site{na, a.Comp}, Site{nb, b.Comp}
		sub.bonds[sa] = sb
		sub.Molecules[na].Components[a.Comp].Label = g.Molecules[a.Mol].Components[a.Comp].Label
	}

	return sub, oldToNew
}

// String renders g in BNGL notation with molecules in stored order, e.g.
// "A(b!1,s~P).B(a!1)". The result is cached until the next mutation.
// It is not canonical; see package canon for species identity.
func (g *Graph) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.str != "" || len(g.Molecules) == 0 {
		return g.str
	}
	var b strings.Builder
	for i := range g.Molecules {
		if i > 0 {
			b.WriteByte('.')
		}
		g.Molecules[i].write(&b)
	}
	g.str = b.String()

	return g.str
}

// String renders the molecule in BNGL notation.
func (m Molecule) String() string {
	var b strings.Builder
	m.write(&b)

	return b.String()
}

func (m Molecule) write(b *strings.Builder) {
	b.WriteString(m.Name)
	if len(m.Components) > 0 || m.ExplicitEmpty {
		b.WriteByte('(')
		for i, c := range m.Components {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.String())
		}
		b.WriteByte(')')
	}
	if m.Compartment != "" {
		b.WriteByte('@')
		b.WriteString(m.Compartment)
	}
}

// String renders the component as name[~state][!label|!wildcard].
func (c Component) String() string {
	s := c.Name
	if c.State != "" {
		s += "~" + c.State
	}
	switch {
	case c.Label > 0:
		s += "!" + strconv.Itoa(c.Label)
	case c.Bond != BondNone:
		s += "!" + c.Bond.String()
	}

	return s
}

// SPDX-License-Identifier: MIT

package canon

import (
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/rulenet/core"
)

// Canonicalize returns the canonical key of g. An empty graph yields "".
func Canonicalize(g *core.Graph) string {
	if g == nil || g.NumMolecules() == 0 {
		return ""
	}
	s := newSearch(g)
	s.visit(s.initial(), nil)

	return s.best
}

// Equal reports whether a and b are the same species.
func Equal(a, b *core.Graph) bool {
	if a.NumMolecules() != b.NumMolecules() || a.NumSites() != b.NumSites() || a.NumBonds() != b.NumBonds() {
		return false
	}

	return Canonicalize(a) == Canonicalize(b)
}

// LocalSignature describes molecule mol of g by its own name, compartment
// and sites only: "Name@comp(site~state!Partner:psite,...)" with sites
// sorted. Bonded sites name their partner molecule and site instead of the
// raw label; wildcards render as "!+", "!-", "!?" and a label without a
// partner as "!_".
func LocalSignature(g *core.Graph, mol int) string {
	m := &g.Molecules[mol]
	idx := g.Index()
	sites := make([]string, len(m.Components))
	for ci, c := range m.Components {
		var b strings.Builder
		b.WriteString(c.Name)
		if c.State != "" {
			b.WriteByte('~')
			b.WriteString(c.State)
		}
		if p, ok := idx.Partner(core.Site{Mol: mol, Comp: ci}); ok {
			b.WriteByte('!')
			b.WriteString(g.Molecules[p.Mol].Name)
			b.WriteByte(':')
			b.WriteString(g.Molecules[p.Mol].Components[p.Comp].Name)
		} else if c.Label > 0 {
			b.WriteString("!_")
		} else if c.Bond != core.BondNone {
			b.WriteByte('!')
			b.WriteString(c.Bond.String())
		}
		sites[ci] = b.String()
	}
	sort.Strings(sites)

	out := m.Name
	if m.Compartment != "" {
		out += "@" + m.Compartment
	}

	return out + "(" + strings.Join(sites, ",") + ")"
}

// serialize renders g with molecules in the given order. Components are
// sorted by name, state, bond kind and partner position; bond labels are
// numbered 1..k in order of first appearance.
func serialize(g *core.Graph, idx *core.BondIndex, order []int) string {
	pos := make([]int, len(order))
	for p, m := range order {
		pos[m] = p
	}
	labels := make(map[core.Site]int)
	next := 1

	var b strings.Builder
	for p, m := range order {
		if p > 0 {
			b.WriteByte('.')
		}
		mol := &g.Molecules[m]
		b.WriteString(mol.Name)
		b.WriteByte('(')

		comps := make([]int, len(mol.Components))
		for i := range comps {
			comps[i] = i
		}
		key := func(ci int) compKey {
			c := mol.Components[ci]
			k := compKey{name: c.Name, state: c.State, kind: bondKind(c), partnerPos: -1, label: -1}
			if ps, ok := idx.Partner(core.Site{Mol: m, Comp: ci}); ok {
				pc := g.Molecules[ps.Mol].Components[ps.Comp]
				k.partnerPos, k.partnerName, k.partnerState = pos[ps.Mol], pc.Name, pc.State
				if l, seen := labels[ps]; seen {
					k.label = l
				}
			}

			return k
		}
		sort.SliceStable(comps, func(i, j int) bool { return key(comps[i]).less(key(comps[j])) })

		for i, ci := range comps {
			if i > 0 {
				b.WriteByte(',')
			}
			c := mol.Components[ci]
			b.WriteString(c.Name)
			if c.State != "" {
				b.WriteByte('~')
				b.WriteString(c.State)
			}
			site := core.Site{Mol: m, Comp: ci}
			if ps, ok := idx.Partner(site); ok {
				l, seen := labels[site]
				if !seen {
					l = next
					next++
					labels[site], labels[ps] = l, l
				}
				b.WriteByte('!')
				b.WriteString(strconv.Itoa(l))
			} else if c.Label > 0 {
				b.WriteString("!+")
			} else if c.Bond != core.BondNone {
				b.WriteByte('!')
				b.WriteString(c.Bond.String())
			}
		}
		b.WriteByte(')')
		if mol.Compartment != "" {
			b.WriteByte('@')
			b.WriteString(mol.Compartment)
		}
	}

	return b.String()
}

// compKey orders the components of one molecule during serialization.
type compKey struct {
	name, state               string
	kind                      int
	partnerPos                int
	partnerName, partnerState string
	label                     int
}

func (a compKey) less(b compKey) bool {
	switch {
	case a.name != b.name:
		return a.name < b.name
	case a.state != b.state:
		return a.state < b.state
	case a.kind != b.kind:
		return a.kind < b.kind
	case a.partnerPos != b.partnerPos:
		return a.partnerPos < b.partnerPos
	case a.partnerName != b.partnerName:
		return a.partnerName < b.partnerName
	case a.partnerState != b.partnerState:
		return a.partnerState < b.partnerState
	default:
		return a.label < b.label
	}
}

// bondKind is 0 for a free site, 1 for a concrete bond or dangling label,
// and 2+ for the wildcards.
func bondKind(c core.Component) int {
	if c.Label > 0 {
		return 1
	}
	if c.Bond != core.BondNone {
		return 1 + int(c.Bond)
	}

	return 0
}

package netgen

import (
	"github.com/emirpasic/gods/sets/treeset"

	"github.com/katalvlaran/rulenet/canon"
	"github.com/katalvlaran/rulenet/core"
)

// Network is the output of a run: species in first-enqueued order and the
// reactions between them. It also carries the indexes the generator uses
// for deduplication and partner lookup.
type Network struct {
	Species   []*core.Species
	Reactions []*core.Rxn

	byKey      map[string]*core.Species
	rxnKeys    map[string]int
	byMolecule map[string]*treeset.Set // molecule name -> species indices
}

// NewNetwork returns an empty network.
func NewNetwork() *Network {
	return &Network{
		byKey:      make(map[string]*core.Species),
		rxnKeys:    make(map[string]int),
		byMolecule: make(map[string]*treeset.Set),
	}
}

// AddSpecies adds g under its canonical key and reports whether it was new.
// Adding a graph whose key is already present returns the existing species.
func (n *Network) AddSpecies(g *core.Graph) (*core.Species, bool) {
	return n.addKeyed(g, canon.Canonicalize(g))
}

func (n *Network) addKeyed(g *core.Graph, key string) (*core.Species, bool) {
	if sp, ok := n.byKey[key]; ok {
		return sp, false
	}
	sp := &core.Species{Graph: g, Index: len(n.Species), Key: key}
	n.Species = append(n.Species, sp)
	n.byKey[key] = sp
	for i := range g.Molecules {
		name := g.Molecules[i].Name
		set, ok := n.byMolecule[name]
		if !ok {
			set = treeset.NewWithIntComparator()
			n.byMolecule[name] = set
		}
		set.Add(sp.Index)
	}

	return sp, true
}

// Lookup returns the species with canonical key key.
func (n *Network) Lookup(key string) (*core.Species, bool) {
	sp, ok := n.byKey[key]

	return sp, ok
}

// AddReaction appends r unless a reaction with the same sorted reactant and
// product index sets exists; the first one is kept. Reports whether r was added.
func (n *Network) AddReaction(r *core.Rxn) bool {
	if n.HasReaction(r) {
		return false
	}
	n.rxnKeys[r.Key()] = len(n.Reactions)
	n.Reactions = append(n.Reactions, r)

	return true
}

// HasReaction reports whether a reaction structurally equal to r exists.
func (n *Network) HasReaction(r *core.Rxn) bool {
	_, ok := n.rxnKeys[r.Key()]

	return ok
}

// Candidates returns, ascending, the indices of species that contain every
// molecule name in names. No names selects all species.
func (n *Network) Candidates(names []string) []int {
	if len(names) == 0 {
		out := make([]int, len(n.Species))
		for i := range out {
			out[i] = i
		}

		return out
	}
	var smallest *treeset.Set
	for _, name := range names {
		set, ok := n.byMolecule[name]
		if !ok {
			return nil
		}
		if smallest == nil || set.Size() < smallest.Size() {
			smallest = set
		}
	}
	var out []int
	it := smallest.Iterator()
	for it.Next() {
		idx := it.Value().(int)
		keep := true
		for _, name := range names {
			if !n.byMolecule[name].Contains(idx) {
				keep = false

				break
			}
		}
		if keep {
			out = append(out, idx)
		}
	}

	return out
}

// NumSpecies returns len(n.Species).
func (n *Network) NumSpecies() int { return len(n.Species) }

// NumReactions returns len(n.Reactions).
func (n *Network) NumReactions() int { return len(n.Reactions) }

package core

import "sort"

// BondIndex is an immutable adjacency snapshot of a Graph: a site×site bitset
// for O(1) "is a bonded to b" queries, a flat partner table, and per-molecule
// neighbour lists. Build one per matching session with NewBondIndex, or use
// Graph.Index for the cached instance.
type BondIndex struct {
	offsets   []int    // molecule -> first flat site index
	total     int      // number of sites
	bits      []uint64 // total*total adjacency bits
	partner   []int    // flat site -> flat partner, -1 if free
	neighbors [][]int  // molecule -> distinct neighbour molecules, ascending
}

// NewBondIndex snapshots the bond table of g.
// Complexity: O(C² / 64) memory for the bitset, O(C + B) time.
func NewBondIndex(g *Graph) *BondIndex {
	idx := &BondIndex{offsets: make([]int, len(g.Molecules))}
	for i := range g.Molecules {
		idx.offsets[i] = idx.total
		idx.total += len(g.Molecules[i].Components)
	}
	idx.bits = make([]uint64, (idx.total*idx.total+63)/64)
	idx.partner = make([]int, idx.total)
	for i := range idx.partner {
		idx.partner[i] = -1
	}
	idx.neighbors = make([][]int, len(g.Molecules))
	for a, b := range g.bonds {
		fa, fb := idx.flat(a), idx.flat(b)
		bit := fa*idx.total + fb
		idx.bits[bit>>6] |= 1 << (uint(bit) & 63)
		idx.partner[fa] = fb
		if a.Mol != b.Mol {
			idx.neighbors[a.Mol] = append(idx.neighbors[a.Mol], b.Mol)
		}
	}
	for m, nbs := range idx.neighbors {
		sort.Ints(nbs)
		idx.neighbors[m] = dedupSorted(nbs)
	}

	return idx
}

// Index returns the cached BondIndex of g, building it if a bond edit has
// invalidated it.
func (g *Graph) Index() *BondIndex {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.index == nil {
		g.index = NewBondIndex(g)
	}

	return g.index
}

// HasBond reports whether a and b are bonded to each other.
func (idx *BondIndex) HasBond(a, b Site) bool {
	bit := idx.flat(a)*idx.total + idx.flat(b)

	return idx.bits[bit>>6]&(1<<(uint(bit)&63)) != 0
}

// Bonded reports whether s has any bond.
func (idx *BondIndex) Bonded(s Site) bool { return idx.partner[idx.flat(s)] >= 0 }

// Partner returns the site bonded to s.
func (idx *BondIndex) Partner(s Site) (Site, bool) {
	p := idx.partner[idx.flat(s)]
	if p < 0 {
		return Site{}, false
	}
	// offsets is ascending; find the molecule owning flat index p
	m := sort.Search(len(idx.offsets), func(i int) bool { return idx.offsets[i] > p }) - 1

	return Site{Mol: m, Comp: p - idx.offsets[m]}, true
}

// Neighbors returns the distinct molecules bonded to mol, ascending.
// The slice is shared; callers must not modify it.
func (idx *BondIndex) Neighbors(mol int) []int { return idx.neighbors[mol] }

// Degree is len(Neighbors(mol)).
func (idx *BondIndex) Degree(mol int) int { return len(idx.neighbors[mol]) }

func (idx *BondIndex) flat(s Site) int { return idx.offsets[s.Mol] + s.Comp }

func dedupSorted(xs []int) []int {
	if len(xs) < 2 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}

	return out
}

package canon

import (
	"sort"

	"github.com/katalvlaran/rulenet/core"
)

// arc is one bond seen from a molecule: own site code, partner site code
// and partner molecule.
type arc struct {
	own, other int
	to         int
}

// search holds the individualization-refinement state of one Canonicalize call.
type search struct {
	g    *core.Graph
	idx  *core.BondIndex
	n    int
	arcs [][]arc

	best      string
	found     bool
	firstStr  string
	firstPath []int
	firstOrd  []int

	gens [][]int // automorphisms found so far, as molecule permutations
}

func newSearch(g *core.Graph) *search {
	idx := g.Index()
	s := &search{g: g, idx: idx, n: g.NumMolecules(), arcs: make([][]arc, g.NumMolecules())}

	// site codes: rank of "name~state" among all site descriptors
	codes := make(map[string]int)
	var names []string
	desc := func(c core.Component) string { return c.Name + "~" + c.State }
	for mi := range g.Molecules {
		for _, c := range g.Molecules[mi].Components {
			d := desc(c)
			if _, ok := codes[d]; !ok {
				codes[d] = 0
				names = append(names, d)
			}
		}
	}
	sort.Strings(names)
	for i, d := range names {
		codes[d] = i
	}
	for mi := range g.Molecules {
		for ci, c := range g.Molecules[mi].Components {
			if p, ok := idx.Partner(core.Site{Mol: mi, Comp: ci}); ok {
				pc := g.Molecules[p.Mol].Components[p.Comp]
				s.arcs[mi] = append(s.arcs[mi], arc{own: codes[desc(c)], other: codes[desc(pc)], to: p.Mol})
			}
		}
	}

	return s
}

// initial colours molecules by the rank of their LocalSignature.
func (s *search) initial() []int {
	sigs := make([]string, s.n)
	for m := range sigs {
		sigs[m] = LocalSignature(s.g, m)
	}
	sorted := append([]string(nil), sigs...)
	sort.Strings(sorted)
	colour := make([]int, s.n)
	for m, sig := range sigs {
		colour[m] = sort.SearchStrings(sorted, sig)
	}

	return rank(colour, func(m int) []int { return []int{colour[m]} })
}

// refine splits colour classes by neighbourhood until the number of classes
// stops growing. Class order is preserved: a refined class sorts inside its
// parent class.
func (s *search) refine(colour []int) []int {
	classes := countClasses(colour)
	for {
		cur := colour
		next := rank(cur, func(m int) []int {
			sig := make([][3]int, len(s.arcs[m]))
			for i, a := range s.arcs[m] {
				sig[i] = [3]int{a.own, a.other, cur[a.to]}
			}
			sort.Slice(sig, func(i, j int) bool {
				for k := 0; k < 3; k++ {
					if sig[i][k] != sig[j][k] {
						return sig[i][k] < sig[j][k]
					}
				}

				return false
			})
			key := make([]int, 0, 1+3*len(sig))
			key = append(key, cur[m])
			for _, t := range sig {
				key = append(key, t[0], t[1], t[2])
			}

			return key
		})
		c := countClasses(next)
		colour = next
		if c == classes {
			return colour
		}
		classes = c
	}
}

// visit explores the search tree below the partition colour reached by
// individualizing path. It returns the level to jump back to, or -1.
func (s *search) visit(colour []int, path []int) int {
	colour = s.refine(colour)
	cell := targetCell(colour)
	if cell == nil {
		return s.leaf(colour, path)
	}

	var explored []int
	for _, v := range cell {
		if s.sameOrbit(v, explored, path) {
			continue
		}
		explored = append(explored, v)
		j := s.visit(individualize(colour, v), append(append([]int(nil), path...), v))
		if j >= 0 && j < len(path) {
			return j
		}
	}

	return -1
}

// leaf records the serialization of a discrete partition.
func (s *search) leaf(colour []int, path []int) int {
	order := make([]int, s.n)
	for m, c := range colour {
		order[c] = m
	}
	str := serialize(s.g, s.idx, order)
	if !s.found {
		s.found = true
		s.best, s.firstStr = str, str
		s.firstPath, s.firstOrd = path, order

		return -1
	}
	if str == s.firstStr {
		s.addGen(order, s.firstOrd)
		// the subtree where this path left the first path mirrors it
		d := 0
		for d < len(path) && d < len(s.firstPath) && path[d] == s.firstPath[d] {
			d++
		}

		return d
	}
	if str < s.best {
		s.best = str
	}

	return -1
}

// addGen stores the automorphism mapping order[i] to ref[i].
func (s *search) addGen(order, ref []int) {
	perm := make([]int, s.n)
	for i, m := range order {
		perm[m] = ref[i]
	}
	s.gens = append(s.gens, perm)
}

// sameOrbit reports whether v shares an orbit with an explored molecule
// under the automorphisms that fix path pointwise.
func (s *search) sameOrbit(v int, explored, path []int) bool {
	if len(explored) == 0 || len(s.gens) == 0 {
		return false
	}
	parent := make([]int, s.n)
	for i := range parent {
		parent[i] = i
	}
	find := func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}

		return x
	}
next:
	for _, perm := range s.gens {
		for _, p := range path {
			if perm[p] != p {
				continue next
			}
		}
		for m, img := range perm {
			a, b := find(m), find(img)
			if a != b {
				parent[a] = b
			}
		}
	}
	rv := find(v)
	for _, u := range explored {
		if find(u) == rv {
			return true
		}
	}

	return false
}

// targetCell returns the members of the first colour class with more than
// one molecule, ascending, or nil if the partition is discrete.
func targetCell(colour []int) []int {
	count := make([]int, len(colour))
	for _, c := range colour {
		count[c]++
	}
	for c, k := range count {
		if k > 1 {
			var cell []int
			for m, cm := range colour {
				if cm == c {
					cell = append(cell, m)
				}
			}

			return cell
		}
	}

	return nil
}

// individualize gives v its own class ahead of the rest of its class.
func individualize(colour []int, v int) []int {
	return rank(colour, func(m int) []int {
		if m == v {
			return []int{colour[m], 0}
		}

		return []int{colour[m], 1}
	})
}

// rank assigns each molecule the dense rank of key(m) in lexicographic order.
// Equal keys share a colour; colour values are positions of the class start,
// so a discrete partition is a permutation.
func rank(colour []int, key func(m int) []int) []int {
	n := len(colour)
	keys := make([][]int, n)
	ids := make([]int, n)
	for m := 0; m < n; m++ {
		keys[m] = key(m)
		ids[m] = m
	}
	sort.SliceStable(ids, func(i, j int) bool { return lessInts(keys[ids[i]], keys[ids[j]]) })
	out := make([]int, n)
	start := 0
	for i, m := range ids {
		if i > 0 && lessInts(keys[ids[i-1]], keys[m]) {
			start = i
		}
		out[m] = start
	}

	return out
}

func countClasses(colour []int) int {
	seen := make(map[int]struct{}, len(colour))
	for _, c := range colour {
		seen[c] = struct{}{}
	}

	return len(seen)
}

func lessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return len(a) < len(b)
}

package match

import (
	"github.com/katalvlaran/rulenet/bfs"
)

// buildOrder fixes the order in which pattern molecules are mapped.
//
// Each connected component of the pattern is visited from a root of maximal
// degree and minimal target frequency. Within a BFS level, the next node is
// the one with most already ordered neighbours, then highest degree, then
// rarest name in the target, then lowest index. Every non-root node thus has
// an ordered neighbour (its anchor) whose image bounds its candidates.
func (s *state) buildOrder() {
	n := s.pat.NumMolecules()
	freq := make(map[string]int)
	for i := range s.tgt.Molecules {
		freq[s.tgt.Molecules[i].Name]++
	}
	placed := make([]bool, n)
	covered := make([]int, n)
	s.order = make([]int, 0, n)
	s.anchor = make([]int, 0, n)

	better := func(a, b int) bool {
		if covered[a] != covered[b] {
			return covered[a] > covered[b]
		}
		da, db := s.pidx.Degree(a), s.pidx.Degree(b)
		if da != db {
			return da > db
		}
		fa, fb := freq[s.pat.Molecules[a].Name], freq[s.pat.Molecules[b].Name]
		if fa != fb {
			return fa < fb
		}

		return a < b
	}
	place := func(m int) {
		anchor := -1
		for _, q := range s.pidx.Neighbors(m) {
			if placed[q] && (anchor < 0 || s.pos[q] < s.pos[anchor]) {
				anchor = q
			}
		}
		s.pos[m] = len(s.order)
		s.order = append(s.order, m)
		s.anchor = append(s.anchor, anchor)
		placed[m] = true
		for _, q := range s.pidx.Neighbors(m) {
			covered[q]++
		}
	}

	s.pos = make([]int, n)
	for _, comp := range bfs.Components(s.pat) {
		root := comp[0]
		for _, m := range comp[1:] {
			if better(m, root) {
				root = m
			}
		}
		// root search never fails: root is in range and no hooks are set
		res, _ := bfs.BFS(s.pat, root)
		for _, level := range res.Levels() {
			rest := append([]int(nil), level...)
			for len(rest) > 0 {
				bi := 0
				for i := 1; i < len(rest); i++ {
					if better(rest[i], rest[bi]) {
						bi = i
					}
				}
				place(rest[bi])
				rest = append(rest[:bi], rest[bi+1:]...)
			}
		}
	}
}

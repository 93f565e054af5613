// SPDX-License-Identifier: MIT

package match

import (
	"sort"

	"github.com/katalvlaran/rulenet/core"
)

// ctxCheckEvery is the number of search frames between context checks.
const ctxCheckEvery = 256

// FindAll returns every embedding of pattern in target, in the
// deterministic order induced by the node ordering and ascending candidate
// iteration. An empty pattern yields a single empty Map.
//
// Errors: ErrNilGraph, ErrOptionViolation, or ctx.Err() when the context
// set by WithContext is done; embeddings found so far are returned with it.
func FindAll(pattern, target *core.Graph, opts ...Option) ([]Map, error) {
	if pattern == nil || target == nil {
		return nil, ErrNilGraph
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if pattern.NumMolecules() == 0 {
		return []Map{{Molecules: []int{}, Components: [][]int{}}}, nil
	}
	if pattern.NumMolecules() > target.NumMolecules() {
		return nil, nil
	}

	s := newState(pattern, target, o)
	err := s.run()

	return s.out, err
}

// Matches reports whether pattern embeds into target at least once.
func Matches(pattern, target *core.Graph) bool {
	maps, err := FindAll(pattern, target, WithLimit(1))

	return err == nil && len(maps) > 0
}

// state is the mutable search state of one FindAll call.
type state struct {
	pat, tgt   *core.Graph
	pidx, tidx *core.BondIndex
	opts       Options

	order  []int // pattern molecules in mapping order
	anchor []int // anchor[d]: ordered pattern neighbour of order[d], or -1
	pos    []int // position of each pattern molecule in order

	molMap  []int   // pattern molecule -> target molecule, -1 if unmapped
	used    []bool  // target molecule already in the image
	compMap [][]int // component assignment of each mapped pattern molecule

	pprof, tprof []map[string]int // component name multisets
	compOrder    [][]int          // pattern components by decreasing constraint
	static       map[[2]int][]bitset

	out []Map
}

func newState(pattern, target *core.Graph, o Options) *state {
	s := &state{
		pat:     pattern,
		tgt:     target,
		pidx:    pattern.Index(),
		tidx:    target.Index(),
		opts:    o,
		molMap:  make([]int, pattern.NumMolecules()),
		used:    make([]bool, target.NumMolecules()),
		compMap: make([][]int, pattern.NumMolecules()),
		static:  make(map[[2]int][]bitset),
	}
	for i := range s.molMap {
		s.molMap[i] = -1
	}
	s.pprof = profiles(pattern)
	s.tprof = profiles(target)
	s.compOrder = make([][]int, pattern.NumMolecules())
	for p := range s.compOrder {
		s.compOrder[p] = s.priorityOrder(p)
	}
	s.buildOrder()

	return s
}

// frame is one level of the molecule search: pattern molecule p being
// mapped, its target candidates and the site assignments of the current
// candidate.
type frame struct {
	p       int
	cands   []int
	ci      int
	assigns [][]int
	ai      int
	mapped  bool
}

// run is the explicit-stack backtracking search.
func (s *state) run() error {
	stack := []*frame{s.newFrame(0)}
	steps := 0
	for len(stack) > 0 {
		if steps%ctxCheckEvery == 0 {
			select {
			case <-s.opts.Ctx.Done():
				return s.opts.Ctx.Err()
			default:
			}
		}
		steps++

		f := stack[len(stack)-1]
		if f.mapped {
			s.unmap(f.p)
			f.mapped = false
		}
		if !s.advance(f) {
			stack = stack[:len(stack)-1]
			continue
		}
		s.mapPair(f.p, f.cands[f.ci-1], f.assigns[f.ai-1])
		f.mapped = true

		if len(stack) == len(s.order) {
			s.record()
			if s.opts.Limit > 0 && len(s.out) >= s.opts.Limit {
				return nil
			}
			continue
		}
		stack = append(stack, s.newFrame(len(stack)))
	}

	return nil
}

// newFrame prepares the candidates of the pattern molecule at order position d:
// unmapped target neighbours of the anchor's image, or every unmapped target
// molecule when d starts a new pattern component.
func (s *state) newFrame(d int) *frame {
	p := s.order[d]
	f := &frame{p: p}
	name := s.pat.Molecules[p].Name
	consider := func(t int) {
		if !s.used[t] && s.tgt.Molecules[t].Name == name {
			f.cands = append(f.cands, t)
		}
	}
	if a := s.anchor[d]; a >= 0 {
		for _, t := range s.tidx.Neighbors(s.molMap[a]) {
			consider(t)
		}
	} else {
		for t := range s.tgt.Molecules {
			consider(t)
		}
	}

	return f
}

// advance moves f to its next (candidate, site assignment) pair.
func (s *state) advance(f *frame) bool {
	if f.ai < len(f.assigns) {
		f.ai++

		return true
	}
	for f.ci < len(f.cands) {
		t := f.cands[f.ci]
		f.ci++
		if s.used[t] || !s.feasible(f.p, t) {
			continue
		}
		f.assigns, f.ai = s.siteAssignments(f.p, t), 0
		if len(f.assigns) > 0 {
			f.ai = 1

			return true
		}
	}

	return false
}

// feasible runs the molecule-level checks for pairing p with t: the quick
// name/compartment/site multiset check, the label-consistency cut over
// unmapped neighbourhoods, and frontier consistency with mapped neighbours.
// Site-level feasibility is decided by siteAssignments.
func (s *state) feasible(p, t int) bool {
	pm, tm := &s.pat.Molecules[p], &s.tgt.Molecules[t]
	if pm.Name != tm.Name || (pm.Compartment != "" && pm.Compartment != tm.Compartment) {
		return false
	}
	for name, k := range s.pprof[p] {
		if s.tprof[t][name] < k {
			return false
		}
	}

	// label-consistency cut
	need := make(map[string]int)
	for _, q := range s.pidx.Neighbors(p) {
		if s.molMap[q] < 0 {
			need[s.pat.Molecules[q].Name]++
		}
	}
	if len(need) > 0 {
		have := make(map[string]int)
		for _, u := range s.tidx.Neighbors(t) {
			if !s.used[u] {
				have[s.tgt.Molecules[u].Name]++
			}
		}
		for name, k := range need {
			if have[name] < k {
				return false
			}
		}
	}

	// frontier: every mapped pattern neighbour must map to a target neighbour
	tn := s.tidx.Neighbors(t)
	for _, q := range s.pidx.Neighbors(p) {
		if img := s.molMap[q]; img >= 0 {
			i := sort.SearchInts(tn, img)
			if i == len(tn) || tn[i] != img {
				return false
			}
		}
	}

	return true
}

func (s *state) mapPair(p, t int, assign []int) {
	s.molMap[p] = t
	s.used[t] = true
	s.compMap[p] = assign
}

func (s *state) unmap(p int) {
	s.used[s.molMap[p]] = false
	s.molMap[p] = -1
	s.compMap[p] = nil
}

func (s *state) record() {
	m := Map{
		Molecules:  append([]int(nil), s.molMap...),
		Components: make([][]int, len(s.compMap)),
	}
	for p, a := range s.compMap {
		m.Components[p] = append([]int{}, a...)
	}
	s.out = append(s.out, m)
}

func profiles(g *core.Graph) []map[string]int {
	out := make([]map[string]int, len(g.Molecules))
	for i := range g.Molecules {
		out[i] = make(map[string]int, len(g.Molecules[i].Components))
		for _, c := range g.Molecules[i].Components {
			out[i][c.Name]++
		}
	}

	return out
}

package match

import (
	"sort"

	"github.com/katalvlaran/rulenet/core"
)

// priorityOrder sorts the components of pattern molecule p so that the most
// constrained are placed first: concrete bonds, then bound requirements,
// then unbound requirements, then explicit states.
func (s *state) priorityOrder(p int) []int {
	comps := s.pat.Molecules[p].Components
	score := func(ci int) int {
		c := comps[ci]
		sc := 0
		switch {
		case c.Label > 0:
			sc = 8
		case c.Bond == core.BondBound:
			sc = 4
		case c.Bond == core.BondUnbound:
			sc = 2
		}
		if c.State != "" {
			sc++
		}

		return sc
	}
	order := make([]int, len(comps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return score(order[i]) > score(order[j]) })

	return order
}

// staticCandidates returns, per component of p, the target components of t
// compatible by name, state and bond presence. Computed once per (p, t).
func (s *state) staticCandidates(p, t int) []bitset {
	key := [2]int{p, t}
	if c, ok := s.static[key]; ok {
		return c
	}
	pcs := s.pat.Molecules[p].Components
	tcs := s.tgt.Molecules[t].Components
	out := make([]bitset, len(pcs))
	for ci, pc := range pcs {
		out[ci] = newBitset(len(tcs))
		for tci, tc := range tcs {
			if pc.Name != tc.Name || (pc.State != "" && pc.State != tc.State) {
				continue
			}
			if !bondCompatible(pc, s.targetBonded(t, tci, tc)) {
				continue
			}
			out[ci].set(tci)
		}
	}
	s.static[key] = out

	return out
}

// targetBonded reports whether a target site is bonded. Besides a bond table
// entry, a dangling label or a "!+" wildcard on the target counts: both stand
// for a bond to a molecule outside the target, as in degeneracy regions.
func (s *state) targetBonded(t, tci int, tc core.Component) bool {
	return s.tidx.Bonded(core.Site{Mol: t, Comp: tci}) || tc.Label > 0 || tc.Bond == core.BondBound
}

// bondCompatible checks the bond requirement of pattern component pc against
// the bond presence of a target site. A concrete or dangling label requires
// a bond; a component with neither label nor wildcard requires a free site.
func bondCompatible(pc core.Component, bonded bool) bool {
	if pc.Label > 0 {
		return bonded
	}
	switch pc.Bond {
	case core.BondBound:
		return bonded
	case core.BondEither:
		return true
	default:
		return !bonded
	}
}

// siteAssignments enumerates every injective assignment of p's components to
// t's components that satisfies the static candidates and bond partner
// consistency with the current partial mapping. Each result maps pattern
// component index to target component index.
func (s *state) siteAssignments(p, t int) [][]int {
	order := s.compOrder[p]
	cands := s.staticCandidates(p, t)
	for _, ci := range order {
		if cands[ci].empty() {
			return nil
		}
	}
	ntc := len(s.tgt.Molecules[t].Components)
	assign := make([]int, len(order))
	for i := range assign {
		assign[i] = -1
	}
	taken := newBitset(ntc)
	cursor := make([]int, len(order)+1)

	var out [][]int
	for k := 0; k >= 0; {
		if k == len(order) {
			out = append(out, append([]int(nil), assign...))
			k--
			continue
		}
		ci := order[k]
		if prev := assign[ci]; prev >= 0 {
			taken.clear(prev)
			assign[ci] = -1
		}
		found := false
		for tc := cursor[k]; tc < ntc; tc++ {
			if !cands[ci].has(tc) || taken.has(tc) || !s.partnerConsistent(p, t, ci, tc, assign) {
				continue
			}
			assign[ci] = tc
			taken.set(tc)
			cursor[k] = tc + 1
			found = true

			break
		}
		if !found {
			cursor[k] = 0
			k--
			continue
		}
		k++
		cursor[k] = 0
	}

	return out
}

// partnerConsistent checks that, when pattern site (p, ci) is bonded, the
// target site (t, tc) is bonded to the image of the pattern partner, or to
// a molecule still free to become that image.
func (s *state) partnerConsistent(p, t, ci, tc int, assign []int) bool {
	pp, ok := s.pidx.Partner(core.Site{Mol: p, Comp: ci})
	if !ok {
		return true
	}
	tp, ok := s.tidx.Partner(core.Site{Mol: t, Comp: tc})
	if !ok {
		return false
	}
	if pp.Mol == p {
		if a := assign[pp.Comp]; a >= 0 {
			return tp == core.Site{Mol: t, Comp: a}
		}

		return tp.Mol == t
	}
	if img := s.molMap[pp.Mol]; img >= 0 {
		return tp == core.Site{Mol: img, Comp: s.compMap[pp.Mol][pp.Comp]}
	}

	return tp.Mol != t && !s.used[tp.Mol]
}

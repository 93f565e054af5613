// Package core is the graph model of rulenet.
//
// A species is a Graph: an ordered list of Molecules, each with ordered
// Components (sites), plus a symmetric bond table pairing sites. Patterns used
// by rules are Graphs too; they may leave states unset and use bond wildcards
// (BondBound "!+", BondUnbound "!-", BondEither "!?").
//
// Invariants:
//
//   - Every bond is stored from both endpoints and both endpoint components
//     carry the same Label; Validate checks this.
//   - A site takes part in at most one bond.
//   - Bond mutation (AddBond, DeleteBond, Merge) drops the cached BondIndex
//     and String(); the index is rebuilt lazily by Index, HasBondFast and
//     ComponentHasAnyBond.
//   - Out-of-range molecule or component indices panic: they are contract
//     violations of the caller, not recoverable conditions.
//
// Rules (Rule) pair reactant and product patterns; Correspondence derives
// which product molecules continue reactant molecules. Reactions (Rxn) and
// Species are produced by package netgen.
//
// Example:
//
//	g := core.NewGraph(
//		core.Molecule{Name: "A", Components: []core.Component{{Name: "b"}}},
//		core.Molecule{Name: "B", Components: []core.Component{{Name: "a"}}},
//	)
//	_, _ = g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)
//	fmt.Println(g) // A(b!1).B(a!1)
package core

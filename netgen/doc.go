// Package netgen expands seed species under a set of rules into a reaction
// network.
//
// A Generator keeps a FIFO work queue of species. Each dequeued species is
// matched against every rule: unimolecular rules embed their pattern into
// the species alone, bimolecular rules pair it with every known species that
// holds the partner pattern's molecule types (including itself). Every
// embedding is rewritten on a clone of the reactants, split into connected
// products, validated and canonicalized; unseen products join the network
// and the queue. Each reaction carries the rule rate divided by the
// degeneracy of its matched region.
//
// Rule sets may define infinite networks. Config bounds the run:
//
//	MaxSpecies, MaxReactions   fatal *LimitError when exceeded
//	MaxIterations              ends the run normally
//	MaxAgg, MaxStoich          fatal *LimitError naming the runaway rule
//	MemoryLimit                heap ceiling checked every CheckInterval steps
//
// Malformed rule variants and products are rejected with a rate-limited
// Warning and the run continues. Cancellation of the caller's context ends
// the run with ErrCanceled; the network built so far stays consistent.
//
// Example:
//
//	rules, _ := bngl.ParseRule("bind", "A(b) + B(a) <-> A(b!1).B(a!1)", 1, 0.1)
//	net, err := netgen.Generate(ctx, []netgen.Seed{
//		{Graph: bngl.MustParseGraph("A(b)"), Concentration: 1},
//		{Graph: bngl.MustParseGraph("B(a)"), Concentration: 1},
//	}, rules)
//
// Generators are single-threaded; the Network returned is owned by the caller.
package netgen

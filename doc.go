// Package rulenet generates biochemical reaction networks from rule-based
// models.
//
// Species are graphs of molecules joined by bonds between their sites.
// Rules are graph-rewrite templates: reactant patterns that, wherever they
// embed into species, are replaced by product patterns. Starting from seed
// species, rulenet applies every rule to every reachable species and
// collects the resulting species and reactions.
//
// Packages:
//
//	core/       - Graph, Molecule, Component, Rule, Rxn, Species
//	bngl/       - BNGL-style notation for species, patterns and rules
//	canon/      - canonical labeling; species identity
//	match/      - VF2++-style subgraph matcher over molecules and sites
//	degeneracy/ - symmetry factors for rule rates
//	bfs/        - breadth-first traversal and connected complexes
//	netgen/     - network generator with limits, warnings and metrics
//	modelfile/  - TOML model files
//	builder/    - species fixtures for tests and benchmarks
//	cmd/rulenet - command-line generator
//
// Quick start:
//
//	rules, _ := bngl.ParseRule("bind", "A(b) + B(a) <-> A(b!1).B(a!1)", 1, 0.1)
//	net, err := netgen.Generate(ctx, []netgen.Seed{
//		{Graph: bngl.MustParseGraph("A(b)"), Concentration: 1},
//		{Graph: bngl.MustParseGraph("B(a)"), Concentration: 1},
//	}, rules)
//
// Rule sets may describe infinite networks (polymerization). netgen bounds
// every run by species, reaction, iteration, aggregate size, stoichiometry
// and heap limits and honours context cancellation.
package rulenet

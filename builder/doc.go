// Package builder assembles species fixtures for tests, examples and
// benchmarks: linear chains, rings, hub-and-spoke stars and seeded random
// polymers, composed through functional options.
//
//	g, err := builder.BuildSpecies(
//		[]builder.BuilderOption{builder.WithMolecule("A"), builder.WithState("y", "U")},
//		builder.Chain(3),
//	)
//	// g: A(l,r!1,y~U).A(l!1,r!2,y~U).A(l!2,r,y~U)
//
// Units carry the linker sites (default "l" and "r") followed by the sites
// added with WithState. Constructors append to the graph, so several of
// them build a multi-complex pattern. Option constructors panic on
// meaningless input; constructors return sentinel errors and never panic.
package builder

package bfs_test

import (
	"fmt"

	"github.com/katalvlaran/rulenet/bfs"
	"github.com/katalvlaran/rulenet/core"
)

// ExampleComponents splits a two-complex graph A(b!1).B(a!1).C() into species.
func ExampleComponents() {
	g := core.NewGraph(
		core.Molecule{Name: "A", Components: []core.Component{{Name: "b"}}},
		core.Molecule{Name: "B", Components: []core.Component{{Name: "a"}}},
		core.Molecule{Name: "C", ExplicitEmpty: true},
	)
	_, _ = g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)

	for _, comp := range bfs.Components(g) {
		sub, _ := g.Induced(comp)
		fmt.Println(sub)
	}
	// Output:
	// A(b!1).B(a!1)
	// C()
}

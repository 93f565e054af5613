// Package degeneracy computes the symmetry factors that correct rule rates.
//
// A rule that applies to a symmetric matched region in N indistinguishable
// ways would otherwise be counted N times. Count returns that N for one
// embedding: the number of embeddings of the same pattern into the induced
// subgraph on the matched molecules. Bimolecular rules multiply the counts
// of both sides with Product.
package degeneracy

import (
	"github.com/katalvlaran/rulenet/core"
	"github.com/katalvlaran/rulenet/match"
)

// Region builds the sub-structure of target covered by embedding m: the
// induced subgraph on the matched molecules with all of their components,
// reindexed 0..k-1 in ascending target order. Bonds with both ends inside
// the region are kept; a site bonded outside it reads as unbound.
func Region(target *core.Graph, m match.Map) *core.Graph {
	region, _ := target.Induced(m.TargetMolecules())

	return region
}

// Count returns the degeneracy of embedding m of pattern in target: the
// number of embeddings of pattern into Region(target, m), at least 1.
// Options are passed to the matcher; a context set with match.WithContext
// aborts the count with the context's error.
func Count(pattern, target *core.Graph, m match.Map, opts ...match.Option) (int, error) {
	if len(m.Molecules) == 0 {
		return 1, nil
	}
	maps, err := match.FindAll(pattern, Region(target, m), opts...)
	if err != nil {
		return 1, err
	}

	return max(len(maps), 1), nil
}

// Product multiplies per-side degeneracies, treating values below 1 as 1.
func Product(counts ...int) int {
	out := 1
	for _, c := range counts {
		if c > 1 {
			out *= c
		}
	}

	return out
}

// Automorphisms returns the number of automorphisms of g: its embeddings
// into itself, at least 1.
func Automorphisms(g *core.Graph) int {
	maps, err := match.FindAll(g, g)
	if err != nil || len(maps) == 0 {
		return 1
	}

	return len(maps)
}

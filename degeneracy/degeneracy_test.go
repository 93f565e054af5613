package degeneracy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rulenet/bngl"
	"github.com/katalvlaran/rulenet/canon"
	"github.com/katalvlaran/rulenet/degeneracy"
	"github.com/katalvlaran/rulenet/match"
)

func firstMap(t *testing.T, pattern, target string) (match.Map, int) {
	t.Helper()
	p := bngl.MustParsePattern(pattern)
	g := bngl.MustParseGraph(target)
	maps, err := match.FindAll(p, g)
	require.NoError(t, err)
	require.NotEmpty(t, maps)

	deg, err := degeneracy.Count(p, g, maps[0])
	require.NoError(t, err)

	return maps[0], deg
}

func TestCount_Homodimer(t *testing.T) {
	_, deg := firstMap(t, "A(s!1).A(s!1)", "A(s!1).A(s!1)")
	assert.Equal(t, 2, deg)
}

func TestCount_Heterodimer(t *testing.T) {
	_, deg := firstMap(t, "A(b!1).B(a!1)", "A(b!1).B(a!1)")
	assert.Equal(t, 1, deg)
}

func TestCount_EquivalentSitesOfOneMolecule(t *testing.T) {
	// either free s site of A(s,s) can react; the region keeps both
	_, deg := firstMap(t, "A(s)", "A(s,s)")
	assert.Equal(t, 2, deg)

	_, deg = firstMap(t, "A(s~U)", "A(s~U,s~U)")
	assert.Equal(t, 2, deg)

	_, deg = firstMap(t, "A(s~U)", "A(s~U,s~P)")
	assert.Equal(t, 1, deg)
}

func TestCount_SymmetricPairOfFreeSites(t *testing.T) {
	_, deg := firstMap(t, "A(s,s)", "A(s,s)")
	assert.Equal(t, 2, deg)
}

func TestCount_ExternalBondIsTrimmed(t *testing.T) {
	// the matched pair sits inside a longer chain; bonds leaving it are dropped
	const chain = "A(l,r!1).A(l!1,r!2).A(l!2,r!3).A(l!3,r)"
	m, deg := firstMap(t, "A(r!1).A(l!1)", chain)
	assert.Equal(t, 1, deg)
	region := degeneracy.Region(bngl.MustParseGraph(chain), m)
	assert.Equal(t, 1, region.NumBonds())
	assert.Equal(t, canon.Canonicalize(bngl.MustParseGraph("A(l,r!1).A(l!1,r)")), canon.Canonicalize(region))

	// a pattern that needs the outside bond no longer embeds; the floor is 1
	_, deg = firstMap(t, "A(l!+,r!1).A(l!1,r!+)", chain)
	assert.Equal(t, 1, deg)
}

func TestCount_Canceled(t *testing.T) {
	p := bngl.MustParsePattern("A().A()")
	g := bngl.MustParseGraph("A().A().A()")
	maps, err := match.FindAll(p, g)
	require.NoError(t, err)
	require.NotEmpty(t, maps)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = degeneracy.Count(p, g, maps[0], match.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProduct(t *testing.T) {
	assert.Equal(t, 1, degeneracy.Product())
	assert.Equal(t, 4, degeneracy.Product(2, 2))
	assert.Equal(t, 3, degeneracy.Product(0, 3, 1))
}

func TestAutomorphisms(t *testing.T) {
	assert.Equal(t, 1, degeneracy.Automorphisms(bngl.MustParseGraph("A(b!1).B(a!1)")))
	assert.Equal(t, 2, degeneracy.Automorphisms(bngl.MustParseGraph("A(s!1).A(s!1)")))
	assert.Equal(t, 6, degeneracy.Automorphisms(bngl.MustParseGraph("A().A().A()")))
	// ring of four A(l,r): rotations only, since l and r differ
	assert.Equal(t, 4, degeneracy.Automorphisms(bngl.MustParseGraph("A(l!4,r!1).A(l!1,r!2).A(l!2,r!3).A(l!3,r!4)")))
}

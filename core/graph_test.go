package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rulenet/core"
)

// mol is a terse Molecule constructor for tests: mol("A", "b", "s~P").
func mol(name string, sites ...string) core.Molecule {
	m := core.Molecule{Name: name, ExplicitEmpty: len(sites) == 0}
	for _, s := range sites {
		c := core.Component{Name: s}
		for i := 0; i < len(s); i++ {
			if s[i] == '~' {
				c.Name, c.State = s[:i], s[i+1:]
				break
			}
		}
		m.Components = append(m.Components, c)
	}

	return m
}

// dimer builds A(b!1).B(a!1).
func dimer(t *testing.T) *core.Graph {
	t.Helper()
	g := core.NewGraph(mol("A", "b"), mol("B", "a"))
	_, err := g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)
	require.NoError(t, err)

	return g
}

func TestAddBond_AutoLabelAndReciprocity(t *testing.T) {
	g := dimer(t)
	assert.Equal(t, "A(b!1).B(a!1)", g.String())
	assert.NoError(t, g.Validate())

	p, ok := g.Partner(core.Site{Mol: 1, Comp: 0})
	require.True(t, ok)
	assert.Equal(t, core.Site{Mol: 0, Comp: 0}, p)
	assert.True(t, g.HasBondFast(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}))
	assert.True(t, g.HasBondFast(core.Site{Mol: 1, Comp: 0}, core.Site{Mol: 0, Comp: 0}))
	assert.Equal(t, 1, g.NumBonds())
}

func TestAddBond_NextUnusedLabel(t *testing.T) {
	g := core.NewGraph(mol("A", "x", "y"), mol("A", "x", "y"))
	l1, err := g.AddBond(core.Site{Mol: 0, Comp: 1}, core.Site{Mol: 1, Comp: 0}, 7)
	require.NoError(t, err)
	assert.Equal(t, 7, l1)
	l2, err := g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 8, l2)
}

func TestAddBond_SiteAlreadyBonded(t *testing.T) {
	g := core.NewGraph(mol("A", "b"), mol("B", "a"), mol("C", "a"))
	_, err := g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)
	require.NoError(t, err)
	_, err = g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 2, Comp: 0}, 0)
	assert.ErrorIs(t, err, core.ErrSiteBonded)
}

func TestAddBond_OutOfRangePanics(t *testing.T) {
	g := core.NewGraph(mol("A", "b"))
	assert.Panics(t, func() {
		_, _ = g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 3, Comp: 0}, 0)
	})
	assert.Panics(t, func() { g.DeleteBond(core.Site{Mol: 0, Comp: 4}) })
}

func TestDeleteBond_InvalidatesIndex(t *testing.T) {
	g := dimer(t)
	a, b := core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}
	require.True(t, g.ComponentHasAnyBond(a))

	g.DeleteBond(b)
	assert.False(t, g.ComponentHasAnyBond(a))
	assert.False(t, g.HasBondFast(a, b))
	assert.Equal(t, "A(b).B(a)", g.String())
	assert.NoError(t, g.Validate())

	// deleting again is a no-op
	g.DeleteBond(a)
	assert.Equal(t, 0, g.NumBonds())
}

func TestSetCompartment_InvalidatesString(t *testing.T) {
	g := dimer(t)
	assert.Equal(t, "A(b!1).B(a!1)", g.String())

	g.SetCompartment(0, "nuc")
	assert.Equal(t, "A(b!1)@nuc.B(a!1)", g.String())
	assert.Panics(t, func() { g.SetCompartment(2, "cyt") })
}

func TestClone_IsIndependent(t *testing.T) {
	g := dimer(t)
	c := g.Clone()
	c.DeleteBond(core.Site{Mol: 0, Comp: 0})
	c.Molecules[0].Components[0].State = "P"

	assert.Equal(t, "A(b!1).B(a!1)", g.String())
	assert.Equal(t, "A(b~P).B(a)", c.String())
	assert.True(t, g.ComponentHasAnyBond(core.Site{Mol: 0, Comp: 0}))
}

func TestMerge_RenumbersLabels(t *testing.T) {
	g := dimer(t)
	off := g.Merge(dimer(t))
	assert.Equal(t, 2, off)
	assert.Equal(t, "A(b!1).B(a!1).A(b!2).B(a!2)", g.String())
	assert.NoError(t, g.Validate())
	assert.True(t, g.HasBondFast(core.Site{Mol: 2, Comp: 0}, core.Site{Mol: 3, Comp: 0}))
}

func TestInduced_TrimsOutsideBonds(t *testing.T) {
	g := core.NewGraph(mol("A", "b"), mol("B", "a", "c"), mol("C", "b"))
	_, err := g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)
	require.NoError(t, err)
	_, err = g.AddBond(core.Site{Mol: 1, Comp: 1}, core.Site{Mol: 2, Comp: 0}, 0)
	require.NoError(t, err)

	sub, oldToNew := g.Induced([]int{2, 1})
	assert.Equal(t, []int{-1, 1, 0}, oldToNew)
	assert.Equal(t, "C(b!2).B(a,c!2)", sub.String())
	assert.NoError(t, sub.Validate())
}

func TestResolveLabels(t *testing.T) {
	a := mol("A", "b", "c")
	a.Components[0].Label = 1
	a.Components[1].Label = 2
	b := mol("B", "a")
	b.Components[0].Label = 1

	g := core.NewGraph(a, b)
	dangling, err := g.ResolveLabels()
	require.NoError(t, err)
	assert.Equal(t, []int{2}, dangling)
	assert.Equal(t, 1, g.NumBonds())

	c := mol("C", "x")
	c.Components[0].Label = 1
	bad := core.NewGraph(a, b, c)
	_, err = bad.ResolveLabels()
	assert.ErrorIs(t, err, core.ErrInconsistentBonds)
}

func TestMoleculeNeighbors(t *testing.T) {
	g := core.NewGraph(mol("A", "x", "y"), mol("B", "a", "b"), mol("C"))
	_, _ = g.AddBond(core.Site{Mol: 0, Comp: 0}, core.Site{Mol: 1, Comp: 0}, 0)
	_, _ = g.AddBond(core.Site{Mol: 0, Comp: 1}, core.Site{Mol: 1, Comp: 1}, 0)

	assert.Equal(t, []int{1}, g.MoleculeNeighbors(0))
	assert.Equal(t, []int{0}, g.MoleculeNeighbors(1))
	assert.Empty(t, g.MoleculeNeighbors(2))
	p, ok := g.Index().Partner(core.Site{Mol: 1, Comp: 1})
	require.True(t, ok)
	assert.Equal(t, core.Site{Mol: 0, Comp: 1}, p)
}

func TestBondReqString(t *testing.T) {
	cases := map[core.BondReq]string{
		core.BondNone: "", core.BondBound: "+", core.BondUnbound: "-", core.BondEither: "?",
	}
	for req, want := range cases {
		assert.Equal(t, want, req.String())
	}
	c := core.Component{Name: "s", State: "P", Bond: core.BondBound}
	assert.Equal(t, "s~P!+", c.String())
}

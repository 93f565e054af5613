package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/rulenet/core"
)

func TestRule_Correspondence(t *testing.T) {
	// A(b) + B(a) -> A(b!1).B(a!1)
	prod := core.NewGraph(mol("A", "b"), mol("B", "a"))
	rule := &core.Rule{
		Name:      "bind",
		Reactants: []*core.Graph{core.NewGraph(mol("A", "b")), core.NewGraph(mol("B", "a"))},
		Products:  []*core.Graph{prod},
		Rate:      1,
	}
	corr := rule.Correspondence()
	assert.Equal(t, [][]core.MolRef{{{Pattern: 0, Mol: 0}, {Pattern: 1, Mol: 0}}}, corr.Molecules)
	assert.Equal(t, [][][]int{{{0}, {0}}}, corr.Sites)
	assert.Empty(t, corr.Deleted)
}

func TestRule_CorrespondenceDeleteAndSynthesize(t *testing.T) {
	// A(b!1).B(a!1) -> A(b) + C()
	rule := &core.Rule{
		Name:      "swap",
		Reactants: []*core.Graph{core.NewGraph(mol("A", "b"), mol("B", "a"))},
		Products:  []*core.Graph{core.NewGraph(mol("A", "b")), core.NewGraph(mol("C"))},
	}
	corr := rule.Correspondence()
	assert.Equal(t, core.MolRef{Pattern: 0, Mol: 0}, corr.Molecules[0][0])
	assert.Equal(t, core.None, corr.Molecules[1][0])
	assert.Equal(t, []core.MolRef{{Pattern: 0, Mol: 1}}, corr.Deleted)
}

func TestRule_ValidateArity(t *testing.T) {
	assert.ErrorIs(t, (&core.Rule{Name: "empty"}).Validate(), core.ErrRuleArity)
	g := core.NewGraph(mol("A"))
	assert.ErrorIs(t, (&core.Rule{Reactants: []*core.Graph{g, g, g}}).Validate(), core.ErrRuleArity)
	assert.NoError(t, (&core.Rule{Reactants: []*core.Graph{g}}).Validate())
}

func TestRule_ReverseAndString(t *testing.T) {
	fwd := &core.Rule{
		Name:      "bind",
		Reactants: []*core.Graph{core.NewGraph(mol("A", "b")), core.NewGraph(mol("B", "a"))},
		Products:  []*core.Graph{core.NewGraph(mol("A", "b"), mol("B", "a"))},
		Rate:      2,
	}
	rev := fwd.Reverse("unbind", 0.5)
	assert.Equal(t, "A(b) + B(a) -> A(b).B(a) 2", fwd.String())
	assert.Equal(t, "A(b).B(a) -> A(b) + B(a) 0.5", rev.String())
}

func TestRxn_KeyIgnoresOrder(t *testing.T) {
	a := &core.Rxn{Reactants: []int{3, 1}, Products: []int{2}}
	b := &core.Rxn{Reactants: []int{1, 3}, Products: []int{2}}
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, "1,3->2", a.Key())
	assert.Equal(t, "3 + 1 -> 2 0", a.String())
}

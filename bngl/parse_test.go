package bngl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rulenet/bngl"
	"github.com/katalvlaran/rulenet/core"
)

func TestParseGraph_RoundTrip(t *testing.T) {
	for _, s := range []string{
		"A(b!1,s~P).B(a!1)",
		"Prey()",
		"L",
		"A(x~0)@cyt",
		"R(l!1,r!2).L(r!1,r!3).R(l!3,r!2)",
	} {
		g, err := bngl.ParseGraph(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, g.String())
		assert.NoError(t, g.Validate())
	}
}

func TestParseGraph_Rejects(t *testing.T) {
	cases := map[string]error{
		"A(b!+)":               bngl.ErrWildcardInSpecies,
		"A(b!1)":               bngl.ErrDanglingBond,
		"A(b!1).B(a!1).C(a!1)": core.ErrInconsistentBonds,
		"A(b":                  bngl.ErrSyntax,
		"":                     bngl.ErrSyntax,
		"A(b!1!2)":             bngl.ErrSyntax,
	}
	for s, want := range cases {
		_, err := bngl.ParseGraph(s)
		assert.ErrorIs(t, err, want, s)
	}
}

func TestParsePattern_Wildcards(t *testing.T) {
	p, err := bngl.ParsePattern("A(a!+,b!-,c!?,d!3,s~?)")
	require.NoError(t, err)
	comps := p.Molecules[0].Components
	assert.Equal(t, core.BondBound, comps[0].Bond)
	assert.Equal(t, core.BondUnbound, comps[1].Bond)
	assert.Equal(t, core.BondEither, comps[2].Bond)
	assert.Equal(t, 3, comps[3].Label)
	assert.Equal(t, "", comps[4].State)
	assert.Equal(t, 0, p.NumBonds())
}

func TestParseRule_Unidirectional(t *testing.T) {
	rules, err := bngl.ParseRule("bind", "A(b) + B(a) -> A(b!1).B(a!1)", 1.5, 0)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	r := rules[0]
	assert.Equal(t, "bind", r.Name)
	assert.Len(t, r.Reactants, 2)
	require.Len(t, r.Products, 1)
	assert.Equal(t, 1, r.Products[0].NumBonds())
	assert.Equal(t, 1.5, r.Rate)
}

func TestParseRule_Reversible(t *testing.T) {
	rules, err := bngl.ParseRule("bind", "A(b)+B(a)<->A(b!1).B(a!1)", 2, 0.5)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "bind_reverse", rules[1].Name)
	assert.Equal(t, 0.5, rules[1].Rate)
	assert.Len(t, rules[1].Reactants, 1)
	assert.Len(t, rules[1].Products, 2)
}

func TestParseRule_ZeroSides(t *testing.T) {
	rules, err := bngl.ParseRule("decay", "A() -> 0", 1, 0)
	require.NoError(t, err)
	assert.Empty(t, rules[0].Products)

	_, err = bngl.ParseRule("synth", "0 -> A()", 1, 0)
	assert.ErrorIs(t, err, core.ErrRuleArity)

	_, err = bngl.ParseRule("synth", "A() <-> 0", 1, 1)
	assert.ErrorIs(t, err, core.ErrRuleArity)
}

func TestParseRule_Modifiers(t *testing.T) {
	rules, err := bngl.ParseRule("r", "A(b) + B(a) -> A(b!1).B(a!1) include_reactants(1, A(s~P)) exclude_reactants(2, C())", 1, 0)
	require.NoError(t, err)
	r := rules[0]
	require.Len(t, r.Include, 1)
	require.Len(t, r.Exclude, 1)
	assert.Equal(t, 0, r.Include[0].Reactant)
	assert.Equal(t, "A(s~P)", r.Include[0].Pattern.String())
	assert.Equal(t, 1, r.Exclude[0].Reactant)

	_, err = bngl.ParseRule("r", "A() -> 0 include_reactants(2, A())", 1, 0)
	assert.ErrorIs(t, err, core.ErrRuleArity)
}

func TestParseRule_Syntax(t *testing.T) {
	_, err := bngl.ParseRule("bad", "A() => B()", 1, 0)
	assert.ErrorIs(t, err, bngl.ErrSyntax)
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { bngl.MustParseGraph("A(b!+)") })
	assert.Panics(t, func() { bngl.MustParsePattern("A(") })
	assert.NotPanics(t, func() { bngl.MustParsePattern("A(b!+)") })
}

package netgen_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/rulenet/bngl"
	"github.com/katalvlaran/rulenet/builder"
	"github.com/katalvlaran/rulenet/canon"
	"github.com/katalvlaran/rulenet/core"
	"github.com/katalvlaran/rulenet/netgen"
)

// rules parses name/text pairs with forward rate 1 and reverse rate 0.1.
func rules(t *testing.T, pairs ...string) []*core.Rule {
	t.Helper()
	var out []*core.Rule
	for i := 0; i+1 < len(pairs); i += 2 {
		rs, err := bngl.ParseRule(pairs[i], pairs[i+1], 1, 0.1)
		require.NoError(t, err)
		out = append(out, rs...)
	}

	return out
}

func seeds(species ...string) []netgen.Seed {
	out := make([]netgen.Seed, len(species))
	for i, s := range species {
		out[i] = netgen.Seed{Graph: bngl.MustParseGraph(s), Concentration: 1}
	}

	return out
}

func run(t *testing.T, rs []*core.Rule, sd []netgen.Seed, opts ...netgen.Option) (*netgen.Network, error) {
	t.Helper()

	return netgen.Generate(context.Background(), sd, rs, opts...)
}

func indexOf(t *testing.T, net *netgen.Network, species string) int {
	t.Helper()
	sp, ok := net.Lookup(canon.Canonicalize(bngl.MustParseGraph(species)))
	require.True(t, ok, "species %s not generated", species)

	return sp.Index
}

func TestGenerate_ReversibleDimerization(t *testing.T) {
	net, err := run(t,
		rules(t, "bind", "A(b) + B(a) <-> A(b!1).B(a!1)"),
		seeds("A(b)", "B(a)"))
	require.NoError(t, err)

	require.Equal(t, 3, net.NumSpecies())
	require.Equal(t, 2, net.NumReactions())
	ab := indexOf(t, net, "B(a!1).A(b!1)")
	assert.Equal(t, 2, ab)

	fwd, rev := net.Reactions[0], net.Reactions[1]
	assert.Equal(t, []int{0, 1}, fwd.Reactants)
	assert.Equal(t, []int{ab}, fwd.Products)
	assert.Equal(t, "bind", fwd.Rule)
	assert.Equal(t, 1.0, fwd.Rate)
	assert.Equal(t, 1.0, fwd.PropensityFactor)

	assert.Equal(t, []int{ab}, rev.Reactants)
	assert.Equal(t, []int{0, 1}, rev.Products)
	assert.Equal(t, "bind_reverse", rev.Rule)
	assert.InDelta(t, 0.1, rev.Rate, 1e-12)
}

func TestGenerate_HomodimerPropensity(t *testing.T) {
	net, err := run(t, rules(t, "dimerize", "A(a) + A(a) -> A(a!1).A(a!1)"), seeds("A(a)"))
	require.NoError(t, err)

	require.Equal(t, 2, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	r := net.Reactions[0]
	assert.Equal(t, []int{0, 0}, r.Reactants)
	assert.Equal(t, []int{1}, r.Products)
	assert.Equal(t, 0.5, r.PropensityFactor)
	assert.Equal(t, 1, r.Degeneracy)
}

func TestGenerate_PreySelfReaction(t *testing.T) {
	net, err := netgen.Generate(context.Background(),
		[]netgen.Seed{{Graph: bngl.MustParseGraph("Prey()"), Concentration: 10}},
		rules(t, "eat", "Prey() + Prey() -> Prey()"))
	require.NoError(t, err)

	require.Equal(t, 1, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	r := net.Reactions[0]
	assert.Equal(t, []int{0, 0}, r.Reactants)
	assert.Equal(t, []int{0}, r.Products)
	assert.Equal(t, 0.5, r.PropensityFactor)
	assert.Equal(t, 10.0, net.Species[0].Concentration)
}

func TestGenerate_SymmetricDissociationDegeneracy(t *testing.T) {
	net, err := run(t, rules(t, "split", "A(a!1).A(a!1) -> A(a) + A(a)"), seeds("A(a!1).A(a!1)"))
	require.NoError(t, err)

	require.Equal(t, 2, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	r := net.Reactions[0]
	assert.Equal(t, []int{0}, r.Reactants)
	assert.Equal(t, []int{1, 1}, r.Products)
	assert.Equal(t, 2, r.Degeneracy)
	assert.Equal(t, 0.5, r.Rate)
}

func TestGenerate_EquivalentSitesDegeneracy(t *testing.T) {
	net, err := run(t, rules(t, "phos", "A(s~U) -> A(s~P)"), seeds("A(s~U,s~U)"))
	require.NoError(t, err)

	require.Equal(t, 3, net.NumSpecies())
	require.Equal(t, 2, net.NumReactions())
	first := net.Reactions[0]
	assert.Equal(t, []int{0}, first.Reactants)
	assert.Equal(t, []int{indexOf(t, net, "A(s~P,s~U)")}, first.Products)
	assert.Equal(t, 2, first.Degeneracy)
	assert.Equal(t, 0.5, first.Rate)

	second := net.Reactions[1]
	assert.Equal(t, []int{indexOf(t, net, "A(s~P,s~P)")}, second.Products)
	assert.Equal(t, 1, second.Degeneracy)
	assert.Equal(t, 1.0, second.Rate)
}

func TestGenerate_TransportChangesCompartment(t *testing.T) {
	net, err := run(t, rules(t, "import", "A(s)@cyt -> A(s)@nuc"), seeds("A(s)@cyt"))
	require.NoError(t, err)

	require.Equal(t, 2, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	r := net.Reactions[0]
	assert.Equal(t, []int{0}, r.Reactants)
	assert.Equal(t, []int{indexOf(t, net, "A(s)@nuc")}, r.Products)
	assert.NotEqual(t, r.Reactants, r.Products)
}

func TestGenerate_StarLosesArms(t *testing.T) {
	net, err := run(t,
		rules(t, "unbind", "H(s!1).A(l!1) -> H(s) + A(l)"),
		[]netgen.Seed{{Graph: builder.MustBuild(nil, builder.Star(3)), Concentration: 1}})
	require.NoError(t, err)

	// hubs with 3, 2, 1 and 0 arms plus the free arm
	assert.Equal(t, 5, net.NumSpecies())
	assert.Equal(t, 3, net.NumReactions())
	free := indexOf(t, net, "A(l,r)")
	bare := indexOf(t, net, "H(s,s,s)")
	last := net.Reactions[net.NumReactions()-1]
	assert.Equal(t, []int{bare, free}, last.Products)
}

func TestGenerate_IsomerizationTerminates(t *testing.T) {
	net, err := run(t, rules(t, "phos", "A(s~U) <-> A(s~P)"), seeds("A(s~U)"))
	require.NoError(t, err)

	assert.Equal(t, 2, net.NumSpecies())
	assert.Equal(t, 2, net.NumReactions())
	assert.Equal(t, 1, indexOf(t, net, "A(s~P)"))
}

func TestGenerate_RunawayPolymerization(t *testing.T) {
	_, err := run(t,
		rules(t, "poly", "A(r) + A(l) -> A(r!1).A(l!1)"),
		seeds("A(l,r)"),
		netgen.WithMaxAgg(3))
	require.Error(t, err)
	assert.ErrorIs(t, err, netgen.ErrLimitExceeded)

	var le *netgen.LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, netgen.LimitAgg, le.Kind)
	assert.Equal(t, "poly", le.Rule)
	assert.Equal(t, uint64(4), le.Value)
	assert.Contains(t, err.Error(), `"poly"`)
}

func TestGenerate_StoichLimit(t *testing.T) {
	_, err := run(t,
		rules(t, "poly", "A(r) + A(l) -> A(r!1).A(l!1)"),
		seeds("A(l,r)"),
		netgen.WithMaxStoich(2))

	var le *netgen.LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, netgen.LimitStoich, le.Kind)
	assert.Equal(t, "A", le.Molecule)
}

func TestGenerate_SpeciesLimit(t *testing.T) {
	net, err := run(t,
		rules(t, "poly", "A(r) + A(l) -> A(r!1).A(l!1)"),
		seeds("A(l,r)"),
		netgen.WithMaxSpecies(2))

	var le *netgen.LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, netgen.LimitSpecies, le.Kind)
	// the partial network stays consistent
	assert.Equal(t, 2, net.NumSpecies())
	for _, r := range net.Reactions {
		for _, i := range append(append([]int{}, r.Reactants...), r.Products...) {
			assert.Less(t, i, net.NumSpecies())
		}
	}
}

func TestGenerate_ReactionLimit(t *testing.T) {
	_, err := run(t,
		rules(t, "bind", "A(b) + B(a) <-> A(b!1).B(a!1)"),
		seeds("A(b)", "B(a)"),
		netgen.WithMaxReactions(1))

	var le *netgen.LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, netgen.LimitReactions, le.Kind)
	assert.Equal(t, "bind_reverse", le.Rule)
}

func TestGenerate_MaxIterationsEndsNormally(t *testing.T) {
	net, err := run(t,
		rules(t, "poly", "A(r) + A(l) -> A(r!1).A(l!1)"),
		seeds("A(l,r)"),
		netgen.WithMaxIterations(1))
	require.NoError(t, err)
	assert.Equal(t, 2, net.NumSpecies())
	assert.Equal(t, 1, net.NumReactions())
}

func TestGenerate_MemoryLimit(t *testing.T) {
	_, err := run(t,
		rules(t, "phos", "A(s~U) -> A(s~P)"),
		seeds("A(s~U)"),
		netgen.WithMemoryLimit(1),
		netgen.WithCheckInterval(1))

	var le *netgen.LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, netgen.LimitMemory, le.Kind)
	assert.Contains(t, err.Error(), "memory limit exceeded")
}

func TestGenerate_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	net, err := netgen.Generate(ctx, seeds("A(s~U)"), rules(t, "phos", "A(s~U) -> A(s~P)"))
	assert.ErrorIs(t, err, netgen.ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, net.NumSpecies())
}

func TestGenerate_MalformedProductRejected(t *testing.T) {
	var warnings []netgen.Warning
	rs := rules(t,
		"bad", "A(b) -> A(b) + B(x!+)",
		"phos", "A(s~U) -> A(s~P)")
	net, err := run(t, rs, seeds("A(b,s~U)"),
		netgen.WithWarnings(func(w netgen.Warning) { warnings = append(warnings, w) }))
	require.NoError(t, err)

	assert.Equal(t, 2, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	assert.Equal(t, "phos", net.Reactions[0].Rule)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.Equal(t, netgen.WarnRejected, w.Kind)
		assert.Equal(t, "bad", w.Rule)
	}
}

func TestGenerate_DanglingProductLabelRejected(t *testing.T) {
	net, err := run(t, rules(t, "dangle", "A(b) -> A(b!1)"), seeds("A(b)"))
	require.NoError(t, err)
	assert.Equal(t, 1, net.NumSpecies())
	assert.Zero(t, net.NumReactions())
}

func TestGenerate_ExcludeReactants(t *testing.T) {
	net, err := run(t,
		rules(t, "bind", "A(b) + B(a) -> A(b!1).B(a!1) exclude_reactants(1, A(s~P))"),
		seeds("A(b,s~U)", "A(b,s~P)", "B(a)"))
	require.NoError(t, err)

	require.Equal(t, 4, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	assert.Equal(t, []int{0, 2}, net.Reactions[0].Reactants)
}

func TestGenerate_IncludeReactants(t *testing.T) {
	net, err := run(t,
		rules(t, "bind", "A(b) + B(a) -> A(b!1).B(a!1) include_reactants(1, A(s~P))"),
		seeds("A(b,s~U)", "A(b,s~P)", "B(a)"))
	require.NoError(t, err)

	require.Equal(t, 4, net.NumSpecies())
	require.Equal(t, 1, net.NumReactions())
	assert.Equal(t, []int{1, 2}, net.Reactions[0].Reactants)
}

func TestGenerate_SynthesisAndDegradation(t *testing.T) {
	net, err := run(t,
		rules(t,
			"make", "A() -> A() + B()",
			"decay", "B() -> 0"),
		seeds("A()"))
	require.NoError(t, err)

	require.Equal(t, 2, net.NumSpecies())
	require.Equal(t, 2, net.NumReactions())
	assert.Equal(t, []int{0}, net.Reactions[0].Reactants)
	assert.Equal(t, []int{0, 1}, net.Reactions[0].Products)
	assert.Equal(t, []int{1}, net.Reactions[1].Reactants)
	assert.Empty(t, net.Reactions[1].Products)
}

func TestGenerate_IntramolecularOnlyWhenAllowed(t *testing.T) {
	const ring = "A(x!2,y!1).B(y!1,x!2)"
	for _, allowed := range []bool{false, true} {
		rs := rules(t, "close", "A(x) + B(x) -> A(x!1).B(x!1)")
		rs[0].Intramolecular = allowed
		net, err := run(t, rs, seeds("A(x,y!1).B(y!1,x)"), netgen.WithMaxIterations(1))
		require.NoError(t, err)

		sp, ok := net.Lookup(canon.Canonicalize(bngl.MustParseGraph(ring)))
		if !allowed {
			assert.False(t, ok)

			continue
		}
		require.True(t, ok)
		found := false
		for _, r := range net.Reactions {
			if len(r.Reactants) == 1 && r.Reactants[0] == 0 && len(r.Products) == 1 && r.Products[0] == sp.Index {
				found = true
			}
		}
		assert.True(t, found, "ring closure reaction missing")
	}
}

func TestGenerate_DuplicateSeedsMerge(t *testing.T) {
	g, err := netgen.New(rules(t, "phos", "A(s~U) -> A(s~P)"))
	require.NoError(t, err)
	require.NoError(t, g.Seed(seeds("A(s~U)", "A(s~U)")...))
	require.Equal(t, 1, g.Network().NumSpecies())
	assert.Equal(t, 2.0, g.Network().Species[0].Concentration)
}

func TestStep_Done(t *testing.T) {
	g, err := netgen.New(rules(t, "phos", "A(s~U) <-> A(s~P)"))
	require.NoError(t, err)
	require.NoError(t, g.Seed(seeds("A(s~U)")...))

	ctx := context.Background()
	done, err := g.Step(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	done, err = g.Step(ctx)
	require.NoError(t, err)
	assert.True(t, done)
	done, err = g.Step(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestNew_Errors(t *testing.T) {
	_, err := netgen.New(nil)
	assert.ErrorIs(t, err, netgen.ErrNoRules)

	_, err = netgen.New([]*core.Rule{{Name: "empty"}})
	assert.ErrorIs(t, err, netgen.ErrMalformedRule)
	assert.ErrorIs(t, err, core.ErrRuleArity)

	_, err = netgen.New(rules(t, "phos", "A(s~U) -> A(s~P)"), netgen.WithMaxSpecies(0))
	assert.ErrorIs(t, err, netgen.ErrInvalidConfig)

	g, err := netgen.New(rules(t, "phos", "A(s~U) -> A(s~P)"))
	require.NoError(t, err)
	assert.ErrorIs(t, g.Seed(netgen.Seed{}), netgen.ErrNilSeed)
}

func TestGenerate_Progress(t *testing.T) {
	var reports []netgen.Progress
	_, err := run(t,
		rules(t, "bind", "A(b) + B(a) <-> A(b!1).B(a!1)"),
		seeds("A(b)", "B(a)"),
		netgen.WithProgress(func(p netgen.Progress) { reports = append(reports, p) }, 1))
	require.NoError(t, err)

	require.Len(t, reports, 4)
	last := reports[len(reports)-1]
	assert.Equal(t, 3, last.Species)
	assert.Equal(t, 2, last.Reactions)
	assert.Equal(t, 3, last.Iteration)
	assert.NotZero(t, last.HeapBytes)
}

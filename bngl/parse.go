// SPDX-License-Identifier: MIT

package bngl

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/rulenet/core"
)

// Sentinel errors for conversion of parse trees into graphs and rules.
var (
	// ErrSyntax wraps every participle parse failure.
	ErrSyntax = errors.New("bngl: syntax error")

	// ErrWildcardInSpecies rejects bond wildcards in a species.
	ErrWildcardInSpecies = errors.New("bngl: bond wildcard in species")

	// ErrDanglingBond rejects a species bond label with a single endpoint.
	ErrDanglingBond = errors.New("bngl: dangling bond label in species")

	// ErrEmptyGraph rejects an empty species or pattern string.
	ErrEmptyGraph = errors.New("bngl: empty graph")
)

// ParseGraph parses a fully specified species such as "A(b!1,s~P).B(a!1)".
// Every bond label must pair exactly two sites and wildcards are rejected.
func ParseGraph(s string) (*core.Graph, error) {
	g, err := parseGraph(s)
	if err != nil {
		return nil, err
	}
	for mi := range g.Molecules {
		for _, c := range g.Molecules[mi].Components {
			if c.Bond != core.BondNone {
				return nil, errors.Wrapf(ErrWildcardInSpecies, "%q: %s", s, g.Molecules[mi].Name)
			}
		}
	}
	// labels were resolved by parseGraph; what remains is dangling
	dangling, _ := g.ResolveLabels()
	if len(dangling) > 0 {
		return nil, errors.Wrapf(ErrDanglingBond, "%q: labels %v", s, dangling)
	}

	return g, nil
}

// ParsePattern parses a pattern. Unlike species, patterns may leave states
// unset, use "!+", "!-", "!?" wildcards and carry dangling labels (meaning
// "bound to something not shown").
func ParsePattern(s string) (*core.Graph, error) {
	return parseGraph(s)
}

// MustParseGraph is ParseGraph that panics on error, for fixtures and tests.
func MustParseGraph(s string) *core.Graph {
	g, err := ParseGraph(s)
	if err != nil {
		panic(err)
	}

	return g
}

// MustParsePattern is ParsePattern that panics on error.
func MustParsePattern(s string) *core.Graph {
	g, err := ParsePattern(s)
	if err != nil {
		panic(err)
	}

	return g
}

// ParseRule parses "R1 + R2 -> P1 + P2" (or "<->") into a rule named name
// with rate constant forward. A reversible arrow also yields the reverse
// rule, named name+"_reverse", with rate reverse; unidirectional rules
// ignore reverse. "0" stands for an empty side. Trailing
// include_reactants(i, P) / exclude_reactants(i, P) modifiers (i is
// 1-based) restrict the candidate species of reactant i.
func ParseRule(name, s string, forward, reverse float64) ([]*core.Rule, error) {
	expr, err := ruleParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "rule %q: %v", name, err)
	}
	reactants, err := side(expr.Reactants)
	if err != nil {
		return nil, errors.Wrapf(err, "rule %q reactants", name)
	}
	products, err := side(expr.Products)
	if err != nil {
		return nil, errors.Wrapf(err, "rule %q products", name)
	}

	fwd := &core.Rule{Name: name, Reactants: reactants, Products: products, Rate: forward}
	for _, m := range expr.Modifiers {
		p, err := graph(m.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %q %s", name, m.Kind)
		}
		if m.Reactant < 1 || m.Reactant > len(reactants) {
			return nil, errors.Wrapf(core.ErrRuleArity, "rule %q %s(%d)", name, m.Kind, m.Reactant)
		}
		rc := core.ReactantConstraint{Reactant: m.Reactant - 1, Pattern: p}
		if m.Kind == "include_reactants" {
			fwd.Include = append(fwd.Include, rc)
		} else {
			fwd.Exclude = append(fwd.Exclude, rc)
		}
	}
	if err = fwd.Validate(); err != nil {
		return nil, errors.Wrap(err, "bngl")
	}
	if expr.Arrow == "->" {
		return []*core.Rule{fwd}, nil
	}

	rev := fwd.Reverse(name+"_reverse", reverse)
	if err = rev.Validate(); err != nil {
		return nil, errors.Wrap(err, "bngl")
	}

	return []*core.Rule{fwd, rev}, nil
}

func parseGraph(s string) (*core.Graph, error) {
	expr, err := graphParser.ParseString("", s)
	if err != nil {
		return nil, errors.Wrapf(ErrSyntax, "%q: %v", s, err)
	}

	return graph(expr)
}

func side(expr *SideExpr) ([]*core.Graph, error) {
	if expr.Zero {
		return nil, nil
	}
	out := make([]*core.Graph, 0, len(expr.Patterns))
	for _, p := range expr.Patterns {
		g, err := graph(p)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}

	return out, nil
}

// graph converts a parse tree into a pattern graph with resolved labels.
func graph(expr *GraphExpr) (*core.Graph, error) {
	if expr == nil || len(expr.Molecules) == 0 {
		return nil, ErrEmptyGraph
	}
	mols := make([]core.Molecule, 0, len(expr.Molecules))
	for _, me := range expr.Molecules {
		m := core.Molecule{Name: me.Name, Compartment: me.Compartment}
		if me.Sites != nil {
			m.ExplicitEmpty = len(me.Sites.Components) == 0
			for _, ce := range me.Sites.Components {
				c := core.Component{Name: ce.Name, State: ce.State}
				if c.State == "?" {
					c.State = ""
				}
				if ce.Bond != nil {
					switch ce.Bond.Wildcard {
					case "+":
						c.Bond = core.BondBound
					case "-":
						c.Bond = core.BondUnbound
					case "?":
						c.Bond = core.BondEither
					default:
						c.Label = ce.Bond.Label
					}
				}
				m.Components = append(m.Components, c)
			}
		}
		mols = append(mols, m)
	}
	g := core.NewGraph(mols...)
	if _, err := g.ResolveLabels(); err != nil {
		return nil, errors.Wrapf(err, "bngl: %s", g)
	}

	return g, nil
}

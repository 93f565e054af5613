package bngl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// RuleExpr is the parse tree of "reactants (->|<->) products [modifiers]".
type RuleExpr struct {
	Reactants *SideExpr       `@@`
	Arrow     string          `@Arrow`
	Products  *SideExpr       `@@`
	Modifiers []*ModifierExpr `@@*`
}

// SideExpr is one side of a rule: "0" or patterns joined by "+".
type SideExpr struct {
	Zero     bool         `  @"0"`
	Patterns []*GraphExpr `| @@ ( "+" @@ )*`
}

// ModifierExpr is include_reactants(i, pattern) or exclude_reactants(i, pattern).
type ModifierExpr struct {
	Kind     string     `@( "include_reactants" | "exclude_reactants" )`
	Reactant int        `"(" @Number ","`
	Pattern  *GraphExpr `@@ ")"`
}

// GraphExpr is a complex: molecules joined by ".".
type GraphExpr struct {
	Molecules []*MoleculeExpr `@@ ( "." @@ )*`
}

// MoleculeExpr is Name[(sites)][@compartment].
type MoleculeExpr struct {
	Name        string    `@Ident`
	Sites       *SiteList `@@?`
	Compartment string    `( "@" @Ident )?`
}

// SiteList is a parenthesised, possibly empty component list.
type SiteList struct {
	Open       bool             `@"("`
	Components []*ComponentExpr `( @@ ( "," @@ )* )? ")"`
}

// ComponentExpr is name[~state][!bond].
type ComponentExpr struct {
	Name  string    `@Ident`
	State string    `( "~" @( Ident | Number | "?" ) )?`
	Bond  *BondExpr `( "!" @@ )?`
}

// BondExpr is a numeric label or one of the wildcards "+", "-", "?".
type BondExpr struct {
	Label    int    `  @Number`
	Wildcard string `| @( "+" | "-" | "?" )`
}

var bnglLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Arrow", Pattern: `<->|->`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `[(),.~!@+?-]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	ruleParser = participle.MustBuild[RuleExpr](
		participle.Lexer(bnglLexer),
		participle.Elide("Whitespace"),
	)
	graphParser = participle.MustBuild[GraphExpr](
		participle.Lexer(bnglLexer),
		participle.Elide("Whitespace"),
	)
)

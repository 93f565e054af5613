// Package bngl reads the BNGL notation for species, patterns and rules into
// the core graph model.
//
// Grammar (participle):
//
//	rule      = side ("->" | "<->") side modifier*
//	side      = "0" | graph ("+" graph)*
//	modifier  = ("include_reactants" | "exclude_reactants") "(" int "," graph ")"
//	graph     = molecule ("." molecule)*
//	molecule  = Name ["(" [component ("," component)*] ")"] ["@" Compartment]
//	component = name ["~" state] ["!" (label | "+" | "-" | "?")]
//
// A site holds at most one bond. "~?" leaves the state unset. Parse errors
// are wrapped with github.com/pkg/errors and match ErrSyntax via errors.Is.
package bngl

// File: types.go
// Role: Site, BondReq, Component, Molecule, Graph and the sentinel errors.

package core

import (
	"errors"
	"fmt"
	"sync"
)

// Sentinel errors for graph model operations.
var (
	// ErrInconsistentBonds indicates the bond table is not reciprocal or a
	// component label does not match its bond table entry.
	ErrInconsistentBonds = errors.New("core: inconsistent bond table")

	// ErrSiteBonded indicates an attempt to bond a site that already carries a bond.
	ErrSiteBonded = errors.New("core: site already bonded")
)

// Site addresses one component of one molecule inside a Graph.
type Site struct {
	Mol  int // molecule index
	Comp int // component index within the molecule
}

// String renders the site as "mol.comp".
func (s Site) String() string { return fmt.Sprintf("%d.%d", s.Mol, s.Comp) }

// BondReq is the bond requirement a pattern places on a component when no
// concrete bond is given. It is a closed variant; species components always
// carry BondNone.
type BondReq uint8

const (
	// BondNone means no wildcard: the site is described by its Label alone
	// (Label==0 means "unbound" in a pattern).
	BondNone BondReq = iota
	// BondBound is the "!+" wildcard: the site must be bonded to something.
	BondBound
	// BondUnbound is the "!-" wildcard: the site must be free.
	BondUnbound
	// BondEither is the "!?" wildcard: bonded or not.
	BondEither
)

// String returns the textual wildcard ("+", "-", "?") or "" for BondNone.
func (b BondReq) String() string {
	switch b {
	case BondBound:
		return "+"
	case BondUnbound:
		return "-"
	case BondEither:
		return "?"
	default:
		return ""
	}
}

// Component is a named site on a molecule.
type Component struct {
	// Name identifies the site type within its molecule.
	Name string

	// State is the internal state; "" means unset (matches any state in a pattern).
	State string

	// Bond is the wildcard requirement; meaningful only when Label == 0.
	Bond BondReq

	// Label is the bond label (>0) of the single bond this site takes part in.
	// Labels are unique within a Graph; 0 means no concrete bond.
	Label int
}

// Bonded reports whether the component declares a concrete bond.
func (c Component) Bonded() bool { return c.Label > 0 }

// Molecule is a named node of a species graph with an ordered list of sites.
type Molecule struct {
	// Name is the molecule type.
	Name string

	// Compartment is an optional location tag; "" means unspecified.
	Compartment string

	// Components are the molecule's sites in declaration order.
	Components []Component

	// ExplicitEmpty distinguishes "A()" from "A" when the site list is empty.
	// It only affects textual round-trips, never matching.
	ExplicitEmpty bool
}

// Clone returns an independent copy of the molecule.
func (m Molecule) Clone() Molecule {
	out := m
	out.Components = make([]Component, len(m.Components))
	copy(out.Components, m.Components)

	return out
}

// Graph is a bonded collection of molecules: a species, or a pattern.
//
// The bond table is symmetric: every bond is stored from both endpoints, and
// the Label of both endpoint components equals the bond's label. A lazily built
// BondIndex answers adjacency queries in O(1); it is dropped whenever a bond is
// added or removed. mu guards the caches only; the graph itself is not safe
// for concurrent mutation.
type Graph struct {
	// Molecules in insertion order. Mutating Components[i].Label directly
	// bypasses the bond table; use AddBond/DeleteBond instead.
	Molecules []Molecule

	bonds map[Site]Site // symmetric bond table

	mu    sync.Mutex
	index *BondIndex // lazily built adjacency cache
	str   string     // cached String()
}

// NewGraph creates a Graph holding copies of the given molecules and no
// resolved bonds. Component labels of the molecules are kept as declared;
// call ResolveLabels to turn label pairs into bonds.
// Complexity: O(M+C).
func NewGraph(mols ...Molecule) *Graph {
	g := &Graph{
		Molecules: make([]Molecule, 0, len(mols)),
		bonds:     make(map[Site]Site),
	}
	for _, m := range mols {
		g.Molecules = append(g.Molecules, m.Clone())
	}

	return g
}

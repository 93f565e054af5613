// SPDX-License-Identifier: MIT
// Package: rulenet/builder
//
// options.go - functional options for species fixtures.
//
// Contract:
//   - Option constructors validate and panic on meaningless inputs; constructors never panic.
//   - Seeding is explicit via WithSeed or WithRand.

package builder

import (
	"math/rand"
)

// BuilderOption mutates the builderConfig before construction begins.
type BuilderOption func(*builderConfig)

// WithMolecule names every unit molecule. Panics on "".
func WithMolecule(name string) BuilderOption {
	if name == "" {
		panic("builder: WithMolecule(\"\")")
	}

	return func(c *builderConfig) { c.nameFn = ConstantName(name) }
}

// WithNames sets the unit naming scheme. Panics on nil.
func WithNames(fn NameFn) BuilderOption {
	if fn == nil {
		panic("builder: WithNames(nil)")
	}

	return func(c *builderConfig) { c.nameFn = fn }
}

// WithLinkers sets the two sites that join consecutive units. Panics when
// either is empty or both are equal.
func WithLinkers(left, right string) BuilderOption {
	if left == "" || right == "" || left == right {
		panic("builder: WithLinkers needs two distinct site names")
	}

	return func(c *builderConfig) { c.left, c.right = left, right }
}

// WithHub sets the Star hub molecule type and its repeated site.
func WithHub(name, site string) BuilderOption {
	if name == "" || site == "" {
		panic("builder: WithHub needs a molecule and a site name")
	}

	return func(c *builderConfig) { c.hub, c.hubSite = name, site }
}

// WithState adds a stateful site to every unit. Repeated calls add sites
// in order.
func WithState(site, state string) BuilderOption {
	if site == "" || state == "" {
		panic("builder: WithState needs a site and a state")
	}

	return func(c *builderConfig) { c.states = append(c.states, siteState{site: site, state: state}) }
}

// WithCompartment tags every molecule with compartment.
func WithCompartment(compartment string) BuilderOption {
	return func(c *builderConfig) { c.compartment = compartment }
}

// WithRand provides the RNG for stochastic constructors. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}

	return func(c *builderConfig) { c.rng = r }
}

// WithSeed creates a deterministic RNG from seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

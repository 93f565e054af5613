package builder

import (
	"math/rand"

	"github.com/katalvlaran/rulenet/core"
)

// builderConfig is resolved once per BuildSpecies call.
type builderConfig struct {
	nameFn NameFn // molecule index within a constructor -> molecule type

	left, right string // linker sites of chain and ring units
	hub         string // hub molecule type of Star
	hubSite     string // repeated hub site of Star

	states      []siteState // extra stateful sites on every unit, in order
	compartment string

	rng *rand.Rand
}

// siteState is one extra site with its initial state.
type siteState struct {
	site, state string
}

const (
	defaultMolecule = "A"
	defaultLeft     = "l"
	defaultRight    = "r"
	defaultHub      = "H"
	defaultHubSite  = "s"
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		nameFn:  ConstantName(defaultMolecule),
		left:    defaultLeft,
		right:   defaultRight,
		hub:     defaultHub,
		hubSite: defaultHubSite,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// unit returns the molecule for index i: linker sites first, then the
// configured stateful sites.
func (c builderConfig) unit(i int) core.Molecule {
	m := core.Molecule{Name: c.nameFn(i), Compartment: c.compartment}
	m.Components = append(m.Components, core.Component{Name: c.left}, core.Component{Name: c.right})
	for _, s := range c.states {
		m.Components = append(m.Components, core.Component{Name: s.site, State: s.state})
	}

	return m
}

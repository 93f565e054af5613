// SPDX-License-Identifier: MIT
// Package: rulenet/builder
//
// api.go - public entry point for species fixtures.
//
// Contract:
//   - One orchestrator: BuildSpecies(bopts, cons...). Creates g, resolves cfg, runs cons in order.
//   - Constructors append molecules and bonds; they never touch molecules added before them.
//   - Determinism: same options, seed and constructor order give identical graphs.

package builder

import (
	"fmt"

	"github.com/katalvlaran/rulenet/core"
)

// Constructor appends one structure to g using the resolved builderConfig.
// Constructors validate their parameters first and return sentinel errors.
type Constructor func(g *core.Graph, cfg builderConfig) error

// BuildSpecies creates an empty graph, resolves the options and applies the
// constructors in order. Several constructors yield a disconnected graph,
// which is a valid pattern but not a single species.
//
// Errors: constructor errors wrapped as "BuildSpecies: %w"; a nil
// constructor yields ErrConstructFailed.
func BuildSpecies(bopts []BuilderOption, cons ...Constructor) (*core.Graph, error) {
	g := core.NewGraph()
	cfg := newBuilderConfig(bopts...)
	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildSpecies: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		if err := fn(g, cfg); err != nil {
			return nil, fmt.Errorf("BuildSpecies: %w", err)
		}
	}

	return g, nil
}

// MustBuild is BuildSpecies for fixtures known to be valid. It panics on error.
func MustBuild(bopts []BuilderOption, cons ...Constructor) *core.Graph {
	g, err := BuildSpecies(bopts, cons...)
	if err != nil {
		panic(err)
	}

	return g
}

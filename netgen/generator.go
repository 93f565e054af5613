// SPDX-License-Identifier: MIT

package netgen

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/emirpasic/gods/queues/arrayqueue"
	"go.uber.org/zap"

	"github.com/katalvlaran/rulenet/canon"
	"github.com/katalvlaran/rulenet/core"
)

// Seed is an initial species with its concentration.
type Seed struct {
	Graph         *core.Graph
	Concentration float64
}

// procKey identifies one rule application attempt: the rule and the
// species bound to reactant patterns 0 and 1 (-1 when unused).
type procKey struct {
	rule int
	a, b int
}

// Generator expands seed species under a rule set into a reaction network.
// It is single-threaded: one goroutine drives Step or Run.
type Generator struct {
	rules []*core.Rule
	corr  []core.Correspondence
	opts  Options
	cfg   Config
	log   *zap.Logger
	warn  *warner

	net       *Network
	queue     *arrayqueue.Queue // of *core.Species
	processed map[procKey]struct{}

	iteration int
	steps     int
	start     time.Time
	rule      string // rule being applied, for limit errors
}

// New validates rules and options and returns a generator with an empty
// network.
//
// Errors: ErrNoRules, ErrMalformedRule (wrapping core.ErrRuleArity),
// ErrInvalidConfig.
func New(rules []*core.Rule, opts ...Option) (*Generator, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.Config.Validate(); err != nil {
		return nil, err
	}
	g := &Generator{
		rules:     rules,
		corr:      make([]core.Correspondence, len(rules)),
		opts:      o,
		cfg:       o.Config,
		log:       o.Logger.Named("netgen"),
		net:       NewNetwork(),
		queue:     arrayqueue.New(),
		processed: make(map[procKey]struct{}),
	}
	g.warn = newWarner(o.Warnings, g.log)
	for i, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: rule %d is nil", ErrMalformedRule, i)
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedRule, err)
		}
		g.corr[i] = r.Correspondence()
	}

	return g, nil
}

// Network returns the network built so far.
func (g *Generator) Network() *Network { return g.net }

// Seed adds initial species, deduplicated by canonical key, and enqueues
// the new ones. The concentration of a duplicate seed is added to the
// existing species.
func (g *Generator) Seed(seeds ...Seed) error {
	for i, s := range seeds {
		if s.Graph == nil {
			return fmt.Errorf("%w: seed %d", ErrNilSeed, i)
		}
		sp, added, err := g.addSpecies(s.Graph)
		if err != nil {
			return err
		}
		sp.Concentration += s.Concentration
		if added {
			g.log.Debug("seed species", zap.Int("index", sp.Index), zap.String("species", sp.Key))
		}
	}

	return nil
}

// Step dequeues one species and applies every rule to it. It reports done
// when the queue is empty or MaxIterations species have been processed.
//
// Errors: ErrCanceled, *LimitError; both end the run.
func (g *Generator) Step(ctx context.Context) (bool, error) {
	if g.start.IsZero() {
		g.start = time.Now()
	}
	if g.finished() {
		return true, nil
	}
	if err := g.tick(ctx, true); err != nil {
		return false, err
	}

	v, _ := g.queue.Dequeue()
	sp := v.(*core.Species)
	g.iteration++
	g.opts.Metrics.iteration()
	g.log.Debug("process species",
		zap.Int("iteration", g.iteration),
		zap.Int("index", sp.Index),
		zap.String("species", sp.Key))

	for ri, r := range g.rules {
		if err := canceled(ctx); err != nil {
			return false, err
		}
		g.rule = r.Name
		var err error
		if len(r.Reactants) == 1 {
			err = g.applyUnimolecular(ctx, ri, sp)
		} else {
			err = g.applyBimolecular(ctx, ri, sp)
		}
		if err != nil {
			return false, err
		}
	}
	g.rule = ""
	if err := canceled(ctx); err != nil {
		return false, err
	}
	g.opts.Metrics.setSize(g.net.NumSpecies(), g.net.NumReactions())

	if g.opts.Progress != nil && g.iteration%g.opts.ProgressEvery == 0 {
		g.opts.Progress(g.progress())
	}

	return g.finished(), nil
}

// Run steps until done and returns the network.
// On error the network built so far is internally consistent but incomplete.
func (g *Generator) Run(ctx context.Context) (*Network, error) {
	if g.start.IsZero() {
		g.start = time.Now()
	}
	for {
		done, err := g.Step(ctx)
		if err != nil {
			g.log.Error("generation failed",
				zap.Error(err),
				zap.Int("species", g.net.NumSpecies()),
				zap.Int("reactions", g.net.NumReactions()))

			return g.net, err
		}
		if done {
			break
		}
	}
	elapsed := time.Since(g.start)
	g.opts.Metrics.observeRun(elapsed.Seconds())
	if g.opts.Progress != nil {
		g.opts.Progress(g.progress())
	}
	g.log.Info("network generated",
		zap.Int("species", g.net.NumSpecies()),
		zap.Int("reactions", g.net.NumReactions()),
		zap.Int("iterations", g.iteration),
		zap.Duration("elapsed", elapsed))

	return g.net, nil
}

// Generate is New, Seed and Run in one call.
func Generate(ctx context.Context, seeds []Seed, rules []*core.Rule, opts ...Option) (*Network, error) {
	g, err := New(rules, opts...)
	if err != nil {
		return nil, err
	}
	if err = g.Seed(seeds...); err != nil {
		return nil, err
	}

	return g.Run(ctx)
}

func (g *Generator) finished() bool {
	return g.queue.Empty() || g.iteration >= g.cfg.MaxIterations
}

func (g *Generator) progress() Progress {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return Progress{
		Species:   g.net.NumSpecies(),
		Reactions: g.net.NumReactions(),
		Iteration: g.iteration,
		Elapsed:   time.Since(g.start),
		HeapBytes: ms.HeapAlloc,
	}
}

// tick counts one logical step. Every CheckInterval steps (or when force is
// set) it checks the context and the heap ceiling and yields the processor.
func (g *Generator) tick(ctx context.Context, force bool) error {
	g.steps++
	if !force && g.steps%g.cfg.CheckInterval != 0 {
		return nil
	}
	if err := canceled(ctx); err != nil {
		return err
	}
	if g.cfg.MemoryLimit > 0 && g.steps%g.cfg.CheckInterval == 0 {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		if ms.HeapAlloc > g.cfg.MemoryLimit {
			return &LimitError{Kind: LimitMemory, Rule: g.rule, Limit: g.cfg.MemoryLimit, Value: ms.HeapAlloc}
		}
	}
	runtime.Gosched()

	return nil
}

func canceled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
	default:
		return nil
	}
}

// addSpecies adds g to the network, enforcing MaxSpecies, and enqueues it
// when new.
func (g *Generator) addSpecies(graph *core.Graph) (*core.Species, bool, error) {
	key := canon.Canonicalize(graph)
	if sp, ok := g.net.Lookup(key); ok {
		return sp, false, nil
	}
	n := g.net.NumSpecies()
	if n >= g.cfg.MaxSpecies {
		g.warn.warn(WarnSpecies, g.rule, "max species limit (%d) reached", g.cfg.MaxSpecies)

		return nil, false, &LimitError{Kind: LimitSpecies, Rule: g.rule, Limit: uint64(g.cfg.MaxSpecies), Value: uint64(n + 1)}
	}
	if n+1 == g.cfg.MaxSpecies*9/10 {
		g.warn.warn(WarnSpecies, g.rule, "species count %d is at 90%% of max_species (%d)", n+1, g.cfg.MaxSpecies)
	}
	sp, _ := g.net.addKeyed(graph, key)
	g.queue.Enqueue(sp)

	return sp, true, nil
}

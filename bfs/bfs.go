package bfs

import (
	"context"
	"fmt"

	"github.com/emirpasic/gods/queues/arrayqueue"

	"github.com/katalvlaran/rulenet/core"
)

// queueItem pairs a molecule index with its BFS depth.
type queueItem struct {
	mol   int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	idx   *core.BondIndex
	opts  Options
	ctx   context.Context
	queue *arrayqueue.Queue
	res   *Result
}

// BFS runs breadth-first search over the molecules of g starting from root,
// following bonds between molecules and applying any number of Options.
// Returns ErrGraphNil or ErrStartNotFound for invalid input,
// ErrOptionViolation for bad options, ctx.Err() on cancellation,
// or any OnVisit error.
func BFS(g *core.Graph, root int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	n := g.NumMolecules()
	if root < 0 || root >= n {
		return nil, fmt.Errorf("%w: %d of %d", ErrStartNotFound, root, n)
	}

	w := &walker{
		idx:   g.Index(),
		opts:  o,
		ctx:   o.Ctx,
		queue: arrayqueue.New(),
		res: &Result{
			Order:  make([]int, 0, n),
			Depth:  make([]int, n),
			Parent: make([]int, n),
		},
	}
	for i := 0; i < n; i++ {
		w.res.Depth[i] = -1
		w.res.Parent[i] = -1
	}
	w.enqueue(root, 0, -1)

	return w.res, w.loop()
}

// enqueue marks mol reached at depth d and records its parent.
func (w *walker) enqueue(mol, d, parent int) {
	w.res.Depth[mol] = d
	w.res.Parent[mol] = parent
	w.queue.Enqueue(queueItem{mol: mol, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for !w.queue.Empty() {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		v, _ := w.queue.Dequeue()
		item := v.(queueItem)
		w.res.Order = append(w.res.Order, item.mol)
		if err := w.opts.OnVisit(item.mol, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at molecule %d: %w", item.mol, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.idx.Neighbors(item.mol) {
			if w.res.Depth[nbr] >= 0 || !w.opts.FilterNeighbor(item.mol, nbr) {
				continue
			}
			w.enqueue(nbr, next, item.mol)
		}
	}

	return nil
}

// Components partitions the molecules of g into bond-connected components.
// Each component lists molecule indices in BFS order from its smallest
// member; components are ordered by smallest member. A nil or empty graph
// yields no components.
// Complexity: O(M + B).
func Components(g *core.Graph) [][]int {
	if g == nil {
		return nil
	}
	n := g.NumMolecules()
	seen := make([]bool, n)
	var out [][]int
	for root := 0; root < n; root++ {
		if seen[root] {
			continue
		}
		// background context never cancels and OnVisit never fails
		res, _ := BFS(g, root)
		for _, m := range res.Order {
			seen[m] = true
		}
		out = append(out, res.Order)
	}

	return out
}

// Connected reports whether g consists of exactly one bond-connected complex.
func Connected(g *core.Graph) bool {
	return len(Components(g)) == 1
}

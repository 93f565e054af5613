// Package bfs provides breadth-first search over the molecules of a
// core.Graph, where two molecules are adjacent when any of their sites share
// a bond.
//
// What
//
//   - BFS explores molecules in non-decreasing bonded distance from a root
//     and returns a Result with visit Order, Depth and Parent per molecule.
//   - Levels groups the visit order by depth; the matcher uses it to order
//     pattern molecules.
//   - Components splits a graph into its connected complexes; the network
//     generator uses it to split rewritten products into species.
//   - Options: WithContext, WithMaxDepth, WithFilterNeighbor, WithOnVisit.
//
// Determinism
//
//	core.BondIndex lists neighbours in ascending molecule order and BFS
//	enqueues them in that order, so the visit sequence is reproducible.
//
// Complexity (M = molecules, B = bonds)
//
//   - Time:   O(M + B)
//   - Memory: O(M)
//
// Usage
//
//	res, err := bfs.BFS(g, 0, bfs.WithMaxDepth(2))
//	if err != nil {
//		// ErrGraphNil, ErrStartNotFound, ErrOptionViolation, ctx.Err() or an OnVisit error
//	}
//	for d, level := range res.Levels() {
//		fmt.Println(d, level)
//	}
package bfs

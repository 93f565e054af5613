// Package canon computes canonical keys for species graphs.
//
// Two graphs denote the same species iff Canonicalize returns the same
// string for both. The key is a BNGL species string whose molecule order and
// bond labels are chosen canonically, so it is invariant to molecule
// permutation, component order and bond label renumbering.
//
// Algorithm
//
//  1. Every molecule is coloured by its LocalSignature: name, compartment and
//     the sorted list of its sites, each naming its state and the partner
//     molecule and site it is bonded to (or its bond wildcard).
//  2. Colours are refined until stable: a molecule's new colour is its old
//     colour plus the sorted multiset of (own site, partner site, partner
//     colour) over its bonds.
//  3. While some colour class has more than one member, each member is
//     individualized in turn and the partition is refined again. Every
//     discrete partition yields a serialization; the lexicographically least
//     one is the key.
//  4. Automorphisms found along the way (two leaves with equal strings) prune
//     members that lie in an already explored orbit.
//
// Highly symmetric complexes (rings, stars of identical molecules) cost a
// few extra leaves; asymmetric ones are discrete after step 2.
package canon

// Package match finds every embedding of a pattern graph in a target graph.
//
// An embedding maps each pattern molecule to a distinct target molecule of
// the same name (and compartment, when the pattern names one) and each
// pattern component to a distinct target component of the same name, such
// that:
//
//   - a pattern state, when set, equals the target state;
//   - "!+" and dangling labels require a bonded site, "!-" and plain sites
//     require a free site, "!?" accepts both;
//   - a concrete pattern bond maps onto a target bond between the images of
//     its two endpoints.
//
// Multiplicity matters: symmetric placements are distinct embeddings, so
// FindAll(A().A(), A().A()) returns two maps.
//
// Algorithm (VF2++ style)
//
//  1. Node ordering: per connected pattern component, BFS from the molecule
//     of highest degree and rarest name in the target; within each level,
//     most already-ordered neighbours first.
//  2. Molecule search: an explicit stack of frames, one per ordered pattern
//     molecule. Candidates are unmapped neighbours of the anchor's image, or
//     all unmapped targets for a component root. Each pair passes a quick
//     name/compartment/site multiset check, a label-consistency cut over
//     unmapped neighbourhoods and a frontier check before site matching.
//  3. Site matching: pattern components, most constrained first, are
//     assigned over static per-(pattern, target) candidate bitsets by a
//     second explicit-stack search that checks bond partners against the
//     partial mapping. Every valid assignment is a separate branch.
//
// Results are deterministic for given inputs. Use WithContext for
// cancellation between frames and WithLimit to stop early.
package match

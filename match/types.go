package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/rulenet/core"
)

// ErrNilGraph is returned when the pattern or the target is nil.
var ErrNilGraph = errors.New("match: graph is nil")

// ErrOptionViolation is returned when an invalid Option is supplied.
var ErrOptionViolation = errors.New("match: invalid option supplied")

// Map is one embedding of a pattern into a target.
type Map struct {
	// Molecules[p] is the target molecule of pattern molecule p.
	Molecules []int

	// Components[p][c] is the target component of component c of pattern molecule p.
	Components [][]int
}

// Site maps a pattern site to its target site.
func (m Map) Site(s core.Site) core.Site {
	return core.Site{Mol: m.Molecules[s.Mol], Comp: m.Components[s.Mol][s.Comp]}
}

// TargetMolecules returns the matched target molecules, ascending.
func (m Map) TargetMolecules() []int {
	out := append([]int(nil), m.Molecules...)
	sort.Ints(out)

	return out
}

// Overlaps reports whether m and o share a target molecule.
func (m Map) Overlaps(o Map) bool {
	seen := make(map[int]struct{}, len(m.Molecules))
	for _, t := range m.Molecules {
		seen[t] = struct{}{}
	}
	for _, t := range o.Molecules {
		if _, ok := seen[t]; ok {
			return true
		}
	}

	return false
}

// String renders the molecule mapping, e.g. "[2 0]".
func (m Map) String() string {
	return fmt.Sprint(m.Molecules)
}

// Option configures FindAll.
type Option func(*Options)

// Options holds the matcher knobs.
type Options struct {
	// Ctx is checked between search frames.
	Ctx context.Context

	// Limit stops the search after this many embeddings; 0 means all.
	Limit int

	err error
}

// DefaultOptions returns a background context and no limit.
func DefaultOptions() Options {
	return Options{Ctx: context.Background()}
}

// WithContext sets a context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithLimit stops after n embeddings. n == 0 means unlimited; n < 0 is invalid.
func WithLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: limit cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.Limit = n
	}
}

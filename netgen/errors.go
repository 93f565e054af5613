package netgen

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
)

// Sentinel errors for network generation.
var (
	// ErrLimitExceeded matches every *LimitError through errors.Is.
	ErrLimitExceeded = errors.New("netgen: limit exceeded")

	// ErrCanceled is returned when the caller's context is done. The context
	// error is wrapped as well.
	ErrCanceled = errors.New("netgen: generation canceled")

	// ErrMalformedRule marks a rule variant that cannot be applied, such as a
	// product bond label without exactly two endpoints. The offending product
	// is rejected and the run continues.
	ErrMalformedRule = errors.New("netgen: malformed rule")

	// ErrMalformedProduct marks a product that violates bond wildcard
	// semantics or the bond table. It is rejected and the run continues.
	ErrMalformedProduct = errors.New("netgen: malformed product")

	// ErrNoRules is returned by New for an empty rule set.
	ErrNoRules = errors.New("netgen: no rules")

	// ErrNilSeed is returned by Seed for a nil seed graph.
	ErrNilSeed = errors.New("netgen: nil seed graph")

	// ErrInvalidConfig wraps configuration validation failures.
	ErrInvalidConfig = errors.New("netgen: invalid config")
)

// LimitKind names the exploration limit that stopped a run.
type LimitKind int

const (
	LimitSpecies LimitKind = iota
	LimitReactions
	LimitAgg
	LimitStoich
	LimitMemory
)

// String returns the configuration name of the limit.
func (k LimitKind) String() string {
	switch k {
	case LimitSpecies:
		return "max_species"
	case LimitReactions:
		return "max_reactions"
	case LimitAgg:
		return "max_agg"
	case LimitStoich:
		return "max_stoich"
	case LimitMemory:
		return "memory_limit"
	default:
		return fmt.Sprintf("LimitKind(%d)", int(k))
	}
}

// LimitError is the fatal error raised when a run outgrows a limit. It
// names the rule being applied, which is usually the runaway one.
type LimitError struct {
	Kind     LimitKind
	Rule     string // rule being applied, "" during seeding
	Limit    uint64
	Value    uint64
	Molecule string // molecule type, for LimitStoich
}

func (e *LimitError) Error() string {
	rule := e.Rule
	if rule == "" {
		rule = "unknown"
	}
	switch e.Kind {
	case LimitMemory:
		return fmt.Sprintf("netgen: memory limit exceeded: %s > %s while applying rule %q",
			humanize.IBytes(e.Value), humanize.IBytes(e.Limit), rule)
	case LimitStoich:
		return fmt.Sprintf("netgen: species exceeds %s (%d) for molecule type %q under rule %q; model too large or rule runaway",
			e.Kind, e.Limit, e.Molecule, rule)
	case LimitAgg:
		return fmt.Sprintf("netgen: species of %d molecules exceeds %s (%d); rule %q likely produces runaway polymerization",
			e.Value, e.Kind, e.Limit, rule)
	default:
		return fmt.Sprintf("netgen: reached %s limit (%d) while applying rule %q",
			e.Kind, e.Limit, rule)
	}
}

// Is reports whether target is ErrLimitExceeded.
func (e *LimitError) Is(target error) bool { return target == ErrLimitExceeded }

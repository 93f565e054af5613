// Package modelfile loads reaction network models from TOML.
//
// A model names its limits, rate parameters, seed species and rules:
//
//	[limits]
//	max_species  = 5000
//	max_agg      = 50
//	memory_limit = "512 MiB"
//
//	[parameters]
//	kon  = 1e6
//	koff = 0.1
//
//	[[species]]
//	pattern       = "A(b,s~U)"
//	concentration = 100.0
//
//	[[rules]]
//	name    = "bind"
//	rule    = "A(b) + B(a) <-> A(b!1).B(a!1)"
//	forward = "kon"
//	reverse = "koff"
//
// Rates are numbers or parameter names. Unset limits keep the defaults of
// netgen.DefaultConfig.
package modelfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/rulenet/netgen"
)

// Model is the decoded form of a model file.
type Model struct {
	Limits     Limits             `toml:"limits"`
	Parameters map[string]float64 `toml:"parameters"`
	Species    []SpeciesDef       `toml:"species" validate:"required,min=1,dive"`
	Rules      []RuleDef          `toml:"rules" validate:"required,min=1,dive"`
}

// Limits overlays the exploration limits on netgen.DefaultConfig. The heap
// ceiling is written with a unit, e.g. "1 GiB"; "0" disables it.
type Limits struct {
	netgen.Config

	MemoryLimit string `toml:"memory_limit"`
}

// SpeciesDef is one seed species.
type SpeciesDef struct {
	Pattern       string  `toml:"pattern" validate:"required"`
	Concentration float64 `toml:"concentration" validate:"gte=0"`
}

// RuleDef is one rule line with its rate constants.
type RuleDef struct {
	Name           string `toml:"name" validate:"required"`
	Rule           string `toml:"rule" validate:"required"`
	Forward        Rate   `toml:"forward"`
	Reverse        Rate   `toml:"reverse"`
	Intramolecular bool   `toml:"intramolecular"`
}

// Rate is a rate constant given either as a number or as the name of a
// parameter.
type Rate struct {
	Value float64
	Param string

	set bool
}

// UnmarshalTOML accepts a TOML integer, a float, or a string holding
// either a number or a parameter name. Numbers keep full precision.
func (r *Rate) UnmarshalTOML(data interface{}) error {
	switch v := data.(type) {
	case float64:
		r.Value, r.Param = v, ""
	case int64:
		r.Value, r.Param = float64(v), ""
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return fmt.Errorf("%w: empty rate", ErrInvalidModel)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			r.Value, r.Param = f, ""
		} else {
			r.Value, r.Param = 0, s
		}
	default:
		return fmt.Errorf("%w: rate must be a number or a parameter name, got %T", ErrInvalidModel, data)
	}
	r.set = true

	return nil
}

// IsSet reports whether the rate was present in the file.
func (r Rate) IsSet() bool { return r.set }

// Num returns a literal rate.
func Num(v float64) Rate { return Rate{Value: v, set: true} }

// Param returns a rate bound to a parameter.
func Param(name string) Rate { return Rate{Param: name, set: true} }

func (r Rate) String() string {
	if r.Param != "" {
		return r.Param
	}

	return fmt.Sprint(r.Value)
}

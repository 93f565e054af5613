// SPDX-License-Identifier: MIT

package modelfile

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/katalvlaran/rulenet/bngl"
	"github.com/katalvlaran/rulenet/core"
	"github.com/katalvlaran/rulenet/netgen"
)

// Sentinel errors for model loading.
var (
	// ErrInvalidModel marks a model that decodes but cannot be built.
	ErrInvalidModel = errors.New("modelfile: invalid model")

	// ErrUnknownKey marks a key the model format does not define.
	ErrUnknownKey = errors.New("modelfile: unknown key")

	// ErrUnknownParameter marks a rate naming an undefined parameter.
	ErrUnknownParameter = errors.New("modelfile: unknown parameter")
)

var validate = validator.New()

// Setup is a model ready for generation.
type Setup struct {
	Config netgen.Config
	Seeds  []netgen.Seed
	Rules  []*core.Rule
}

// Load reads and builds the model file at path.
func Load(path string) (*Setup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "modelfile")
	}
	defer f.Close()

	setup, err := Read(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	return setup, nil
}

// Read decodes and builds a model from r.
func Read(r io.Reader) (*Setup, error) {
	m, err := Decode(r)
	if err != nil {
		return nil, err
	}

	return m.Build()
}

// Decode parses TOML into a Model with default limits filled in. Keys
// outside the format are rejected.
func Decode(r io.Reader) (*Model, error) {
	m := &Model{Limits: Limits{Config: netgen.DefaultConfig()}}
	meta, err := toml.NewDecoder(r).Decode(m)
	if err != nil {
		return nil, errors.Wrap(err, "modelfile: decode")
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return nil, errors.Wrapf(ErrUnknownKey, "%s", strings.Join(keys, ", "))
	}

	return m, nil
}

// Build validates m, parses its species and rules and resolves rates.
//
// Errors: ErrInvalidModel for validation failures, ErrUnknownParameter for
// unbound rate names, and the bngl errors for malformed notation, each
// wrapped with the offending entry.
func (m *Model) Build() (*Setup, error) {
	if err := validate.Struct(m); err != nil {
		return nil, errors.Wrapf(ErrInvalidModel, "%v", err)
	}
	cfg := m.Limits.Config
	if m.Limits.MemoryLimit != "" {
		n, err := humanize.ParseBytes(m.Limits.MemoryLimit)
		if err != nil {
			return nil, errors.Wrapf(ErrInvalidModel, "memory_limit %q: %v", m.Limits.MemoryLimit, err)
		}
		cfg.MemoryLimit = n
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "modelfile: limits")
	}

	setup := &Setup{Config: cfg}
	for i, sd := range m.Species {
		g, err := bngl.ParseGraph(sd.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "species %d", i+1)
		}
		setup.Seeds = append(setup.Seeds, netgen.Seed{Graph: g, Concentration: sd.Concentration})
	}

	names := make(map[string]struct{}, len(m.Rules))
	for _, rd := range m.Rules {
		if _, dup := names[rd.Name]; dup {
			return nil, errors.Wrapf(ErrInvalidModel, "duplicate rule name %q", rd.Name)
		}
		names[rd.Name] = struct{}{}

		rules, err := m.rule(rd)
		if err != nil {
			return nil, err
		}
		setup.Rules = append(setup.Rules, rules...)
	}

	return setup, nil
}

func (m *Model) rule(rd RuleDef) ([]*core.Rule, error) {
	if !rd.Forward.IsSet() {
		return nil, errors.Wrapf(ErrInvalidModel, "rule %q: forward rate missing", rd.Name)
	}
	fwd, err := m.resolve(rd.Forward)
	if err != nil {
		return nil, errors.Wrapf(err, "rule %q forward", rd.Name)
	}
	var rev float64
	if rd.Reverse.IsSet() {
		if rev, err = m.resolve(rd.Reverse); err != nil {
			return nil, errors.Wrapf(err, "rule %q reverse", rd.Name)
		}
	}
	rules, err := bngl.ParseRule(rd.Name, rd.Rule, fwd, rev)
	if err != nil {
		return nil, err
	}
	if len(rules) == 2 && !rd.Reverse.IsSet() {
		return nil, errors.Wrapf(ErrInvalidModel, "rule %q: reversible rule needs a reverse rate", rd.Name)
	}
	for _, r := range rules {
		r.Intramolecular = rd.Intramolecular
	}

	return rules, nil
}

func (m *Model) resolve(r Rate) (float64, error) {
	v := r.Value
	if r.Param != "" {
		p, ok := m.Parameters[r.Param]
		if !ok {
			return 0, errors.Wrapf(ErrUnknownParameter, "%q (defined: %s)", r.Param, strings.Join(m.parameterNames(), ", "))
		}
		v = p
	}
	if v < 0 {
		return 0, errors.Wrapf(ErrInvalidModel, "negative rate %v", v)
	}

	return v, nil
}

func (m *Model) parameterNames() []string {
	names := make([]string, 0, len(m.Parameters))
	for n := range m.Parameters {
		names = append(names, n)
	}
	sort.Strings(names)

	return names
}

// Package config holds the per-problem run parameters: built-in defaults
// and the optional YAML run file layered over them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"localSearch/internal/opt"
)

var ErrUnknownProblem = errors.New("config: unknown problem")

// Params is the engine configuration of one problem plus the domain knobs
// that only some problems read.
type Params struct {
	opt.Config `yaml:",inline"`

	// binpack
	Start string `yaml:"start" validate:"omitempty,oneof=firstfit singleton"`
	// hamcycle, netdesign; 0 keeps the domain default
	MoveTries int `yaml:"move_tries" validate:"gte=0"`
	// netdesign
	TabuTenure     int `yaml:"tabu_tenure" validate:"gte=0"`
	TabuTenureRand int `yaml:"tabu_tenure_rand" validate:"gte=0"`
}

var validate = validator.New()

func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	return p.Config.Validate()
}

var defaults = map[string]Params{
	"knapsack": {Config: opt.Config{
		MaxRestarts:       30,
		MaxIterations:     200000,
		StagnationLimit:   5000,
		ConstructAttempts: 1,
		Acceptance:        opt.AcceptGreedy,
		Workers:           1,
	}},
	"hamcycle": {Config: opt.Config{
		TimeLimitS:        20,
		MaxRestarts:       10,
		StagnationLimit:   20000,
		ConstructAttempts: 1,
		Acceptance:        opt.AcceptGreedy,
		Workers:           1,
	}},
	// assign searches by restarts only; one step is enough to learn there is no move
	"assign": {Config: opt.Config{
		MaxRestarts:       40,
		MaxIterations:     1,
		ConstructAttempts: 1,
		Acceptance:        opt.AcceptGreedy,
		Workers:           1,
	}},
	"binpack": {Config: opt.Config{
		MaxRestarts:       1,
		MaxIterations:     50000,
		StagnationLimit:   5000,
		ConstructAttempts: 1,
		Acceptance:        opt.AcceptGreedy,
		Workers:           1,
	}, Start: "firstfit"},
	"netdesign": {Config: opt.Config{
		TimeLimitS:         15,
		MaxRestarts:        40,
		StagnationLimit:    8000,
		ConstructAttempts:  30,
		Acceptance:         opt.AcceptAnnealing,
		InitialTemperature: 0.5,
		CoolingFactor:      0.9995,
		Workers:            1,
	}},
	"queens": {Config: opt.Config{
		MaxRestarts:       40,
		MaxIterations:     300000,
		ConstructAttempts: 1,
		Acceptance:        opt.AcceptWalk,
		Workers:           1,
	}},
}

// Problems lists the known problem names, sorted.
func Problems() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Defaults returns the built-in parameters of a problem.
func Defaults(problem string) (Params, error) {
	p, ok := defaults[problem]
	if !ok {
		return Params{}, fmt.Errorf("%w %q", ErrUnknownProblem, problem)
	}
	return p, nil
}

// File is a parsed run file; problems it does not mention keep their defaults.
type File struct {
	problems map[string]Params
}

type rawFile struct {
	Problems map[string]yaml.Node `yaml:"problems"`
}

// Load reads and parses a run file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a run file strictly, layering each entry over its defaults.
func Parse(data []byte) (*File, error) {
	var raw rawFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config (check for typos): %w", err)
	}

	f := &File{problems: make(map[string]Params, len(raw.Problems))}
	for name, node := range raw.Problems {
		p, err := Defaults(name)
		if err != nil {
			return nil, err
		}
		if err := decodeStrict(&node, &p); err != nil {
			return nil, fmt.Errorf("problem %q: %w", name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("problem %q: %w", name, err)
		}
		f.problems[name] = p
	}
	return f, nil
}

// decodeStrict re-encodes node so the decoder can reject unknown keys.
func decodeStrict(node *yaml.Node, out *Params) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("failed to encode YAML node: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to close YAML encoder: %w", err)
	}
	dec := yaml.NewDecoder(&buf)
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode parameters (check for typos): %w", err)
	}
	return nil
}

// Params returns the file's parameters for problem, or its defaults.
// A nil File yields defaults.
func (f *File) Params(problem string) (Params, error) {
	if f != nil {
		if p, ok := f.problems[problem]; ok {
			return p, nil
		}
	}
	return Defaults(problem)
}

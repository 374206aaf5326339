// Package catalog maps problem names to their loaders, problem builders and
// report writers.
package catalog

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"localSearch/internal/assign"
	"localSearch/internal/binpack"
	"localSearch/internal/config"
	"localSearch/internal/hamcycle"
	"localSearch/internal/knapsack"
	"localSearch/internal/netdesign"
	"localSearch/internal/opt"
	"localSearch/internal/queens"
	"localSearch/internal/ts"
)

// Domain is one problem family.
type Domain interface {
	Name() string
	// Load reads an instance; JSON when isJSON, the whitespace text format otherwise.
	Load(r io.Reader, isJSON bool, p config.Params) (opt.Problem, error)
	// Random builds a generated instance of the given size.
	Random(size int, rng *rand.Rand, p config.Params) (opt.Problem, error)
	// WriteReport writes the domain part of the report for a candidate of this domain.
	WriteReport(w io.Writer, c opt.Candidate) error
}

type domain[I any] struct {
	name      string
	readText  func(io.Reader) (I, error)
	parseJSON func([]byte) (I, error)
	random    func(int, *rand.Rand) I
	build     func(I, config.Params) (opt.Problem, error)
	write     func(io.Writer, opt.Candidate) error
}

func (d domain[I]) Name() string { return d.name }

func (d domain[I]) Load(r io.Reader, isJSON bool, p config.Params) (opt.Problem, error) {
	var (
		inst I
		err  error
	)
	if isJSON {
		var data []byte
		if data, err = io.ReadAll(r); err != nil {
			return nil, fmt.Errorf("read %s instance: %w", d.name, err)
		}
		inst, err = d.parseJSON(data)
	} else {
		inst, err = d.readText(r)
	}
	if err != nil {
		return nil, err
	}
	return d.build(inst, p)
}

func (d domain[I]) Random(size int, rng *rand.Rand, p config.Params) (opt.Problem, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: size must be > 0 (got %d)", opt.ErrInstanceInvalid, size)
	}
	return d.build(d.random(size, rng), p)
}

func (d domain[I]) WriteReport(w io.Writer, c opt.Candidate) error { return d.write(w, c) }

// problem avoids wrapping a nil *P in a non-nil opt.Problem.
func problem[P opt.Problem](p P, err error) (opt.Problem, error) {
	if err != nil {
		return nil, err
	}
	return p, nil
}

// writer adapts a typed report writer; a foreign candidate is an error.
func writer[C opt.Candidate](name string, f func(io.Writer, C) error) func(io.Writer, opt.Candidate) error {
	return func(w io.Writer, c opt.Candidate) error {
		typed, ok := c.(C)
		if !ok {
			return fmt.Errorf("%s: unexpected candidate type %T", name, c)
		}
		return f(w, typed)
	}
}

var domains = map[string]Domain{
	"knapsack": domain[*knapsack.Instance]{
		name:      "knapsack",
		readText:  knapsack.ReadText,
		parseJSON: knapsack.ParseJSON,
		random:    func(n int, rng *rand.Rand) *knapsack.Instance { return knapsack.RandomInstance(n, 100, rng) },
		build: func(inst *knapsack.Instance, _ config.Params) (opt.Problem, error) {
			return problem(knapsack.NewProblem(inst))
		},
		write: writer("knapsack", knapsack.WriteReport),
	},
	"hamcycle": domain[*hamcycle.Instance]{
		name:      "hamcycle",
		readText:  hamcycle.ReadText,
		parseJSON: hamcycle.ParseJSON,
		random: func(n int, rng *rand.Rand) *hamcycle.Instance {
			return hamcycle.RandomInstance(max(n, 3), 0.3, 100, rng)
		},
		build: func(inst *hamcycle.Instance, p config.Params) (opt.Problem, error) {
			opts := hamcycle.DefaultOptions()
			if p.MoveTries > 0 {
				opts.MoveTries = p.MoveTries
			}
			return problem(hamcycle.NewProblem(inst, opts))
		},
		write: writer("hamcycle", hamcycle.WriteReport),
	},
	"assign": domain[*assign.Instance]{
		name:      "assign",
		readText:  assign.ReadText,
		parseJSON: assign.ParseJSON,
		random: func(n int, rng *rand.Rand) *assign.Instance {
			return assign.RandomInstance(max(2, n/5), n, 20, rng)
		},
		build: func(inst *assign.Instance, _ config.Params) (opt.Problem, error) {
			return problem(assign.NewProblem(inst))
		},
		write: writer("assign", assign.WriteReport),
	},
	"binpack": domain[*binpack.Instance]{
		name:      "binpack",
		readText:  binpack.ReadText,
		parseJSON: binpack.ParseJSON,
		random:    func(n int, rng *rand.Rand) *binpack.Instance { return binpack.RandomInstance(n, 100, rng) },
		build: func(inst *binpack.Instance, p config.Params) (opt.Problem, error) {
			return problem(binpack.NewProblem(inst, binpack.Start(p.Start)))
		},
		write: writer("binpack", binpack.WriteReport),
	},
	"netdesign": domain[*netdesign.Instance]{
		name:      "netdesign",
		readText:  netdesign.ReadText,
		parseJSON: netdesign.ParseJSON,
		random: func(n int, rng *rand.Rand) *netdesign.Instance {
			n = max(n, 2)
			return netdesign.RandomInstance(n, n, 3, rng)
		},
		build: func(inst *netdesign.Instance, p config.Params) (opt.Problem, error) {
			opts := netdesign.DefaultOptions()
			if p.MoveTries > 0 {
				opts.MoveTries = p.MoveTries
			}
			opts.Tabu = ts.Config{Tenure: p.TabuTenure, TenureRand: p.TabuTenureRand}
			return problem(netdesign.NewProblem(inst, opts))
		},
		write: writer("netdesign", netdesign.WriteReport),
	},
	"queens": domain[*queens.Instance]{
		name:      "queens",
		readText:  queens.ReadText,
		parseJSON: queens.ParseJSON,
		random:    queens.RandomInstance,
		build: func(inst *queens.Instance, _ config.Params) (opt.Problem, error) {
			return problem(queens.NewProblem(inst))
		},
		write: writer("queens", queens.WriteReport),
	},
}

// Lookup returns the domain registered under name.
func Lookup(name string) (Domain, error) {
	d, ok := domains[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %s)", config.ErrUnknownProblem, name, strings.Join(config.Problems(), ", "))
	}
	return d, nil
}

// LoadFile reads an instance file; a .json extension selects the JSON format.
func LoadFile(d Domain, path string, p config.Params) (opt.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	isJSON := strings.EqualFold(filepath.Ext(path), ".json")
	return d.Load(bytes.NewReader(data), isJSON, p)
}

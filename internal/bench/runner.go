package bench

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"localSearch/internal/catalog"
	"localSearch/internal/config"
	"localSearch/internal/opt"
)

// Variant — политика приёма, с которой сравниваются запуски.
type Variant struct {
	Name       string
	Acceptance opt.Acceptance
	// Параметры отжига, если у задачи нет своих
	InitialTemperature float64
	CoolingFactor      float64
}

// Params накладывает вариант на параметры задачи.
func (v Variant) Params(p config.Params) config.Params {
	p.Acceptance = v.Acceptance
	if v.Acceptance == opt.AcceptAnnealing {
		if p.InitialTemperature == 0 {
			p.InitialTemperature = v.InitialTemperature
		}
		if p.CoolingFactor == 0 {
			p.CoolingFactor = v.CoolingFactor
		}
	}
	return p
}

func DefaultVariants() []Variant {
	return []Variant{
		{Name: "greedy", Acceptance: opt.AcceptGreedy},
		{Name: "walk", Acceptance: opt.AcceptWalk},
		{Name: "annealing", Acceptance: opt.AcceptAnnealing, InitialTemperature: 1, CoolingFactor: 0.999},
	}
}

type Case struct {
	Problem      string
	Size         int
	InstanceSeed int64
	Params       config.Params
}

type Record struct {
	Problem string
	Variant string
	Size    int
	Runs    int
	Found   int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ObjectiveBest float64
	ObjectiveMean float64
	ObjectiveStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
	Log           *zap.Logger
	Observer      opt.Observer
}

func (r Runner) RunCase(ctx context.Context, c Case, v Variant) (Record, error) {
	d, err := catalog.Lookup(c.Problem)
	if err != nil {
		return Record{}, err
	}
	params := v.Params(c.Params)
	p, err := d.Random(c.Size, randForSeed(c.InstanceSeed), params)
	if err != nil {
		return Record{}, err
	}

	objectives := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		cfg := params.Config
		cfg.Seed = r.BaseSeed + int64(i)
		eng, err := opt.New(cfg, r.Log, r.Observer)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := eng.Solve(runCtx, p)
		dur := time.Since(start)
		cancel()

		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		switch {
		case errors.Is(err, opt.ErrNoSolution):
			continue
		case err != nil:
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		case !res.Best.Feasible():
			return Record{}, fmt.Errorf("run %d: engine returned an infeasible best", i)
		}
		objectives = append(objectives, res.Objective)
	}

	objStats := CalcStats(objectives, p.Sense())
	tStats := CalcStats(timesMs, opt.Minimize)

	return Record{
		Problem: c.Problem,
		Variant: v.Name,
		Size:    c.Size,
		Runs:    r.Runs,
		Found:   objStats.N,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ObjectiveBest: objStats.Best,
		ObjectiveMean: objStats.Mean,
		ObjectiveStd:  objStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"problem", "variant", "size", "runs", "found",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"objective_best", "objective_mean", "objective_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Problem,
			r.Variant,
			strconv.Itoa(r.Size),
			strconv.Itoa(r.Runs),
			strconv.Itoa(r.Found),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.ObjectiveBest),
			ftoa(r.ObjectiveMean),
			ftoa(r.ObjectiveStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// Экземпляр задачи генерируется тем же генератором, что и рестарты движка.
func randForSeed(seed int64) *rand.Rand { return opt.NewRNG(seed) }

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }

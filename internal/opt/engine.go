package opt

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// pollEvery — как часто (в шагах) опрашиваются часы и контекст.
const pollEvery = 64

// NopMove — ход без эффекта; окрестность возвращает его, когда бюджет
// выборки исчерпан, но рестарт продолжать можно.
type NopMove struct{}

func (NopMove) Apply() {}
func (NopMove) Undo()  {}

// Engine — контроллер рестартов и бюджетов.
type Engine struct {
	Cfg      Config
	Log      *zap.Logger
	Observer Observer
}

// New возвращает движок с валидацией конфигурации.
func New(cfg Config, log *zap.Logger, obs Observer) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if obs == nil {
		obs = nopObserver{}
	}
	return &Engine{Cfg: cfg, Log: log, Observer: obs}, nil
}

// restartOut — то, что рестарт отдаёт в точку слияния.
type restartOut struct {
	stats RestartStats
	best  Candidate
	evals int
}

// Solve выполняет MaxRestarts независимых рестартов в пределах общего бюджета
// времени и возвращает лучшее допустимое решение.
func (e *Engine) Solve(ctx context.Context, p Problem) (Result, error) {
	start := time.Now()

	if err := e.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	// Политика проверяется до запуска, чтобы рестарты не падали поодиночке
	if _, err := NewAcceptor(e.Cfg, NewRNG(e.Cfg.Seed)); err != nil {
		return Result{}, err
	}

	ctx, span := otel.Tracer("localSearch/opt").Start(ctx, "opt.Solve",
		trace.WithAttributes(
			attribute.String("problem", p.Name()),
			attribute.Int("max_restarts", e.Cfg.MaxRestarts),
			attribute.Int("workers", e.Cfg.Workers),
		))
	defer span.End()

	// Необходимые условия: фатальная ошибка до начала поиска
	if err := p.Precheck(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	if limit := e.Cfg.TimeLimit(); limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithDeadline(ctx, start.Add(limit))
		defer cancel()
	}

	var outs []restartOut
	if e.Cfg.Workers > 1 {
		outs = e.runParallel(ctx, p)
	} else {
		outs = e.runSequential(ctx, p)
	}

	res := e.merge(p, outs)
	res.Duration = time.Since(start)
	if stop := stopFromContext(ctx); stop != "" && res.Stopped != StopSolved {
		res.Stopped = stop
	}

	e.Log.Info("search finished",
		zap.String("problem", p.Name()),
		zap.Int("restarts", res.Restarts),
		zap.Int("skipped", res.Skipped),
		zap.Int("iterations", res.Iterations),
		zap.Float64("objective", res.Objective),
		zap.Bool("found", res.Best != nil),
		zap.String("stopped", string(res.Stopped)),
		zap.Duration("duration", res.Duration),
	)

	if res.Best == nil {
		span.SetStatus(codes.Error, ErrNoSolution.Error())
		return res, fmt.Errorf("%s: %w", p.Name(), ErrNoSolution)
	}
	span.SetAttributes(attribute.Float64("objective", res.Objective))
	return res, nil
}

func (e *Engine) runSequential(ctx context.Context, p Problem) []restartOut {
	outs := make([]restartOut, 0, e.Cfg.MaxRestarts)
	var live liveBest
	for r := 0; r < e.Cfg.MaxRestarts; r++ {
		// Общий бюджет истёк — следующий рестарт не начинаем
		if ctx.Err() != nil {
			break
		}
		out := e.restart(ctx, p, r)
		outs = append(outs, out)
		e.observe(p, out, &live)
		if out.stats.Stopped == StopSolved {
			break
		}
	}
	return outs
}

// runParallel раздаёт рестарты воркерам. Каждый воркер владеет своим
// кандидатом и генератором; слияние выполняется только по границам рестартов.
func (e *Engine) runParallel(ctx context.Context, p Problem) []restartOut {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		mu   sync.Mutex
		outs = make([]restartOut, 0, e.Cfg.MaxRestarts)
		live liveBest
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Cfg.Workers)
	for r := 0; r < e.Cfg.MaxRestarts; r++ {
		idx := r
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			out := e.restart(gctx, p, idx)

			mu.Lock()
			outs = append(outs, out)
			e.observe(p, out, &live)
			mu.Unlock()

			if out.stats.Stopped == StopSolved {
				cancel()
			}
			return nil
		})
	}
	_ = g.Wait()

	// Порядок слияния — по номеру рестарта: при равенстве побеждает более ранний
	slices.SortFunc(outs, func(a, b restartOut) int {
		return cmp.Compare(a.stats.Index, b.stats.Index)
	})
	return outs
}

// merge — единственная точка записи глобально лучшего решения;
// при равенстве побеждает рестарт с меньшим номером.
func (e *Engine) merge(p Problem, outs []restartOut) Result {
	sense := p.Sense()
	res := Result{
		Problem: p.Name(),
		Meta: map[string]any{
			"acceptance": string(e.Cfg.Acceptance),
			"seed":       e.Cfg.Seed,
			"workers":    max(1, e.Cfg.Workers),
		},
	}
	for _, out := range outs {
		st := out.stats
		res.Restarts++
		res.Iterations += st.Iterations
		res.Accepted += st.Accepted
		res.Evaluations += out.evals
		if st.Stopped == StopSkipped {
			res.Skipped++
		}
		if res.Stopped != StopSolved {
			res.Stopped = st.Stopped
		}

		if out.best == nil {
			continue
		}
		if res.Best == nil || sense.Better(out.best.Objective(), res.Objective) {
			res.Best = out.best
			res.Objective = out.best.Objective()
		}
	}
	return res
}

// liveBest — лучшее значение среди уже завершённых рестартов, для наблюдателя.
type liveBest struct {
	found bool
	obj   float64
}

// observe сообщает наблюдателю итог рестарта сразу по его завершении.
// Вызовы сериализованы вызывающей стороной.
func (e *Engine) observe(p Problem, out restartOut, live *liveBest) {
	e.Observer.RestartDone(p.Name(), out.stats)
	if out.best == nil {
		return
	}
	obj := out.best.Objective()
	if !live.found || p.Sense().Better(obj, live.obj) {
		live.found = true
		live.obj = obj
		e.Observer.Improved(p.Name(), obj)
	}
}

// restart — один цикл Constructing → Searching → завершение.
func (e *Engine) restart(ctx context.Context, p Problem, r int) (out restartOut) {
	t0 := time.Now()
	rng := DeriveRNG(e.Cfg.Seed, r)
	out = restartOut{stats: RestartStats{Index: r}}
	log := e.Log.With(zap.String("problem", p.Name()), zap.Int("restart", r))

	ctx, span := otel.Tracer("localSearch/opt").Start(ctx, "opt.Restart",
		trace.WithAttributes(attribute.Int("restart", r)))
	defer func() {
		out.stats.Duration = time.Since(t0)
		span.SetAttributes(
			attribute.String("stopped", string(out.stats.Stopped)),
			attribute.Int("iterations", out.stats.Iterations),
		)
		span.End()
		log.Debug("restart done",
			zap.String("stopped", string(out.stats.Stopped)),
			zap.Bool("feasible", out.stats.Feasible),
			zap.Float64("objective", out.stats.Objective),
			zap.Int("iterations", out.stats.Iterations),
			zap.Duration("duration", out.stats.Duration),
		)
	}()

	// Constructing
	var cur Candidate
	for attempt := 0; attempt < e.Cfg.ConstructAttempts; attempt++ {
		if ctx.Err() != nil {
			out.stats.Stopped = stopFromContext(ctx)
			return out
		}
		c, err := p.Construct(ctx, rng)
		if err == nil {
			cur = c
			break
		}
		if Fatal(err) {
			// Construct не должен возвращать фатальные ошибки после Precheck
			log.Error("construct failed", zap.Error(err))
			break
		}
		log.Debug("construct attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}
	if cur == nil {
		out.stats.Stopped = StopSkipped
		return out
	}

	acc, err := NewAcceptor(e.Cfg, rng)
	if err != nil {
		out.stats.Stopped = StopSkipped
		return out
	}

	sense := p.Sense()
	solver, _ := p.(Solver)

	var bestObj float64
	if cur.Feasible() {
		out.best = cur.Clone()
		bestObj = cur.Objective()
		out.stats.Feasible = true
		out.stats.Objective = bestObj
		if solver != nil && solver.Solved(cur) {
			out.stats.Stopped = StopSolved
			return out
		}
	}

	progress := rate.Sometimes{Interval: 2 * time.Second}
	stagnation := 0

	// Searching
	for iter := 0; ; iter++ {
		if e.Cfg.MaxIterations > 0 && iter >= e.Cfg.MaxIterations {
			out.stats.Stopped = StopIterations
			break
		}
		if iter%pollEvery == 0 && ctx.Err() != nil {
			out.stats.Stopped = stopFromContext(ctx)
			break
		}

		mv, err := p.Neighbor(cur, rng)
		if err != nil {
			if !errors.Is(err, ErrNoMove) {
				log.Warn("neighbor failed", zap.Error(err))
			}
			out.stats.Stopped = StopNoMove
			break
		}
		out.stats.Iterations++

		old := cur.Objective()
		mv.Apply()
		out.evals++
		if acc.Accept(sense.Worsening(old, cur.Objective())) {
			out.stats.Accepted++
		} else {
			mv.Undo()
		}

		if cur.Feasible() && (out.best == nil || sense.Better(cur.Objective(), bestObj)) {
			out.best = cur.Clone()
			bestObj = cur.Objective()
			out.stats.Feasible = true
			out.stats.Objective = bestObj
			stagnation = 0
			if solver != nil && solver.Solved(cur) {
				out.stats.Stopped = StopSolved
				break
			}
		} else {
			stagnation++
		}

		if e.Cfg.StagnationLimit > 0 && stagnation > e.Cfg.StagnationLimit {
			out.stats.Stopped = StopStagnated
			break
		}

		progress.Do(func() {
			log.Debug("searching",
				zap.Int("iter", iter),
				zap.Float64("current", cur.Objective()),
				zap.Float64("best", bestObj),
				zap.Int("stagnation", stagnation),
			)
		})
	}
	return out
}

func stopFromContext(ctx context.Context) Stop {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return StopDeadline
	case ctx.Err() != nil:
		return StopContext
	default:
		return ""
	}
}

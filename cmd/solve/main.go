package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"localSearch/internal/catalog"
	"localSearch/internal/config"
	"localSearch/internal/metrics"
	"localSearch/internal/opt"
	"localSearch/internal/report"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		problem     = flag.String("problem", "", "задача: assign, binpack, hamcycle, knapsack, netdesign, queens")
		in          = flag.String("in", "", "файл экземпляра (.json — формат JSON, иначе текстовый)")
		out         = flag.String("out", "", "файл отчёта; пусто — стандартный вывод")
		cfgPath     = flag.String("config", "", "YAML-файл с параметрами задач")
		seed        = flag.Int64("seed", 0, "базовый сид (перекрывает конфигурацию)")
		timeLimit   = flag.Float64("time", 0, "лимит времени в секундах (перекрывает конфигурацию)")
		restarts    = flag.Int("restarts", 0, "количество рестартов (перекрывает конфигурацию)")
		workers     = flag.Int("workers", 0, "параллельные рестарты (перекрывает конфигурацию)")
		verbose     = flag.Bool("verbose", false, "подробный журнал")
		metricsAddr = flag.String("metrics-addr", "", "адрес HTTP для /metrics; пусто — не поднимать")
	)
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *problem == "" || *in == "" {
		fmt.Fprintln(os.Stderr, "Нужно указать -problem и -in")
		flag.Usage()
		return 2
	}

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации журнала:", err)
		return 2
	}
	defer func() { _ = log.Sync() }()

	var file *config.File
	if *cfgPath != "" {
		if file, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
			return 2
		}
	}
	params, err := file.Params(*problem)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}
	if set["seed"] {
		params.Seed = *seed
	}
	if set["time"] {
		params.TimeLimitS = *timeLimit
	}
	if set["restarts"] {
		params.MaxRestarts = *restarts
	}
	if set["workers"] {
		params.Workers = *workers
	}
	if err := params.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в параметрах:", err)
		return 2
	}

	domain, err := catalog.Lookup(*problem)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		return 2
	}
	p, err := catalog.LoadFile(domain, *in, params)
	if err != nil {
		log.Error("load instance", zap.String("path", *in), zap.Error(err))
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		return 1
	}

	m := metrics.New()
	if *metricsAddr != "" {
		stopMetrics := serveMetrics(*metricsAddr, m, log)
		defer stopMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	eng, err := opt.New(params.Config, log, m)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в параметрах:", err)
		return 2
	}
	res, solveErr := eng.Solve(ctx, p)
	res.Problem = p.Name()

	w, closeOut, err := openOutput(*out)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		return 1
	}
	defer closeOut()

	header := report.NewHeader(res, p.Sense(), solveErr)
	if err := header.Write(w); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка записи отчёта:", err)
		return 1
	}

	switch {
	case solveErr == nil:
		if err := domain.WriteReport(w, res.Best); err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка записи отчёта:", err)
			return 1
		}
		return 0
	case errors.Is(solveErr, opt.ErrNoSolution):
		log.Warn("no feasible solution", zap.String("problem", p.Name()), zap.Int("restarts", res.Restarts))
		return 0
	default:
		log.Error("solve failed", zap.String("problem", p.Name()), zap.Error(solveErr))
		fmt.Fprintln(os.Stderr, "Ошибка:", solveErr)
		return 1
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func serveMetrics(addr string, m *metrics.Metrics, log *zap.Logger) func() {
	m.RegisterRuntime()
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server", zap.String("addr", addr), zap.Error(err))
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create report: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

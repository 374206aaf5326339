package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"localSearch/internal/bench"
	"localSearch/internal/config"
)

func main() {
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		problems     = flag.String("problems", strings.Join(config.Problems(), ","), "список задач (через запятую)")
		sizes        = flag.String("sizes", "20,50,100", "размеры случайных экземпляров (через запятую)")
		variants     = flag.String("accept", "greedy,walk,annealing", "политики приёма: greedy, walk, annealing (через запятую)")
		runs         = flag.Int("runs", 10, "количество запусков каждой политики (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")
		timeLimit    = flag.Float64("time", -1, "лимит времени одного запуска в секундах; <0 — из конфигурации")
		cfgPath      = flag.String("config", "", "YAML-файл с параметрами задач")
		verbose      = flag.Bool("verbose", false, "подробный журнал")
	)
	flag.Parse()

	log, err := newLogger(*verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации журнала:", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var file *config.File
	if *cfgPath != "" {
		if file, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
			os.Exit(2)
		}
	}

	sizeList, err := parseSizes(*sizes)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	available := make(map[string]bench.Variant)
	for _, v := range bench.DefaultVariants() {
		available[v.Name] = v
	}
	var selected []bench.Variant
	for _, name := range splitCSV(*variants) {
		v, ok := available[name]
		if !ok {
			fmt.Fprintf(os.Stderr, "Политика приёма %q не поддерживается; доступные: greedy, walk, annealing\n", name)
			os.Exit(2)
		}
		selected = append(selected, v)
	}

	var cases []bench.Case
	for i, name := range splitCSV(*problems) {
		params, err := file.Params(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}
		if *timeLimit >= 0 {
			params.TimeLimitS = *timeLimit
		}
		for j, n := range sizeList {
			cases = append(cases, bench.Case{
				Problem:      name,
				Size:         n,
				InstanceSeed: *instanceSeed + int64(i)*10_000 + int64(j)*100 + int64(n),
				Params:       params,
			})
		}
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
		Log:           log,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, v := range selected {
			fmt.Printf("Запущена задача %s (размер %d), политика %s (общее кол-во запусков=%d)...\n", c.Problem, c.Size, v.Name, runner.Runs)

			rec, err := runner.RunCase(ctx, c, v)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Значение целевой функции: лучшее=%.2f среднее=%.2f стандартное отклонение=%.2f (найдено %d/%d) | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.ObjectiveBest, rec.ObjectiveMean, rec.ObjectiveStd, rec.Found, rec.Runs,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func parseSizes(s string) ([]int, error) {
	var out []int
	for _, p := range splitCSV(s) {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: %w", p, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("размер %q должен быть > 0", p)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("не задано ни одного размера")
	}
	return out, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

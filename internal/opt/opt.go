package opt

import (
	"context"
	"math/rand"
	"time"
)

// Sense — направление оптимизации целевой функции.
type Sense int

const (
	Minimize Sense = iota
	Maximize
)

func (s Sense) String() string {
	if s == Maximize {
		return "max"
	}
	return "min"
}

// Better сообщает, лучше ли a, чем b, строго.
func (s Sense) Better(a, b float64) bool {
	if s == Maximize {
		return a > b
	}
	return a < b
}

// Worsening переводит изменение old -> new в "ухудшение":
// положительное значение всегда означает худшее решение.
func (s Sense) Worsening(old, new float64) float64 {
	if s == Maximize {
		return old - new
	}
	return new - old
}

// Candidate — рабочее решение, принадлежащее одному рестарту.
type Candidate interface {
	Objective() float64
	Feasible() bool
	Clone() Candidate
}

// Move — одно обратимое локальное возмущение кандидата.
// Apply изменяет кандидата на месте, Undo полностью откатывает изменение.
type Move interface {
	Apply()
	Undo()
}

// Problem — набор возможностей, которые задача предоставляет движку.
type Problem interface {
	Name() string
	Sense() Sense
	// Precheck дешево проверяет необходимые условия существования решения.
	Precheck() error
	// Construct строит стартового кандидата для рестарта.
	Construct(ctx context.Context, rng *rand.Rand) (Candidate, error)
	// Neighbor возвращает ровно один ход; ErrNoMove, если хода нет.
	Neighbor(c Candidate, rng *rand.Rand) (Move, error)
}

// Solver — необязательное расширение Problem: решение заведомо оптимально.
type Solver interface {
	Solved(c Candidate) bool
}

// Stop — причина завершения рестарта.
type Stop string

const (
	StopSkipped    Stop = "skipped"
	StopStagnated  Stop = "stagnated"
	StopIterations Stop = "iterations"
	StopDeadline   Stop = "deadline"
	StopNoMove     Stop = "no_move"
	StopSolved     Stop = "solved"
	StopContext    Stop = "context"
)

type Result struct {
	Problem     string
	Best        Candidate
	Objective   float64
	Restarts    int
	Skipped     int
	Iterations  int
	Evaluations int
	Accepted    int
	Duration    time.Duration
	Stopped     Stop
	Meta        map[string]any
}

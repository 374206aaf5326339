package opt

import "time"

// RestartStats — итог одного рестарта.
type RestartStats struct {
	Index      int
	Stopped    Stop
	Feasible   bool
	Objective  float64
	Iterations int
	Accepted   int
	Duration   time.Duration
}

// Observer получает события движка на границе каждого рестарта, как только
// тот завершился. Вызовы сериализованы, поэтому реализация не обязана быть
// потокобезопасной относительно движка.
type Observer interface {
	RestartDone(problem string, st RestartStats)
	Improved(problem string, objective float64)
}

type nopObserver struct{}

func (nopObserver) RestartDone(string, RestartStats) {}
func (nopObserver) Improved(string, float64)         {}

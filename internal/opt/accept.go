package opt

import (
	"fmt"
	"math/rand"

	"localSearch/internal/sa"
)

// Acceptor решает, сохранить ли применённый ход.
// delta — ухудшение (delta < 0 — улучшение), см. Sense.Worsening.
type Acceptor interface {
	Accept(delta float64) bool
}

// Greedy принимает только строго улучшающие ходы.
type Greedy struct{}

func (Greedy) Accept(delta float64) bool { return delta < 0 }

// Walk принимает любой ход: сам ход уже выбран жадно (min-conflicts).
type Walk struct{}

func (Walk) Accept(float64) bool { return true }

// NewAcceptor создаёт политику приёма для одного рестарта.
func NewAcceptor(cfg Config, rng *rand.Rand) (Acceptor, error) {
	switch cfg.Acceptance {
	case AcceptGreedy, "":
		return Greedy{}, nil
	case AcceptWalk:
		return Walk{}, nil
	case AcceptAnnealing:
		sc := sa.DefaultConfig()
		sc.InitialTemp = cfg.InitialTemperature
		sc.Alpha = cfg.CoolingFactor
		return sa.New(sc, rng)
	default:
		return nil, fmt.Errorf("неизвестная политика приёма %q", cfg.Acceptance)
	}
}

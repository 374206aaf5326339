package sa

import (
	"fmt"
	"math"
	"math/rand"
)

// Annealer — политика приёма имитации отжига.
// Состояние (температура) принадлежит одному рестарту.
type Annealer struct {
	Cfg Config
	Rng *rand.Rand
	T   float64

	acceptedWorse int
}

// New возвращает отжиг с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
func New(cfg Config, rng *rand.Rand) (*Annealer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Annealer{Cfg: cfg, Rng: rng, T: cfg.InitialTemp}, nil
}

// Accept решает судьбу хода с ухудшением delta (delta < 0 — улучшение)
// и затем охлаждает температуру.
func (a *Annealer) Accept(delta float64) bool {
	accept := false
	if delta < 0 {
		// Улучшающее решение принимаем всегда
		accept = true
	} else {
		// Критерий Метрополиса
		p := math.Exp(-delta / a.T)
		if a.Rng.Float64() < p {
			accept = true
			if delta > 0 {
				a.acceptedWorse++
			}
		}
	}

	// Охлаждение температуры
	a.T *= a.Cfg.Alpha
	if a.T < a.Cfg.MinTemp {
		a.T = a.Cfg.MinTemp
	}
	return accept
}

// AcceptedWorse — сколько ухудшающих ходов было принято.
func (a *Annealer) AcceptedWorse() int { return a.acceptedWorse }

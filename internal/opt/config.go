package opt

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Политика приёма соседнего решения.
type Acceptance string

const (
	AcceptGreedy    Acceptance = "greedy"
	AcceptWalk      Acceptance = "walk"
	AcceptAnnealing Acceptance = "annealing"
)

type Config struct {
	TimeLimitS        float64    `yaml:"time_limit_s" validate:"gte=0"`
	MaxRestarts       int        `yaml:"max_restarts" validate:"gte=1"`
	MaxIterations     int        `yaml:"max_iterations" validate:"gte=0"`
	StagnationLimit   int        `yaml:"stagnation_limit" validate:"gte=0"`
	ConstructAttempts int        `yaml:"construct_attempts" validate:"gte=1"`
	Acceptance        Acceptance `yaml:"acceptance" validate:"oneof=greedy walk annealing"`

	InitialTemperature float64 `yaml:"initial_temperature" validate:"required_if=Acceptance annealing,gte=0"`
	CoolingFactor      float64 `yaml:"cooling_factor" validate:"required_if=Acceptance annealing,gte=0,lt=1"`

	Workers int   `yaml:"workers" validate:"gte=0,lte=256"`
	Seed    int64 `yaml:"seed"`
}

// DefaultConfig — нейтральные значения; у каждой задачи свои умолчания.
func DefaultConfig() Config {
	return Config{
		MaxRestarts:       10,
		MaxIterations:     100000,
		StagnationLimit:   5000,
		ConstructAttempts: 1,
		Acceptance:        AcceptGreedy,
		Workers:           1,
	}
}

var configValidator = validator.New()

func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.TimeLimitS == 0 && c.MaxIterations == 0 && c.StagnationLimit == 0 {
		// без единого ограничителя рестарт может не завершиться
		return fmt.Errorf("invalid config: one of time_limit_s, max_iterations, stagnation_limit must be > 0")
	}
	return nil
}

// TimeLimit — общий бюджет времени; 0 — без ограничения.
func (c Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitS * float64(time.Second))
}

package sa

import "fmt"

type Config struct {
	InitialTemp float64
	// MinTemp — нижняя граница температуры, чтобы exp(-delta/T) оставался определён.
	MinTemp float64
	Alpha   float64
}

func DefaultConfig() Config {
	return Config{
		InitialTemp: 0.5,
		MinTemp:     1e-9,
		Alpha:       0.9995,
	}
}

func (c Config) Validate() error {
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.MinTemp <= 0 {
		return fmt.Errorf(
			"MinTemp должно быть > 0 (получено %g)",
			c.MinTemp,
		)
	}
	if c.MinTemp >= c.InitialTemp {
		return fmt.Errorf(
			"MinTemp должно быть < InitialTemp (получено %g >= %f)",
			c.MinTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	return nil
}

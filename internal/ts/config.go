package ts

import "fmt"

type Config struct {
	// Tenure — сколько шагов ход остаётся запрещённым; 0 отключает список.
	Tenure int

	TenureRand int
}

func DefaultConfig() Config {
	return Config{
		Tenure:     0,
		TenureRand: 0,
	}
}

func (c Config) Validate() error {
	if c.Tenure < 0 {
		return fmt.Errorf(
			"Tenure должно быть >= 0 (получено %d)",
			c.Tenure,
		)
	}
	if c.TenureRand < 0 {
		return fmt.Errorf(
			"TenureRand должно быть >= 0 (получено %d)",
			c.TenureRand,
		)
	}
	return nil
}

// Enabled сообщает, используется ли табу-список вообще.
func (c Config) Enabled() bool { return c.Tenure > 0 }

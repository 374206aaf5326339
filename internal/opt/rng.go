package opt

import "math/rand"

// defaultSeed используется, когда seed == 0.
const defaultSeed int64 = 1

// NewRNG возвращает детерминированный генератор; seed == 0 заменяется на defaultSeed.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// DeriveSeed смешивает базовый seed и номер потока (финализатор SplitMix64),
// чтобы соседние рестарты получали некоррелированные потоки.
func DeriveSeed(parent int64, stream uint64) int64 {
	if parent == 0 {
		parent = defaultSeed
	}
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// DeriveRNG — генератор рестарта r. Не зависит от числа воркеров.
func DeriveRNG(seed int64, r int) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(seed, uint64(r))))
}

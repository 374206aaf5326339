package ts

import "math/rand"

// List — табу-список.
// Реализован как кольцевой буфер фиксированного размера
// с map для быстрой проверки табуированности.
type List struct {
	cfg Config
	m   map[uint64]int // ключ → итерация истечения табу
	key []uint64       // кольцевой буфер ключей
	exp []int          // соответствующие сроки истечения
	i   int            // текущая позиция в кольце
}

// New создаёт табу-список; ёмкость выбирается с запасом относительно длины табу.
func New(cfg Config) *List {
	capacity := max(8, (cfg.Tenure+cfg.TenureRand)*4)
	return &List{
		cfg: cfg,
		m:   make(map[uint64]int, capacity*2),
		key: make([]uint64, capacity),
		exp: make([]int, capacity),
	}
}

// IsTabu проверяет, является ли ход табуированным на текущей итерации.
func (t *List) IsTabu(k uint64, iter int) bool {
	if exp, ok := t.m[k]; ok && exp > iter {
		return true
	}
	return false
}

// Add добавляет новый табу-ход с указанием итерации истечения.
func (t *List) Add(k uint64, expiry int) {
	// Удаление старого элемента из кольцевого буфера
	oldK := t.key[t.i]
	oldExp := t.exp[t.i]
	if oldK != 0 {
		if curExp, ok := t.m[oldK]; ok && curExp == oldExp {
			delete(t.m, oldK)
		}
	}

	t.key[t.i] = k
	t.exp[t.i] = expiry
	t.m[k] = expiry

	t.i++
	if t.i >= len(t.key) {
		t.i = 0
	}
}

// Forbid запрещает ключ на срок Tenure (+ случайная добавка) начиная с iter.
func (t *List) Forbid(k uint64, iter int, rng *rand.Rand) {
	if !t.cfg.Enabled() {
		return
	}
	tenure := t.cfg.Tenure
	if t.cfg.TenureRand > 0 && rng != nil {
		tenure += rng.Intn(t.cfg.TenureRand + 1)
	}
	t.Add(k, iter+tenure)
}

// Remove снимает запрет.
func (t *List) Remove(k uint64) {
	delete(t.m, k)
}

// Expiry возвращает текущий срок запрета ключа, если он записан.
func (t *List) Expiry(k uint64) (int, bool) {
	exp, ok := t.m[k]
	return exp, ok
}

// Restore возвращает ключу состояние, снятое через Expiry (откат хода).
func (t *List) Restore(k uint64, expiry int, ok bool) {
	if !ok {
		t.Remove(k)
		return
	}
	t.m[k] = expiry
}

// Clone копирует список; копия независима от оригинала.
func (t *List) Clone() *List {
	c := &List{
		cfg: t.cfg,
		m:   make(map[uint64]int, len(t.m)),
		key: append([]uint64(nil), t.key...),
		exp: append([]int(nil), t.exp...),
		i:   t.i,
	}
	for k, v := range t.m {
		c.m[k] = v
	}
	return c
}

// PairKey формирует ключ неупорядоченной пары (a,b); 0 не используется как ключ.
func PairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return ((uint64(uint32(a)) << 32) | uint64(uint32(b))) + 1
}

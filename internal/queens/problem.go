package queens

import (
	"context"
	"fmt"
	"math/rand"
	"slices"

	"localSearch/internal/opt"
)

// Board keeps a queen per column plus occupancy counters for rows and both
// diagonals. Conflicts is the sum of C(count,2) over all counters, which
// equals the pairwise count of Conflicts(Rows).
type Board struct {
	Rows      []int
	Conflicts int

	row  []int
	diag []int // r+c
	anti []int // r-c+n-1
}

func newBoard(rows []int) *Board {
	n := len(rows)
	b := &Board{
		Rows: rows,
		row:  make([]int, n),
		diag: make([]int, 2*n-1),
		anti: make([]int, 2*n-1),
	}
	for c, r := range rows {
		b.place(c, r)
	}
	return b
}

func (b *Board) Objective() float64 { return float64(b.Conflicts) }
func (b *Board) Feasible() bool     { return true }

func (b *Board) Clone() opt.Candidate {
	return &Board{
		Rows:      slices.Clone(b.Rows),
		Conflicts: b.Conflicts,
		row:       slices.Clone(b.row),
		diag:      slices.Clone(b.diag),
		anti:      slices.Clone(b.anti),
	}
}

// attacks is the number of queens other than the one in column c that
// would attack a queen at (r, c).
func (b *Board) attacks(c, r int) int {
	n := len(b.Rows)
	k := b.row[r] + b.diag[r+c] + b.anti[r-c+n-1]
	if b.Rows[c] == r {
		k -= 3
	}
	return k
}

// InConflict reports whether the queen in column c is attacked.
func (b *Board) InConflict(c int) bool {
	n := len(b.Rows)
	r := b.Rows[c]
	return b.row[r] > 1 || b.diag[r+c] > 1 || b.anti[r-c+n-1] > 1
}

func (b *Board) place(c, r int) {
	n := len(b.Rows)
	b.Conflicts += b.row[r] + b.diag[r+c] + b.anti[r-c+n-1]
	b.row[r]++
	b.diag[r+c]++
	b.anti[r-c+n-1]++
	b.Rows[c] = r
}

func (b *Board) lift(c int) {
	n := len(b.Rows)
	r := b.Rows[c]
	b.row[r]--
	b.diag[r+c]--
	b.anti[r-c+n-1]--
	b.Conflicts -= b.row[r] + b.diag[r+c] + b.anti[r-c+n-1]
}

type Problem struct {
	inst *Instance
	// perturb is the number of random column moves applied to the initial placement.
	perturb int
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst, perturb: inst.N / 2}, nil
}

func (p *Problem) Name() string        { return "queens" }
func (p *Problem) Sense() opt.Sense    { return opt.Minimize }
func (p *Problem) Instance() *Instance { return p.inst }

// Precheck rejects the two board sizes with no conflict-free placement.
func (p *Problem) Precheck() error {
	if p.inst.N == 2 || p.inst.N == 3 {
		return fmt.Errorf("%w: no placement of %d queens is conflict-free", opt.ErrNecessaryCondition, p.inst.N)
	}
	return nil
}

// Solved stops the search at zero conflicts.
func (p *Problem) Solved(c opt.Candidate) bool { return c.(*Board).Conflicts == 0 }

// NewBoard wraps a 0-indexed placement.
func (p *Problem) NewBoard(rows []int) (*Board, error) {
	if _, err := NewInstance(rows); err != nil {
		return nil, err
	}
	if len(rows) != p.inst.N {
		return nil, fmt.Errorf("%w: need %d rows (got %d)", opt.ErrInstanceInvalid, p.inst.N, len(rows))
	}
	return newBoard(rows), nil
}

func (p *Problem) Construct(_ context.Context, rng *rand.Rand) (opt.Candidate, error) {
	n := p.inst.N
	rows := slices.Clone(p.inst.Initial)
	for k := 0; k < p.perturb; k++ {
		rows[rng.Intn(n)] = rng.Intn(n)
	}
	return newBoard(rows), nil
}

// Neighbor is the min-conflicts step: a random attacked column moves to a
// row with the fewest attackers, ties broken uniformly.
func (p *Problem) Neighbor(c opt.Candidate, rng *rand.Rand) (opt.Move, error) {
	b := c.(*Board)
	n := len(b.Rows)

	var cols []int
	for col := 0; col < n; col++ {
		if b.InConflict(col) {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return nil, opt.ErrNoMove
	}
	col := cols[rng.Intn(len(cols))]

	best := -1
	var rows []int
	for r := 0; r < n; r++ {
		k := b.attacks(col, r)
		switch {
		case best < 0 || k < best:
			best = k
			rows = append(rows[:0], r)
		case k == best:
			rows = append(rows, r)
		}
	}
	return &placeMove{b: b, col: col, from: b.Rows[col], to: rows[rng.Intn(len(rows))]}, nil
}

type placeMove struct {
	b        *Board
	col      int
	from, to int
}

func (m *placeMove) Apply() {
	m.b.lift(m.col)
	m.b.place(m.col, m.to)
}

func (m *placeMove) Undo() {
	m.b.lift(m.col)
	m.b.place(m.col, m.from)
}

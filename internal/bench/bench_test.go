package bench

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/config"
	"localSearch/internal/opt"
)

func TestCalcStatsRespectsSense(t *testing.T) {
	values := []float64{4, 2, 6}
	lo := CalcStats(values, opt.Minimize)
	hi := CalcStats(values, opt.Maximize)
	assert.Equal(t, 2.0, lo.Best)
	assert.Equal(t, 6.0, hi.Best)
	assert.Equal(t, 4.0, lo.Mean)
	assert.InDelta(t, 2.0, lo.Std, 1e-12)

	one := CalcStats([]float64{3}, opt.Minimize)
	assert.Equal(t, 0.0, one.Std)
	assert.Equal(t, 0, CalcStats(nil, opt.Minimize).N)
}

func TestVariantParamsFillsAnnealing(t *testing.T) {
	p, err := config.Defaults("knapsack")
	require.NoError(t, err)

	var annealing Variant
	for _, v := range DefaultVariants() {
		if v.Acceptance == opt.AcceptAnnealing {
			annealing = v
		}
	}
	got := annealing.Params(p)
	assert.Equal(t, opt.AcceptAnnealing, got.Acceptance)
	assert.Equal(t, 1.0, got.InitialTemperature)
	require.NoError(t, got.Validate())

	nd, err := config.Defaults("netdesign")
	require.NoError(t, err)
	assert.Equal(t, 0.5, annealing.Params(nd).InitialTemperature, "problem's own temperature wins")
}

func smallCase(t *testing.T, problem string, size int) Case {
	t.Helper()
	p, err := config.Defaults(problem)
	require.NoError(t, err)
	p.TimeLimitS = 0
	p.MaxRestarts = 2
	p.MaxIterations = 2000
	p.StagnationLimit = 0
	return Case{Problem: problem, Size: size, InstanceSeed: 77, Params: p}
}

func TestRunCaseAndCSV(t *testing.T) {
	runner := Runner{Runs: 3, BaseSeed: 10}
	var records []Record
	for _, v := range DefaultVariants() {
		rec, err := runner.RunCase(context.Background(), smallCase(t, "knapsack", 15), v)
		require.NoError(t, err)
		assert.Equal(t, 3, rec.Found)
		assert.GreaterOrEqual(t, rec.ObjectiveBest, rec.ObjectiveMean)
		records = append(records, rec)
	}

	path := filepath.Join(t.TempDir(), "out", "results.csv")
	require.NoError(t, WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "problem", rows[0][0])
	assert.Equal(t, []string{"knapsack", "greedy", "15", "3", "3"}, rows[1][:5])
}

func TestRunCaseUnknownProblem(t *testing.T) {
	c := smallCase(t, "queens", 8)
	c.Problem = "tsp"
	_, err := Runner{Runs: 1}.RunCase(context.Background(), c, DefaultVariants()[0])
	require.ErrorIs(t, err, config.ErrUnknownProblem)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localSearch/internal/opt"
)

var _ opt.Observer = (*Metrics)(nil)

func TestObserverCounts(t *testing.T) {
	m := New()
	m.RestartDone("queens", opt.RestartStats{Stopped: opt.StopSolved, Iterations: 120, Accepted: 80, Duration: 5 * time.Millisecond})
	m.RestartDone("queens", opt.RestartStats{Stopped: opt.StopSkipped})
	m.RestartDone("queens", opt.RestartStats{Stopped: opt.StopSolved, Iterations: 30, Accepted: 10})
	m.Improved("queens", 3)
	m.Improved("queens", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Restarts.WithLabelValues("queens", "solved")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Restarts.WithLabelValues("queens", "skipped")))
	assert.Equal(t, 150.0, testutil.ToFloat64(m.Steps.WithLabelValues("queens")))
	assert.Equal(t, 90.0, testutil.ToFloat64(m.AcceptedMoves.WithLabelValues("queens")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BestObjective.WithLabelValues("queens")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RestartDuration))
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.RegisterRuntime()
	m.RegisterRuntime()
	m.Improved("knapsack", 9)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `localsearch_best_objective{problem="knapsack"} 9`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// Package report writes the run header shared by every problem report and
// the marker printed when a run ends without a solution.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"localSearch/internal/opt"
)

type Status string

const (
	StatusOK         Status = "OK"
	StatusNoSolution Status = "NO SOLUTION"
	StatusInfeasible Status = "INFEASIBLE"
)

type Header struct {
	RunID      uuid.UUID
	Problem    string
	Status     Status
	Reason     string
	Sense      opt.Sense
	Objective  float64
	Restarts   int
	Skipped    int
	Iterations int
	Stopped    opt.Stop
	Duration   time.Duration
}

// NewHeader summarizes a finished Solve call. err is the error Solve returned.
func NewHeader(res opt.Result, sense opt.Sense, err error) Header {
	h := Header{
		RunID:      uuid.New(),
		Problem:    res.Problem,
		Status:     StatusOK,
		Sense:      sense,
		Objective:  res.Objective,
		Restarts:   res.Restarts,
		Skipped:    res.Skipped,
		Iterations: res.Iterations,
		Stopped:    res.Stopped,
		Duration:   res.Duration,
	}
	switch {
	case err == nil:
	case errors.Is(err, opt.ErrNecessaryCondition):
		h.Status = StatusInfeasible
		h.Reason = err.Error()
	default:
		h.Status = StatusNoSolution
		h.Reason = err.Error()
	}
	return h
}

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

func (h Header) objective() string {
	if h.Objective == math.Trunc(h.Objective) && math.Abs(h.Objective) < 1<<53 {
		return printer.Sprintf("%d", int64(h.Objective))
	}
	return printer.Sprintf("%.6f", h.Objective)
}

// Write prints the header followed by a blank line. Without a solution the
// objective is omitted and the marker and reason close the block.
func (h Header) Write(w io.Writer) error {
	p := printer
	if _, err := p.Fprintf(w, "Run: %s\nProblem: %s\nStatus: %s\n", h.RunID, title.String(h.Problem), h.Status); err != nil {
		return err
	}
	if h.Status == StatusOK {
		if _, err := p.Fprintf(w, "Objective: %s (%s)\n", h.objective(), h.Sense); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "Restarts: %d (skipped %d)\nIterations: %d\n", h.Restarts, h.Skipped, h.Iterations); err != nil {
		return err
	}
	if h.Stopped != "" {
		if _, err := fmt.Fprintf(w, "Stopped: %s\n", h.Stopped); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Duration: %s\n", h.Duration.Round(time.Millisecond)); err != nil {
		return err
	}
	if h.Status != StatusOK {
		if _, err := fmt.Fprintf(w, "\n%s\nReason: %s\n", h.Status, h.Reason); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

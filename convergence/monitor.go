// SPDX-License-Identifier: MIT

package convergence

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"
)

// ErrBadConfig is returned by New for an unusable Config.
var ErrBadConfig = errors.New("convergence: invalid config")

// Config sets the budget and the error schedule of a Monitor.
type Config struct {
	// MaxIterations is the hard iteration budget (>= 1).
	MaxIterations int

	// CheckInterval: the error is evaluated every CheckInterval iterations
	// and on the last budgeted one (>= 1).
	CheckInterval int

	// Tolerance: an observed error <= Tolerance means Converged (> 0).
	Tolerance float64

	// Patience enables stall detection when > 0: that many consecutive
	// checks without a relative improvement of MinImprovement end the solve.
	Patience int

	// MinImprovement is the relative decrease that counts as progress.
	MinImprovement float64
}

// DefaultConfig returns a budget of 1000 iterations, a check every 10,
// tolerance 1e-9 and stall detection off.
func DefaultConfig() Config {
	return Config{
		MaxIterations:  1000,
		CheckInterval:  10,
		Tolerance:      1e-9,
		Patience:       0,
		MinImprovement: 1e-3,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.MaxIterations < 1:
		return fmt.Errorf("MaxIterations=%d: %w", c.MaxIterations, ErrBadConfig)
	case c.CheckInterval < 1:
		return fmt.Errorf("CheckInterval=%d: %w", c.CheckInterval, ErrBadConfig)
	case !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0):
		return fmt.Errorf("Tolerance=%g: %w", c.Tolerance, ErrBadConfig)
	case c.Patience < 0:
		return fmt.Errorf("Patience=%d: %w", c.Patience, ErrBadConfig)
	case c.Patience > 0 && (!(c.MinImprovement >= 0) || math.IsInf(c.MinImprovement, 0)):
		return fmt.Errorf("MinImprovement=%g: %w", c.MinImprovement, ErrBadConfig)
	}

	return nil
}

// Monitor tracks one solve. It is not safe for concurrent use.
type Monitor struct {
	cfg     Config
	log     zerolog.Logger
	status  Status
	iter    int
	last    float64
	best    float64 // last error that counted as progress
	stale   int
	history []float64
}

// New returns a Monitor in the Initialized state.
func New(cfg Config, log zerolog.Logger) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Monitor{
		cfg:    cfg,
		log:    log,
		status: Initialized,
		last:   math.NaN(),
		best:   math.Inf(1),
	}, nil
}

// Next advances to the next iteration. It returns false once the monitor is
// terminal; running out of budget turns an Iterating monitor into
// MaxIterationsReached.
func (m *Monitor) Next() bool {
	if m.status.Terminal() {
		return false
	}
	if m.iter >= m.cfg.MaxIterations {
		m.finish(MaxIterationsReached)
		return false
	}
	m.iter++
	m.status = Iterating

	return true
}

// Due reports whether the current iteration is a scheduled error check.
func (m *Monitor) Due() bool {
	if m.status != Iterating {
		return false
	}

	return m.iter%m.cfg.CheckInterval == 0 || m.iter == m.cfg.MaxIterations
}

// Observe records the error of the current iterate and returns the new status.
func (m *Monitor) Observe(err float64) Status {
	if m.status.Terminal() {
		return m.status
	}
	m.last = err
	m.history = append(m.history, err)
	m.log.Debug().Int("iteration", m.iter).Float64("error", err).Msg("convergence check")

	switch {
	case math.IsNaN(err) || math.IsInf(err, 0):
		m.finish(NumericalInstability)
	case err <= m.cfg.Tolerance:
		m.finish(Converged)
	case m.cfg.Patience > 0:
		m.trackStall(err)
	}

	return m.status
}

// trackStall counts consecutive checks without relative improvement.
func (m *Monitor) trackStall(err float64) {
	if math.IsInf(m.best, 1) || (m.best-err)/m.best >= m.cfg.MinImprovement {
		m.best = err
		m.stale = 0
		return
	}
	m.stale++
	if m.stale >= m.cfg.Patience {
		m.finish(Stalled)
	}
}

// Unstable marks the solve as NumericalInstability.
func (m *Monitor) Unstable() {
	if m.status.Terminal() {
		return
	}
	m.finish(NumericalInstability)
}

func (m *Monitor) finish(s Status) {
	m.status = s
	ev := m.log.Debug()
	if s == NumericalInstability {
		ev = m.log.Warn()
	}
	ev.Str("status", s.String()).Int("iterations", m.iter).Float64("error", m.last).Msg("solve finished")
}

// Status returns the current state.
func (m *Monitor) Status() Status { return m.status }

// Iterations returns the number of iterations started so far.
func (m *Monitor) Iterations() int { return m.iter }

// LastError returns the most recent observed error (NaN before the first check).
func (m *Monitor) LastError() float64 { return m.last }

// History returns a copy of all observed errors, oldest first.
func (m *Monitor) History() []float64 {
	out := make([]float64, len(m.history))
	copy(out, m.history)

	return out
}

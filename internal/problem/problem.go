// SPDX-License-Identifier: MIT

package problem

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/lvlot/distance"
	"github.com/katalvlaran/lvlot/matrix"
)

var (
	// ErrNoCost: neither a cost matrix nor both point clouds are present.
	ErrNoCost = errors.New("problem: no cost matrix or point clouds")

	// ErrAmbiguousCost: a cost matrix and point clouds are both present.
	ErrAmbiguousCost = errors.New("problem: both cost matrix and point clouds given")

	// ErrUnknownFormat: the file extension or format name is not supported.
	ErrUnknownFormat = errors.New("problem: unknown file format")

	// ErrBadNormalize: the normalize field is not "", "none" or "max".
	ErrBadNormalize = errors.New("problem: unknown normalization")

	// ErrBadSolver: a [solver] value is negative or not finite.
	ErrBadSolver = errors.New("problem: invalid solver setting")
)

// Problem is one transport instance as stored in a file.
type Problem struct {
	// Source and Target are the mass vectors a and b; empty means uniform.
	Source []float64 `toml:"source,omitempty" yaml:"source,omitempty" json:"source,omitempty"`
	Target []float64 `toml:"target,omitempty" yaml:"target,omitempty" json:"target,omitempty"`

	// Cost is an explicit n×m matrix. Mutually exclusive with the point clouds.
	Cost [][]float64 `toml:"cost,omitempty" yaml:"cost,omitempty" json:"cost,omitempty"`

	SourcePoints [][]float64 `toml:"source_points,omitempty" yaml:"source_points,omitempty" json:"source_points,omitempty"`
	TargetPoints [][]float64 `toml:"target_points,omitempty" yaml:"target_points,omitempty" json:"target_points,omitempty"`

	// Metric names a distance metric (see distance.Lookup) (default "sqeuclidean").
	Metric string `toml:"metric,omitempty" yaml:"metric,omitempty" json:"metric,omitempty"`

	// Normalize is "", "none" or "max".
	Normalize string `toml:"normalize,omitempty" yaml:"normalize,omitempty" json:"normalize,omitempty"`

	Solver Solver `toml:"solver,omitempty" yaml:"solver,omitempty" json:"solver,omitempty"`
}

// Solver carries solver settings stored with the problem. Zero values mean
// "use the command-line default".
type Solver struct {
	Method              string  `toml:"method,omitempty" yaml:"method,omitempty" json:"method,omitempty"`
	Reg                 float64 `toml:"reg,omitempty" yaml:"reg,omitempty" json:"reg,omitempty"`
	Weight              float64 `toml:"weight,omitempty" yaml:"weight,omitempty" json:"weight,omitempty"`
	MaxIterations       int     `toml:"max_iterations,omitempty" yaml:"max_iterations,omitempty" json:"max_iterations,omitempty"`
	Tolerance           float64 `toml:"tolerance,omitempty" yaml:"tolerance,omitempty" json:"tolerance,omitempty"`
	CheckInterval       int     `toml:"check_interval,omitempty" yaml:"check_interval,omitempty" json:"check_interval,omitempty"`
	AbsorptionThreshold float64 `toml:"absorption_threshold,omitempty" yaml:"absorption_threshold,omitempty" json:"absorption_threshold,omitempty"`
	Workers             int     `toml:"workers,omitempty" yaml:"workers,omitempty" json:"workers,omitempty"`
	TieBreak            string  `toml:"tie_break,omitempty" yaml:"tie_break,omitempty" json:"tie_break,omitempty"`
}

// Validate rejects settings that cannot mean "unset": negative or non-finite
// numbers. Range checks beyond the sign belong to the solvers.
func (s Solver) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"reg", s.Reg},
		{"weight", s.Weight},
		{"tolerance", s.Tolerance},
		{"absorption_threshold", s.AbsorptionThreshold},
	} {
		if !(f.v >= 0) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%g: %w", f.name, f.v, ErrBadSolver)
		}
	}
	for _, f := range []struct {
		name string
		v    int
	}{
		{"max_iterations", s.MaxIterations},
		{"check_interval", s.CheckInterval},
		{"workers", s.Workers},
	} {
		if f.v < 0 {
			return fmt.Errorf("%s=%d: %w", f.name, f.v, ErrBadSolver)
		}
	}

	return nil
}

// usesPoints reports whether the cost comes from point clouds.
func (p *Problem) usesPoints() bool {
	return len(p.SourcePoints) > 0 || len(p.TargetPoints) > 0
}

// Validate checks the structure of p. Numeric contracts (signs, balance,
// finiteness) are left to the solvers, which report them with their own
// sentinels.
func (p *Problem) Validate() error {
	switch {
	case len(p.Cost) > 0 && p.usesPoints():
		return ErrAmbiguousCost
	case len(p.Cost) == 0 && (len(p.SourcePoints) == 0 || len(p.TargetPoints) == 0):
		return ErrNoCost
	}
	if _, err := p.normalization(); err != nil {
		return err
	}
	if err := p.Solver.Validate(); err != nil {
		return err
	}
	if p.usesPoints() {
		if _, err := distance.Lookup(p.metricName()); err != nil {
			return fmt.Errorf("problem: %w", err)
		}
	}

	return nil
}

// Resolve validates p and returns copies of the masses and the cost matrix,
// computing it from the point clouds when needed. workers is passed to
// distance.Pairwise.
func (p *Problem) Resolve(workers int) (a, b []float64, cost *matrix.Dense, err error) {
	if err = p.Validate(); err != nil {
		return nil, nil, nil, err
	}
	norm, _ := p.normalization()

	if p.usesPoints() {
		cost, err = distance.Pairwise(p.SourcePoints, p.TargetPoints,
			distance.WithNamed(p.metricName()),
			distance.WithWorkers(workers),
			distance.WithNormalization(norm))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("problem: cost from points: %w", err)
		}
	} else {
		if cost, err = matrix.NewDenseFrom(p.Cost); err != nil {
			return nil, nil, nil, fmt.Errorf("problem: cost: %w", err)
		}
		if norm == distance.NormMax {
			if cost, err = matrix.NormalizeMax(cost); err != nil {
				return nil, nil, nil, fmt.Errorf("problem: normalize cost: %w", err)
			}
		}
	}

	a = append([]float64(nil), p.Source...)
	b = append([]float64(nil), p.Target...)

	return a, b, cost, nil
}

func (p *Problem) metricName() string {
	if strings.TrimSpace(p.Metric) == "" {
		return "sqeuclidean"
	}

	return p.Metric
}

func (p *Problem) normalization() (distance.Normalization, error) {
	switch strings.ToLower(strings.TrimSpace(p.Normalize)) {
	case "", "none":
		return distance.NormNone, nil
	case "max":
		return distance.NormMax, nil
	}

	return 0, fmt.Errorf("%q: %w", p.Normalize, ErrBadNormalize)
}

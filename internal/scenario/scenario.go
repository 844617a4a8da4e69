// Package scenario loads 2-D planning problems from YAML and solves them
// with qpath.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/qpath"
	"github.com/pdrpinto/qpath/astar"
	"github.com/pdrpinto/qpath/quantize"
)

// ErrInvalid is returned for scenarios that cannot be searched.
var ErrInvalid = errors.New("scenario: invalid")

// Point is a continuous position.
type Point = [2]quantize.F64

// Range is a closed interval written as [min, max].
type Range [2]float64

func (r Range) contains(x float64) bool { return x >= r[0] && x <= r[1] }

// Blockade is an axis-aligned box no path may enter.
type Blockade struct {
	X Range `yaml:"x"`
	Y Range `yaml:"y"`
}

// Contains reports whether p lies inside the box, edges included.
func (b Blockade) Contains(p Point) bool {
	return b.X.contains(float64(p[0])) && b.Y.contains(float64(p[1]))
}

// Scenario describes a grid, its obstacles and the endpoints of a search.
// Exactly one of Levels and Step is set.
type Scenario struct {
	Lo        [2]float64 `yaml:"lo"`
	Hi        [2]float64 `yaml:"hi"`
	Levels    [2]uint    `yaml:"levels,omitempty"`
	Step      [2]float64 `yaml:"step,omitempty"`
	Start     [2]float64 `yaml:"start"`
	Goal      [2]float64 `yaml:"goal"`
	Diagonal  bool       `yaml:"diagonal,omitempty"`
	Blockades []Blockade `yaml:"blockades,omitempty"`

	q quantize.Quantizer2F64
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario from r. Unknown fields are rejected.
func Parse(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := s.init(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scenario) init() error {
	hasLevels := s.Levels != [2]uint{}
	hasStep := s.Step != [2]float64{}
	switch {
	case hasLevels == hasStep:
		return fmt.Errorf("%w: exactly one of levels and step must be set", ErrInvalid)
	case s.Hi[0] < s.Lo[0] || s.Hi[1] < s.Lo[1]:
		return fmt.Errorf("%w: hi %v below lo %v", ErrInvalid, s.Hi, s.Lo)
	}
	for i, b := range s.Blockades {
		if b.X[1] < b.X[0] || b.Y[1] < b.Y[0] {
			return fmt.Errorf("%w: blockade %d has an empty range", ErrInvalid, i)
		}
	}

	lo, hi := point(s.Lo), point(s.Hi)
	if hasLevels {
		s.q = quantize.NewQuantizer2(lo, hi, s.Levels)
	} else {
		s.q = quantize.NewQuantizer2WithStep(lo, hi, point(s.Step))
	}

	for name, p := range map[string][2]float64{"start": s.Start, "goal": s.Goal} {
		n := s.q.Quantize(point(p))
		if !s.inBounds(p) || !s.q.Valid(n) {
			return fmt.Errorf("%w: %s %v is outside the grid", ErrInvalid, name, p)
		}
		if s.blocked(s.q.Dequantize(n)) {
			return fmt.Errorf("%w: %s %v is inside a blockade", ErrInvalid, name, p)
		}
	}
	return nil
}

// inBounds reports whether p lies within [Lo, Hi] on both axes.
func (s *Scenario) inBounds(p [2]float64) bool {
	for i := range p {
		if p[i] < s.Lo[i] || p[i] > s.Hi[i] {
			return false
		}
	}
	return true
}

func point(p [2]float64) Point { return Point{quantize.F64(p[0]), quantize.F64(p[1])} }

// Quantizer returns the grid the scenario is searched on.
func (s *Scenario) Quantizer() quantize.Quantizer2F64 { return s.q }

// GoalCell returns the grid cell of the goal.
func (s *Scenario) GoalCell() [2]uint { return s.q.Quantize(point(s.Goal)) }

// StartCell returns the grid cell of the start.
func (s *Scenario) StartCell() [2]uint { return s.q.Quantize(point(s.Start)) }

func (s *Scenario) blocked(p Point) bool {
	for _, b := range s.Blockades {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// Blocked lists the grid cells whose position lies inside a blockade.
func (s *Scenario) Blocked() [][2]uint {
	var cells [][2]uint
	levels := s.q.Levels()
	for x := uint(0); x < levels[0]; x++ {
		for y := uint(0); y < levels[1]; y++ {
			if s.blocked(s.q.Dequantize([2]uint{x, y})) {
				cells = append(cells, [2]uint{x, y})
			}
		}
	}
	return cells
}

var (
	straight = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonal = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Successors returns unit-cost moves to neighboring cells that are on the
// grid and outside every blockade.
func (s *Scenario) Successors(p Point) []qpath.Successor[Point, uint32] {
	n := s.q.Quantize(p)
	levels := s.q.Levels()
	dirs := straight
	if s.Diagonal {
		dirs = append(dirs[:len(dirs):len(dirs)], diagonal...)
	}
	out := make([]qpath.Successor[Point, uint32], 0, len(dirs))
	for _, d := range dirs {
		x, y := int(n[0])+d[0], int(n[1])+d[1]
		if x < 0 || y < 0 || x >= int(levels[0]) || y >= int(levels[1]) {
			continue
		}
		next := s.q.Dequantize([2]uint{uint(x), uint(y)})
		if s.blocked(next) {
			continue
		}
		out = append(out, qpath.Successor[Point, uint32]{Point: next, Cost: 1})
	}
	return out
}

// Heuristic is the grid distance to the goal: Chebyshev when diagonal moves
// are allowed, Manhattan otherwise.
func (s *Scenario) Heuristic(p Point) uint32 {
	n, g := s.q.Quantize(p), s.GoalCell()
	dx, dy := absDiff(n[0], g[0]), absDiff(n[1], g[1])
	if s.Diagonal {
		return uint32(max(dx, dy))
	}
	return uint32(dx + dy)
}

// Reached reports whether p is in the goal cell.
func (s *Scenario) Reached(p Point) bool { return s.q.Quantize(p) == s.GoalCell() }

func absDiff(a, b uint) uint {
	if a > b {
		return a - b
	}
	return b - a
}

// Solve searches from start to goal.
func (s *Scenario) Solve(ctx context.Context, options ...astar.Option) (qpath.Route[Point, uint32], error) {
	return qpath.Search(ctx, s.q, point(s.Start), s.Successors, s.Heuristic, s.Reached, options...)
}

// NewStepper prepares a step-by-step search from start to goal.
func (s *Scenario) NewStepper(ctx context.Context, options ...astar.Option) *qpath.Stepper[Point, [2]uint, uint32] {
	return qpath.NewStepper(ctx, s.q, point(s.Start), s.Successors, s.Heuristic, s.Reached, options...)
}

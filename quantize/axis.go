package quantize

import (
	"fmt"
	"math"
)

// Rounding selects how a normalised offset becomes a grid index.
type Rounding int

const (
	// Nearest rounds to the closest level, halves away from zero.
	Nearest Rounding = iota
	// Truncate drops the fractional part, like a float to integer cast.
	Truncate
)

func (r Rounding) String() string {
	switch r {
	case Nearest:
		return "nearest"
	case Truncate:
		return "truncate"
	default:
		return fmt.Sprintf("Rounding(%d)", int(r))
	}
}

// Axis maps the closed range [Lo, Hi] onto the indices 0..Levels-1 and back.
//
// Inputs outside [Lo, Hi] are not rejected: they produce indices outside
// [0, Levels), and offsets below Lo saturate to index 0. Callers that need
// a bounded result use QuantizeClamped.
//
// An Axis is an immutable value and is safe for concurrent use.
type Axis[T Scalar[T]] struct {
	lo     T
	hi     T
	levels uint
	step   T
}

// NewAxis builds an axis with the given number of levels, both endpoints
// included. The step is (hi-lo)/(levels-1). With fewer than two levels the
// axis is degenerate: the step is zero and every value quantizes to 0.
func NewAxis[T Scalar[T]](lo, hi T, levels uint) Axis[T] {
	if levels == 0 {
		levels = 1
	}
	step := lo.FromIndex(0)
	if levels > 1 {
		step = hi.Sub(lo).Div(lo.FromIndex(levels - 1))
	}
	return Axis[T]{lo: lo, hi: hi, levels: levels, step: step}
}

// NewAxisWithStep builds an axis with a fixed step. The level count is
// round((hi-lo)/step)+1, so when step does not divide the range the last
// level need not coincide with hi. A zero step gives a degenerate axis.
func NewAxisWithStep[T Scalar[T]](lo, hi, step T) Axis[T] {
	levels := uint(1)
	if !step.IsZero() {
		n := hi.Sub(lo).Div(step).Round().ToIndex()
		if n < math.MaxUint {
			n++
		}
		levels = n
	}
	return Axis[T]{lo: lo, hi: hi, levels: levels, step: step}
}

// Lo returns the lower bound.
func (a Axis[T]) Lo() T { return a.lo }

// Hi returns the upper bound.
func (a Axis[T]) Hi() T { return a.hi }

// Levels returns the number of grid positions.
func (a Axis[T]) Levels() uint { return a.levels }

// Step returns the distance between adjacent levels.
func (a Axis[T]) Step() T { return a.step }

// Degenerate reports whether the axis has a zero step.
func (a Axis[T]) Degenerate() bool { return a.step.IsZero() }

// Valid reports whether n is one of the axis levels.
func (a Axis[T]) Valid(n uint) bool { return n < a.levels }

// Quantize returns the index of the level nearest to x.
func (a Axis[T]) Quantize(x T) uint { return a.QuantizeWith(x, Nearest) }

// QuantizeTrunc returns the index of the last level at or below x.
// It is one less than Quantize whenever the fractional offset is >= 0.5.
func (a Axis[T]) QuantizeTrunc(x T) uint { return a.QuantizeWith(x, Truncate) }

// QuantizeWith quantizes x using the given rounding.
func (a Axis[T]) QuantizeWith(x T, r Rounding) uint {
	if a.step.IsZero() {
		return 0
	}
	offset := x.Sub(a.lo).Div(a.step)
	if r == Nearest {
		offset = offset.Round()
	}
	return offset.ToIndex()
}

// QuantizeClamped is Quantize with the result limited to [0, Levels).
func (a Axis[T]) QuantizeClamped(x T) uint {
	return min(a.Quantize(x), a.levels-1)
}

// Dequantize returns lo + n*step.
func (a Axis[T]) Dequantize(n uint) T {
	return a.lo.Add(a.lo.FromIndex(n).Mul(a.step))
}

func (a Axis[T]) String() string {
	return fmt.Sprintf("[%v, %v]/%d step %v", a.lo, a.hi, a.levels, a.step)
}

package quantize

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDimensionMismatch is returned when per-axis parameter slices differ in length.
var ErrDimensionMismatch = errors.New("quantize: dimension mismatch")

// Vector quantizes points axis by axis. Axes are independent: each has its
// own bounds and level count, and no normalisation happens across them.
//
// A Vector never mutates its axes after construction, so copies may be
// shared between goroutines.
type Vector[T Scalar[T]] struct {
	axes []Axis[T]
}

// NewVector composes a vector quantizer from axes, one per dimension.
func NewVector[T Scalar[T]](axes ...Axis[T]) Vector[T] {
	return Vector[T]{axes: append([]Axis[T](nil), axes...)}
}

// NewVectorWithLevels builds one NewAxis per dimension from parallel slices.
func NewVectorWithLevels[T Scalar[T]](lo, hi []T, levels []uint) (Vector[T], error) {
	if len(lo) != len(hi) || len(lo) != len(levels) {
		return Vector[T]{}, fmt.Errorf("%w: lo=%d hi=%d levels=%d", ErrDimensionMismatch, len(lo), len(hi), len(levels))
	}
	axes := make([]Axis[T], len(lo))
	for i := range axes {
		axes[i] = NewAxis(lo[i], hi[i], levels[i])
	}
	return Vector[T]{axes: axes}, nil
}

// NewVectorWithSteps builds one NewAxisWithStep per dimension from parallel slices.
func NewVectorWithSteps[T Scalar[T]](lo, hi, steps []T) (Vector[T], error) {
	if len(lo) != len(hi) || len(lo) != len(steps) {
		return Vector[T]{}, fmt.Errorf("%w: lo=%d hi=%d steps=%d", ErrDimensionMismatch, len(lo), len(hi), len(steps))
	}
	axes := make([]Axis[T], len(lo))
	for i := range axes {
		axes[i] = NewAxisWithStep(lo[i], hi[i], steps[i])
	}
	return Vector[T]{axes: axes}, nil
}

// Dim returns the number of axes.
func (v Vector[T]) Dim() int { return len(v.axes) }

// Axis returns the quantizer of dimension i.
func (v Vector[T]) Axis(i int) Axis[T] { return v.axes[i] }

// Quantize maps p to the nearest grid indices. It panics if p has fewer
// than Dim elements.
func (v Vector[T]) Quantize(p []T) []uint {
	out := make([]uint, len(v.axes))
	quantizeInto(v.axes, out, p, Nearest)
	return out
}

// QuantizeTrunc maps p to grid indices by truncation.
func (v Vector[T]) QuantizeTrunc(p []T) []uint {
	out := make([]uint, len(v.axes))
	quantizeInto(v.axes, out, p, Truncate)
	return out
}

// QuantizeClamped is Quantize with every index limited to its axis levels.
func (v Vector[T]) QuantizeClamped(p []T) []uint {
	out := make([]uint, len(v.axes))
	clampInto(v.axes, out, p)
	return out
}

// Dequantize maps grid indices back to coordinates. It panics if n has
// fewer than Dim elements.
func (v Vector[T]) Dequantize(n []uint) []T {
	out := make([]T, len(v.axes))
	dequantizeInto(v.axes, out, n)
	return out
}

// Valid reports whether every index lies within its axis.
func (v Vector[T]) Valid(n []uint) bool { return validAll(v.axes, n) }

// Packed returns a view of v keyed by Cell, for use where grid nodes must be
// comparable.
func (v Vector[T]) Packed() Packed[T] { return Packed[T]{v: v} }

func (v Vector[T]) String() string {
	parts := make([]string, len(v.axes))
	for i, a := range v.axes {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, " x ") + ")"
}

// Packed quantizes points of a Vector to Cells.
type Packed[T Scalar[T]] struct {
	v Vector[T]
}

// Quantize returns the Cell nearest to p.
func (p Packed[T]) Quantize(pt []T) Cell { return PackCell(p.v.Quantize(pt)...) }

// Dequantize returns the coordinates of c, or nil when c is malformed or
// has a dimension other than the Vector's.
func (p Packed[T]) Dequantize(c Cell) []T {
	n := c.Indices()
	if len(n) != p.v.Dim() {
		return nil
	}
	return p.v.Dequantize(n)
}

// Vector returns the underlying quantizer.
func (p Packed[T]) Vector() Vector[T] { return p.v }

// The helpers below are shared by Vector, Quantizer2 and Quantizer3 so the
// element-wise logic exists once.

func quantizeInto[T Scalar[T]](axes []Axis[T], dst []uint, p []T, r Rounding) {
	for i, a := range axes {
		dst[i] = a.QuantizeWith(p[i], r)
	}
}

func clampInto[T Scalar[T]](axes []Axis[T], dst []uint, p []T) {
	for i, a := range axes {
		dst[i] = a.QuantizeClamped(p[i])
	}
}

func dequantizeInto[T Scalar[T]](axes []Axis[T], dst []T, n []uint) {
	for i, a := range axes {
		dst[i] = a.Dequantize(n[i])
	}
}

func validAll[T Scalar[T]](axes []Axis[T], n []uint) bool {
	if len(n) != len(axes) {
		return false
	}
	for i, a := range axes {
		if !a.Valid(n[i]) {
			return false
		}
	}
	return true
}

package quantize

import (
	"math"

	"github.com/x448/float16"
)

// Scalar is the arithmetic a coordinate type must provide to be quantized.
// Implementations are plain values: every method returns a new value and
// never mutates the receiver.
//
// FromIndex is called on an arbitrary value of T (usually the zero value)
// and must ignore the receiver.
type Scalar[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T

	// Round rounds to the nearest integral value, halves away from zero.
	Round() T

	// FromIndex converts a grid index to T.
	FromIndex(n uint) T
	// ToIndex truncates toward zero. Negative values and NaN give 0,
	// values too large for uint give math.MaxUint.
	ToIndex() uint

	IsZero() bool
}

// maxIndex is math.MaxUint as a float64. On 64-bit platforms it rounds up
// to 2^64, so any float at or above it does not fit in a uint.
var maxIndex = float64(math.MaxUint)

func truncIndex(f float64) uint {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= maxIndex:
		return math.MaxUint
	}
	return uint(f)
}

// F64 is a float64 coordinate.
type F64 float64

func (f F64) Add(o F64) F64      { return f + o }
func (f F64) Sub(o F64) F64      { return f - o }
func (f F64) Mul(o F64) F64      { return f * o }
func (f F64) Div(o F64) F64      { return f / o }
func (f F64) Round() F64         { return F64(math.Round(float64(f))) }
func (F64) FromIndex(n uint) F64 { return F64(n) }
func (f F64) ToIndex() uint      { return truncIndex(float64(f)) }
func (f F64) IsZero() bool       { return f == 0 }

// F32 is a float32 coordinate. Rounding goes through float64, which is exact
// for every float32.
type F32 float32

func (f F32) Add(o F32) F32      { return f + o }
func (f F32) Sub(o F32) F32      { return f - o }
func (f F32) Mul(o F32) F32      { return f * o }
func (f F32) Div(o F32) F32      { return f / o }
func (f F32) Round() F32         { return F32(math.Round(float64(f))) }
func (F32) FromIndex(n uint) F32 { return F32(n) }
func (f F32) ToIndex() uint      { return truncIndex(float64(f)) }
func (f F32) IsZero() bool       { return f == 0 }

// F16 is an IEEE 754 half precision coordinate. Each operation is computed in
// float32 and rounded back to half precision, so results carry roughly three
// significant decimal digits. Indices above 2048 are not exactly representable.
type F16 float16.Float16

// NewF16 converts f to the nearest half precision value.
func NewF16(f float32) F16 { return F16(float16.Fromfloat32(f)) }

// Float32 returns f widened to float32.
func (f F16) Float32() float32 { return float16.Float16(f).Float32() }

func (f F16) String() string { return float16.Float16(f).String() }

func (f F16) Add(o F16) F16      { return NewF16(f.Float32() + o.Float32()) }
func (f F16) Sub(o F16) F16      { return NewF16(f.Float32() - o.Float32()) }
func (f F16) Mul(o F16) F16      { return NewF16(f.Float32() * o.Float32()) }
func (f F16) Div(o F16) F16      { return NewF16(f.Float32() / o.Float32()) }
func (f F16) Round() F16         { return NewF16(float32(math.Round(float64(f.Float32())))) }
func (F16) FromIndex(n uint) F16 { return NewF16(float32(n)) }
func (f F16) ToIndex() uint      { return truncIndex(float64(f.Float32())) }
func (f F16) IsZero() bool       { return f.Float32() == 0 }

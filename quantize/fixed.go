package quantize

// Quantizer2 is a two-dimensional Vector over fixed-size arrays. Its
// indices are arrays, so they can key maps directly.
type Quantizer2[T Scalar[T]] struct {
	axes [2]Axis[T]
}

// NewQuantizer2 builds a 2-D quantizer from per-axis level counts.
func NewQuantizer2[T Scalar[T]](lo, hi [2]T, levels [2]uint) Quantizer2[T] {
	return Quantizer2[T]{axes: [2]Axis[T]{
		NewAxis(lo[0], hi[0], levels[0]),
		NewAxis(lo[1], hi[1], levels[1]),
	}}
}

// NewQuantizer2WithStep builds a 2-D quantizer from per-axis step sizes.
func NewQuantizer2WithStep[T Scalar[T]](lo, hi, step [2]T) Quantizer2[T] {
	return Quantizer2[T]{axes: [2]Axis[T]{
		NewAxisWithStep(lo[0], hi[0], step[0]),
		NewAxisWithStep(lo[1], hi[1], step[1]),
	}}
}

func (q Quantizer2[T]) Axis(i int) Axis[T] { return q.axes[i] }
func (q Quantizer2[T]) Levels() [2]uint    { return [2]uint{q.axes[0].levels, q.axes[1].levels} }
func (q Quantizer2[T]) Vector() Vector[T]  { return NewVector(q.axes[:]...) }
func (q Quantizer2[T]) Valid(n [2]uint) bool {
	return validAll(q.axes[:], n[:])
}

func (q Quantizer2[T]) Quantize(p [2]T) (n [2]uint) {
	quantizeInto(q.axes[:], n[:], p[:], Nearest)
	return n
}

func (q Quantizer2[T]) QuantizeTrunc(p [2]T) (n [2]uint) {
	quantizeInto(q.axes[:], n[:], p[:], Truncate)
	return n
}

func (q Quantizer2[T]) QuantizeClamped(p [2]T) (n [2]uint) {
	clampInto(q.axes[:], n[:], p[:])
	return n
}

func (q Quantizer2[T]) Dequantize(n [2]uint) (p [2]T) {
	dequantizeInto(q.axes[:], p[:], n[:])
	return p
}

// Quantizer3 is the three-dimensional counterpart of Quantizer2.
type Quantizer3[T Scalar[T]] struct {
	axes [3]Axis[T]
}

// NewQuantizer3 builds a 3-D quantizer from per-axis level counts.
func NewQuantizer3[T Scalar[T]](lo, hi [3]T, levels [3]uint) Quantizer3[T] {
	return Quantizer3[T]{axes: [3]Axis[T]{
		NewAxis(lo[0], hi[0], levels[0]),
		NewAxis(lo[1], hi[1], levels[1]),
		NewAxis(lo[2], hi[2], levels[2]),
	}}
}

// NewQuantizer3WithStep builds a 3-D quantizer from per-axis step sizes.
func NewQuantizer3WithStep[T Scalar[T]](lo, hi, step [3]T) Quantizer3[T] {
	return Quantizer3[T]{axes: [3]Axis[T]{
		NewAxisWithStep(lo[0], hi[0], step[0]),
		NewAxisWithStep(lo[1], hi[1], step[1]),
		NewAxisWithStep(lo[2], hi[2], step[2]),
	}}
}

func (q Quantizer3[T]) Axis(i int) Axis[T] { return q.axes[i] }
func (q Quantizer3[T]) Vector() Vector[T]  { return NewVector(q.axes[:]...) }
func (q Quantizer3[T]) Levels() [3]uint {
	return [3]uint{q.axes[0].levels, q.axes[1].levels, q.axes[2].levels}
}
func (q Quantizer3[T]) Valid(n [3]uint) bool {
	return validAll(q.axes[:], n[:])
}

func (q Quantizer3[T]) Quantize(p [3]T) (n [3]uint) {
	quantizeInto(q.axes[:], n[:], p[:], Nearest)
	return n
}

func (q Quantizer3[T]) QuantizeTrunc(p [3]T) (n [3]uint) {
	quantizeInto(q.axes[:], n[:], p[:], Truncate)
	return n
}

func (q Quantizer3[T]) QuantizeClamped(p [3]T) (n [3]uint) {
	clampInto(q.axes[:], n[:], p[:])
	return n
}

func (q Quantizer3[T]) Dequantize(n [3]uint) (p [3]T) {
	dequantizeInto(q.axes[:], p[:], n[:])
	return p
}

// Convenience aliases for the built-in scalars.
type (
	Quantizer2F32 = Quantizer2[F32]
	Quantizer2F64 = Quantizer2[F64]
	Quantizer3F32 = Quantizer3[F32]
	Quantizer3F64 = Quantizer3[F64]
)

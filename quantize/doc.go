// Package quantize maps continuous coordinates onto integer grid indices and back.
//
// An Axis covers one closed range [lo, hi] with a fixed number of evenly
// spaced levels. A Vector composes independent axes, one per dimension;
// Quantizer2 and Quantizer3 are the same composition over fixed-size arrays.
//
// Quantizers are generic over the coordinate type through the Scalar
// constraint. F32, F64 and F16 are provided; any value type with the same
// methods works, including fixed-point wrappers.
//
// Two rounding rules are available on every quantizer: Quantize rounds to the
// nearest level (halves away from zero) and QuantizeTrunc truncates toward
// zero. Inputs outside the configured range are not clamped unless
// QuantizeClamped is used.
package quantize

// Package qpath runs grid search over continuous coordinates.
//
// A Lattice (usually a quantize.Quantizer2, quantize.Quantizer3 or the
// Packed view of a quantize.Vector) converts between continuous points and
// comparable grid nodes. Search quantizes the start point, wraps the
// caller's continuous successor, heuristic and goal callbacks so they run on
// dequantized nodes, delegates to astar.Search, and dequantizes the path it
// returns. Costs pass through untouched: the grid only affects positions.
//
// SearchGrid is the variant for callers who already work in grid indices;
// only the start point and the resulting path are converted.
//
// Points outside the quantizer bounds are not clamped. Successors that
// step outside the grid produce nodes the search treats like any other, so
// callbacks should bound their moves, or the search should be limited with
// astar.WithMaxExpansions.
package qpath

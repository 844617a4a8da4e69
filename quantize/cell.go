package quantize

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// Cell is a comparable encoding of a grid index vector of any dimension.
// Two Cells are equal exactly when their index vectors are equal.
type Cell string

// PackCell encodes indices as a Cell.
func PackCell(indices ...uint) Cell {
	buf := make([]byte, 0, len(indices)*2)
	for _, n := range indices {
		buf = binary.AppendUvarint(buf, uint64(n))
	}
	return Cell(buf)
}

// Indices decodes c. It returns nil for a malformed Cell.
func (c Cell) Indices() []uint {
	var out []uint
	b := []byte(c)
	for len(b) > 0 {
		n, k := binary.Uvarint(b)
		if k <= 0 {
			return nil
		}
		out = append(out, uint(n))
		b = b[k:]
	}
	return out
}

// Dim returns the number of indices in c.
func (c Cell) Dim() int { return len(c.Indices()) }

func (c Cell) String() string {
	idx := c.Indices()
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	return "<" + strings.Join(parts, ",") + ">"
}

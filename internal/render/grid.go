package render

// Cell is one character position: a CP437 glyph and two palette indices.
type Cell struct {
	Glyph byte
	FG    uint8
	BG    uint8
}

// CellBuffer is the text-mode frame the HUD and scanner draw into. Cells are
// stored row-major.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// blank is an empty cell: a space, white on black.
var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// NewCellBuffer allocates a cols x rows buffer of blank cells.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

func (b *CellBuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= b.Cols || y < 0 || y >= b.Rows {
		return 0, false
	}
	return y*b.Cols + x, true
}

// Set writes one cell. Writes outside the buffer are dropped.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if i, ok := b.index(x, y); ok {
		b.Cells[i] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads one cell. Reads outside the buffer return the zero Cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if i, ok := b.index(x, y); ok {
		return b.Cells[i]
	}
	return Cell{}
}

// Clear blanks every cell.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// WriteString writes a string starting at (x, y). Each rune occupies one
// cell; runes outside CP437 become '?'. Returns the number of cells used.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) int {
	offset := 0
	for _, ch := range s {
		b.Set(x+offset, y, ToCP437(ch), fg, bg)
		offset++
	}
	return offset
}

// Text reads row y from x for n cells back as a string. Used by tests and
// the hover readout.
func (b *CellBuffer) Text(x, y, n int) string {
	out := make([]rune, 0, n)
	for i := range n {
		out = append(out, CP437ToUnicode[b.Get(x+i, y).Glyph])
	}
	return string(out)
}

// Box draws a single-line frame with its top-left corner at (x, y).
func (b *CellBuffer) Box(x, y, w, h int, fg uint8) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		b.Set(x+i, y, 196, fg, ColorBlack)     // ─
		b.Set(x+i, y+h-1, 196, fg, ColorBlack) // ─
	}
	for j := 1; j < h-1; j++ {
		b.Set(x, y+j, 179, fg, ColorBlack)     // │
		b.Set(x+w-1, y+j, 179, fg, ColorBlack) // │
	}
	b.Set(x, y, 218, fg, ColorBlack)         // ┌
	b.Set(x+w-1, y, 191, fg, ColorBlack)     // ┐
	b.Set(x, y+h-1, 192, fg, ColorBlack)     // └
	b.Set(x+w-1, y+h-1, 217, fg, ColorBlack) // ┘
}

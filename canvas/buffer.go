package canvas

// Buffer is a bounds-checked 2D grid of cells used for bulk redraws.
// Items stamp into it and the whole grid is flushed to the surface in
// one pass, instead of one cursor reposition per cell per item.
type Buffer struct {
	width  int
	height int
	lines  [][]Cell
}

// NewBuffer creates a blank buffer with every cell set to the
// transparent placeholder
func NewBuffer(width, height int) *Buffer {
	lines := make([][]Cell, height)
	for y := 0; y < height; y++ {
		lines[y] = make([]Cell, width)
		for x := 0; x < width; x++ {
			lines[y][x] = Empty
		}
	}
	return &Buffer{width: width, height: height, lines: lines}
}

// Width returns the buffer width
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height
func (b *Buffer) Height() int {
	return b.height
}

// GetCell returns the cell at the given position
func (b *Buffer) GetCell(x, y int) (Cell, bool) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{}, false
	}
	return b.lines[y][x], true
}

// SetCell sets the cell at the given position.
// Out-of-bounds positions are ignored.
func (b *Buffer) SetCell(x, y int, cell Cell) bool {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return false
	}
	b.lines[y][x] = cell
	return true
}

// Flush writes every cell to the surface in a single pass. Blank cells
// are written too, clearing whatever the previous composite left.
func (b *Buffer) Flush(s Surface) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			b.lines[y][x].Draw(s, x, y)
		}
	}
}

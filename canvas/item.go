package canvas

import (
	"github.com/gdamore/tcell/v2"
)

// Item is a named group of cells positioned relative to its owning
// layer. An item belongs to exactly one layer; moving it means
// replacing its offset, never re-parenting.
type Item struct {
	Name   string
	Offset Point
	Cells  [][]Cell // rows of columns, rectangular
}

// NewPixelItem builds the standard 1-row, 2-column solid block used for
// brush placements. Both cells carry the color as foreground and
// background so the block reads as one square "pixel" on screen.
func NewPixelItem(name string, offset Point, color tcell.Color) *Item {
	c := Cell{Rune: ' ', Fg: color, Bg: color}
	return &Item{
		Name:   name,
		Offset: offset,
		Cells:  [][]Cell{{c, c}},
	}
}

// Draw stamps the item's grid with its top-left at the given absolute
// position, ignoring the item's own offset.
func (it *Item) Draw(s Surface, at Point) {
	for row, cells := range it.Cells {
		for col, cell := range cells {
			cell.Draw(s, at.X+col, at.Y+row)
		}
	}
}

// Redraw stamps the item at its offset relative to the container
func (it *Item) Redraw(s Surface, container Point) {
	it.Draw(s, it.Offset.Add(container))
}

// Erase overwrites every position the item occupies with the
// transparent placeholder, clipped to the surface bounds.
func (it *Item) Erase(s Surface, container Point) {
	origin := it.Offset.Add(container)
	for row, cells := range it.Cells {
		for col := range cells {
			Empty.Draw(s, origin.X+col, origin.Y+row)
		}
	}
}

// FilledPositions returns the absolute coordinates of every
// non-transparent cell, given the owning container's offset. This is
// the basis for all hit-testing.
func (it *Item) FilledPositions(container Point) []Point {
	origin := it.Offset.Add(container)
	var filled []Point
	for row, cells := range it.Cells {
		for col, cell := range cells {
			if cell.Transparent {
				continue
			}
			filled = append(filled, Point{X: origin.X + col, Y: origin.Y + row})
		}
	}
	return filled
}

// Contains reports whether the item occupies the absolute position
func (it *Item) Contains(abs Point, container Point) bool {
	for _, p := range it.FilledPositions(container) {
		if p == abs {
			return true
		}
	}
	return false
}

// DrawToBuffer stamps the item into a shared draw buffer. Cells whose
// background does not resolve to an indexed palette color never stamp
// the buffer, so placeholders and text glyphs leave it untouched.
func (it *Item) DrawToBuffer(buf *Buffer, container Point) {
	origin := it.Offset.Add(container)
	for row, cells := range it.Cells {
		for col, cell := range cells {
			if _, ok := PaletteIndex(cell.Bg); !ok {
				continue
			}
			buf.SetCell(origin.X+col, origin.Y+row, cell)
		}
	}
}

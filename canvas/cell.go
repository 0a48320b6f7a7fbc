package canvas

import (
	"github.com/gdamore/tcell/v2"
)

// PaletteSize is the number of selectable ANSI palette colors.
const PaletteSize = 16

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Add returns the component-wise sum of two points
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Surface is the subset of tcell.Screen that compositing draws against
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// Cell is the atomic renderable unit: one character with its colors.
// A transparent cell contributes nothing to compositing; the layer
// beneath must show through wherever one sits.
type Cell struct {
	Rune        rune
	Fg          tcell.Color
	Bg          tcell.Color
	Transparent bool
}

// Empty is the fully-transparent placeholder cell used for erasure
var Empty = Cell{
	Rune:        ' ',
	Fg:          tcell.ColorDefault,
	Bg:          tcell.ColorDefault,
	Transparent: true,
}

// Style converts the cell's colors to a tcell style
func (c Cell) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Fg).Background(c.Bg)
}

// Draw stamps the cell at an absolute position, bounds-checked against
// the surface. Out-of-bounds positions are a silent no-op.
func (c Cell) Draw(s Surface, x, y int) {
	w, h := s.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s.SetContent(x, y, c.Rune, nil, c.Style())
}

// PaletteColor returns the tcell color for a palette index.
// Negative indices map to the terminal default.
func PaletteColor(index int) tcell.Color {
	if index < 0 {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(index)
}

// PaletteIndex resolves a color back to its palette index.
// Returns false for default, RGB, and out-of-palette colors.
func PaletteIndex(c tcell.Color) (int, bool) {
	for i := 0; i < PaletteSize; i++ {
		if c == tcell.PaletteColor(i) {
			return i, true
		}
	}
	return 0, false
}

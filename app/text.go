package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelterm/canvas"
	"github.com/lixenwraith/pixelterm/input"
)

// textCapture tracks an open text entry session. The caret position
// is in absolute screen coordinates.
type textCapture struct {
	caret canvas.Point
}

// openTextCapture starts a session at the pressed position, or moves
// the caret if one is already open
func (a *App) openTextCapture(p canvas.Point) {
	if a.text == nil {
		a.text = &textCapture{}
		a.machine.SetTextCapture(true)
	}
	a.text.caret = p
	a.screen.ShowCursor(p.X, p.Y)
}

// handleRune places one character item at the caret and advances it
// by one cell pair
func (a *App) handleRune(r rune) {
	if a.text == nil {
		return
	}
	background := a.canvas.Background()
	rel := background.RelativePosition(a.text.caret)

	item := &canvas.Item{
		Name:   textItemName,
		Offset: rel,
		Cells: [][]canvas.Cell{{
			{Rune: r, Fg: a.textColor(), Bg: tcell.ColorDefault},
			canvas.Empty,
		}},
	}
	background.AddItem(item)
	item.Draw(a.screen, a.text.caret)
	a.enqueueTextPlacement(rel, r)
	a.sound.Place()

	a.text.caret.X += 2
	a.screen.ShowCursor(a.text.caret.X, a.text.caret.Y)
}

// handleBackspace removes the immediately preceding item by absolute
// position and retreats the caret
func (a *App) handleBackspace() {
	if a.text == nil {
		return
	}
	background := a.canvas.Background()
	prev := canvas.Point{X: a.text.caret.X - 2, Y: a.text.caret.Y}

	if item := background.ItemAt(prev); item != nil {
		item.Erase(a.screen, background.Offset)
		background.RemoveItemsAt(item.Offset)
		a.enqueueErasure(item.Offset)
	}

	a.text.caret = prev
	a.screen.ShowCursor(prev.X, prev.Y)
}

// endTextCapture closes the session and reverts to the brush
func (a *App) endTextCapture() {
	if a.text == nil {
		return
	}
	a.text = nil
	a.machine.SetTextCapture(false)
	a.screen.HideCursor()
	a.tool = input.ToolBrush
}

// textColor picks the foreground for typed characters; black swaps to
// white like the brush glyph so text stays legible
func (a *App) textColor() tcell.Color {
	if a.active == canvas.PaletteColor(0) {
		return tcell.ColorWhite
	}
	return a.active
}

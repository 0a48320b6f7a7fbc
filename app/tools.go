package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelterm/canvas"
	"github.com/lixenwraith/pixelterm/input"
)

const (
	pixelItemName   = "pixel"
	textItemName    = "text"
	paletteItemName = "color_selection_pixels"
)

// handlePointer runs on every pointer event regardless of tool: it
// refreshes the cursor overlay, then on a press dispatches to the
// active tool.
func (a *App) handlePointer(p canvas.Point, press bool) {
	background := a.canvas.Background()

	if a.resized {
		a.resized = false
		background.Redraw(a.screen)
		a.canvas.Foreground().Redraw(a.screen)
	}

	overlayItem := a.canvas.Foreground().ItemAt(p)
	a.refreshCursorOverlay(p)

	if press {
		if overlayItem != nil {
			// Presses on overlay elements never reach the tools
			if overlayItem.Name == paletteItemName {
				a.pickSwatch(overlayItem)
			}
		} else {
			switch a.tool {
			case input.ToolBrush:
				a.brushAt(p)
			case input.ToolErase:
				a.eraseAt(p)
			case input.ToolInk:
				a.inkAt(p)
			case input.ToolMove:
				a.panBy(p.Sub(a.lastPointer))
			case input.ToolText:
				a.openTextCapture(p)
			}
		}
	}

	a.lastPointer = p
}

// brushAt places a new pixel item of the active color
func (a *App) brushAt(p canvas.Point) {
	background := a.canvas.Background()
	rel := background.RelativePosition(p)
	item := canvas.NewPixelItem(pixelItemName, rel, a.active)
	background.AddItem(item)
	item.Draw(a.screen, p)
	a.enqueuePlacement(rel, a.active)
	a.sound.Place()
}

// eraseAt removes whatever item sits under the pointer
func (a *App) eraseAt(p canvas.Point) {
	background := a.canvas.Background()
	item := background.ItemAt(p)
	if item == nil {
		return
	}
	item.Erase(a.screen, background.Offset)
	background.RemoveItemsAt(item.Offset)
	a.enqueueErasure(item.Offset)
	a.sound.Erase()
}

// inkAt samples the color under the pointer. An empty sample falls
// back to the erase tool rather than erroring.
func (a *App) inkAt(p canvas.Point) {
	item := a.canvas.Background().ItemAt(p)
	if item == nil {
		a.tool = input.ToolErase
		return
	}
	a.active = item.Cells[0][0].Bg
	a.tool = input.ToolBrush
}

// panBy shifts the background layer and forces a full recomposite of
// both layers to keep z-order consistent
func (a *App) panBy(delta canvas.Point) {
	if delta == (canvas.Point{}) {
		return
	}
	background := a.canvas.Background()
	background.Pan(delta.X, delta.Y)
	background.DrawBuffer(a.canvas.Width, a.canvas.Height).Flush(a.screen)
	a.canvas.Foreground().Redraw(a.screen)
}

// togglePalette shows or hides the 16-swatch color overlay
func (a *App) togglePalette() {
	if a.paletteOpen {
		a.closePalette()
		return
	}
	if a.tool == input.ToolErase {
		a.tool = input.ToolBrush
	}
	a.openPalette()
}

func (a *App) openPalette() {
	a.paletteOpen = true
	foreground := a.canvas.Foreground()
	row := a.canvas.Height - 1
	for c := 0; c < canvas.PaletteSize; c++ {
		swatch := canvas.NewPixelItem(paletteItemName,
			canvas.Point{X: 2 * c, Y: row}, canvas.PaletteColor(c))
		foreground.AddItem(swatch)
		swatch.Redraw(a.screen, foreground.Offset)
	}
}

func (a *App) closePalette() {
	a.paletteOpen = false
	a.canvas.Foreground().RemoveItem(paletteItemName)
	row := a.canvas.Height - 1
	for c := 0; c < 2*canvas.PaletteSize; c++ {
		canvas.Empty.Draw(a.screen, c, row)
	}
}

// pickSwatch adopts a palette swatch's color and returns to the brush
func (a *App) pickSwatch(swatch *canvas.Item) {
	a.active = swatch.Cells[0][0].Bg
	a.closePalette()
	a.tool = input.ToolBrush
	a.sound.Pick()
}

// refreshCursorOverlay erases and redraws the tool glyph and the
// coordinate readout
func (a *App) refreshCursorOverlay(p canvas.Point) {
	a.cursor.Erase(a.screen, canvas.Point{})
	a.cursor.Cells = [][]canvas.Cell{{a.cursorGlyph()}}
	a.cursor.Redraw(a.screen, canvas.Point{})

	rel := p.Sub(a.canvas.Background().Offset)
	a.cursorInfo.Erase(a.screen, canvas.Point{})
	a.cursorInfo.Cells = cursorInfoCells(rel)
	a.cursorInfo.Redraw(a.screen, canvas.Point{})
}

// cursorGlyph encodes the active tool as a single character. The
// brush glyph shows the active color, swapping black for white so it
// stays visible on the default background.
func (a *App) cursorGlyph() canvas.Cell {
	fg := tcell.ColorWhite
	if a.tool == input.ToolBrush && a.active != canvas.PaletteColor(0) {
		fg = a.active
	}
	return canvas.Cell{Rune: a.tool.Glyph(), Fg: fg, Bg: tcell.ColorDefault}
}

// cursorInfoCells renders the canvas-relative readout, with the
// column divided by the double-width cell factor
func cursorInfoCells(rel canvas.Point) [][]canvas.Cell {
	text := fmt.Sprintf("%04d %04d", rel.X/2, rel.Y)
	row := make([]canvas.Cell, 0, len(text))
	for _, r := range text {
		row = append(row, canvas.Cell{Rune: r, Fg: tcell.ColorDefault, Bg: tcell.ColorDefault})
	}
	return [][]canvas.Cell{row}
}

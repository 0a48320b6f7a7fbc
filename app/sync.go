package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelterm/canvas"
	"github.com/lixenwraith/pixelterm/wire"
)

// Outbound coordinates are the item's layer-relative offset, which
// equals the absolute canvas position for a pan-neutral peer. The pan
// offset is deliberately not folded in on emit (it is folded in on
// apply), matching the reference behavior: peers that pan drift apart
// in addressing.

// enqueuePlacement mirrors a brush placement
func (a *App) enqueuePlacement(offset canvas.Point, color tcell.Color) {
	if a.session == nil {
		return
	}
	a.session.Enqueue(placementFor(offset, canvas.Cell{Rune: ' ', Fg: color, Bg: color}))
}

// enqueueTextPlacement mirrors one typed character
func (a *App) enqueueTextPlacement(offset canvas.Point, r rune) {
	if a.session == nil {
		return
	}
	a.session.Enqueue(placementFor(offset, canvas.Cell{Rune: r, Fg: a.textColor(), Bg: tcell.ColorDefault}))
}

// enqueueErasure mirrors an item removal, keyed by the item's offset
func (a *App) enqueueErasure(offset canvas.Point) {
	if a.session == nil {
		return
	}
	a.session.Enqueue(wire.CellErasure{X: offset.X, Y: offset.Y})
}

// sendSnapshot pushes the full drawn state as a catch-up batch
func (a *App) sendSnapshot() {
	if a.session == nil {
		return
	}
	items := a.canvas.Background().Items
	if len(items) == 0 {
		return
	}
	sync := wire.FullSync{Cells: make([]wire.CellPlacement, 0, len(items))}
	for _, item := range items {
		sync.Cells = append(sync.Cells, placementFor(item.Offset, item.Cells[0][0]))
	}
	a.session.Enqueue(sync)
}

// applyUpdate applies one inbound message to the canvas
func (a *App) applyUpdate(u wire.Update) {
	switch u := u.(type) {
	case wire.CellPlacement:
		a.applyPlacement(u)
	case wire.CellErasure:
		a.applyErasure(u)
	case wire.FullSync:
		for _, p := range u.Cells {
			a.applyPlacement(p)
		}
	}
}

// applyPlacement creates or overwrites a 2-cell background item at
// the given absolute coordinates, mirroring a local brush item
func (a *App) applyPlacement(p wire.CellPlacement) {
	background := a.canvas.Background()
	offset := canvas.Point{X: p.X, Y: p.Y}

	first := canvas.Cell{
		Rune:        runeOf(p.Char),
		Fg:          canvas.PaletteColor(p.Fg),
		Bg:          canvas.PaletteColor(p.Bg),
		Transparent: p.Transparent,
	}
	// Solid pixels repeat across the cell pair; glyphs get a
	// transparent pad so the layer beneath shows through
	second := first
	if _, solid := canvas.PaletteIndex(first.Bg); !solid {
		second = canvas.Empty
	}

	background.RemoveItemsAt(offset)
	item := &canvas.Item{
		Name:   pixelItemName,
		Offset: offset,
		Cells:  [][]canvas.Cell{{first, second}},
	}
	background.AddItem(item)
	item.Redraw(a.screen, background.Offset)
}

// applyErasure looks up the item at the coordinates plus the current
// pan offset and removes it if present
func (a *App) applyErasure(e wire.CellErasure) {
	background := a.canvas.Background()
	target := canvas.Point{X: e.X, Y: e.Y}.Add(background.Offset)

	item := background.ItemAt(target)
	if item == nil {
		return
	}
	item.Erase(a.screen, background.Offset)
	background.RemoveItemsAt(item.Offset)
}

// placementFor converts a cell at a layer-relative offset to its wire
// form, degrading non-palette colors to the terminal default
func placementFor(offset canvas.Point, cell canvas.Cell) wire.CellPlacement {
	fg, ok := canvas.PaletteIndex(cell.Fg)
	if !ok {
		fg = -1
	}
	bg, ok := canvas.PaletteIndex(cell.Bg)
	if !ok {
		bg = -1
	}
	return wire.CellPlacement{
		X:           offset.X,
		Y:           offset.Y,
		Char:        string(cell.Rune),
		Fg:          fg,
		Bg:          bg,
		Transparent: cell.Transparent,
	}
}

func runeOf(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

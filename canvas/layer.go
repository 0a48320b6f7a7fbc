package canvas

// Layer is a pannable, ordered collection of items. Width and height
// bound only the compositing buffer, not storage; items may live
// partly or fully off-screen.
type Layer struct {
	Name   string
	Width  int
	Height int
	Offset Point // pan offset relative to the canvas origin
	Items  []*Item
}

// NewLayer creates an empty layer
func NewLayer(name string, width, height int, offset Point) *Layer {
	return &Layer{Name: name, Width: width, Height: height, Offset: offset}
}

// AddItem appends an item; insertion order is the hit-test order
func (l *Layer) AddItem(it *Item) {
	l.Items = append(l.Items, it)
}

// RemoveItem removes every item sharing the given name
func (l *Layer) RemoveItem(name string) {
	kept := l.Items[:0]
	for _, it := range l.Items {
		if it.Name != name {
			kept = append(kept, it)
		}
	}
	l.Items = kept
}

// RemoveItemsAt removes every item whose offset equals the given
// layer-relative offset
func (l *Layer) RemoveItemsAt(offset Point) {
	kept := l.Items[:0]
	for _, it := range l.Items {
		if it.Offset != offset {
			kept = append(kept, it)
		}
	}
	l.Items = kept
}

// RelativePosition converts an absolute canvas position into this
// layer's coordinate space
func (l *Layer) RelativePosition(abs Point) Point {
	return abs.Sub(l.Offset)
}

// Pan shifts the layer's offset. Item offsets are untouched, so every
// item's rendered absolute position is invalidated; the caller must
// recomposite this layer and any layer drawn after it.
func (l *Layer) Pan(dx, dy int) {
	l.Offset.X += dx
	l.Offset.Y += dy
}

// ItemAt returns the first item whose filled positions contain the
// absolute coordinate. The scan runs in insertion order, so the
// earliest-added item wins when items overlap.
func (l *Layer) ItemAt(abs Point) *Item {
	for _, it := range l.Items {
		if it.Contains(abs, l.Offset) {
			return it
		}
	}
	return nil
}

// FilledPositions returns the absolute coordinates covered by every
// non-transparent cell of every item
func (l *Layer) FilledPositions() []Point {
	var filled []Point
	for _, it := range l.Items {
		filled = append(filled, it.FilledPositions(l.Offset)...)
	}
	return filled
}

// Erase stamps the transparent placeholder over every item
func (l *Layer) Erase(s Surface) {
	for _, it := range l.Items {
		it.Erase(s, l.Offset)
	}
}

// Redraw stamps every item at its current offset
func (l *Layer) Redraw(s Surface) {
	for _, it := range l.Items {
		it.Redraw(s, l.Offset)
	}
}

// DrawBuffer composites the layer into a fresh buffer of the given
// size. Used after bulk operations like panning, where incremental
// per-item redraw would cost one cursor reposition per cell.
func (l *Layer) DrawBuffer(width, height int) *Buffer {
	buf := NewBuffer(width, height)
	for _, it := range l.Items {
		it.DrawToBuffer(buf, l.Offset)
	}
	return buf
}

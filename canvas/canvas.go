// Package canvas implements the layered compositing model: cells
// grouped into items, items stacked on pannable layers, layers stacked
// on the canvas. Index 0 is the background drawing surface; index 1 is
// the foreground UI overlay.
package canvas

// Canvas is the full renderable surface: an ordered stack of layers
// sized to the visible terminal.
type Canvas struct {
	Width  int
	Height int
	Layers []*Layer
}

// New creates a canvas over the given layer stack
func New(width, height int, layers ...*Layer) *Canvas {
	return &Canvas{Width: width, Height: height, Layers: layers}
}

// Background returns the content layer
func (c *Canvas) Background() *Layer {
	return c.Layers[0]
}

// Foreground returns the UI overlay layer
func (c *Canvas) Foreground() *Layer {
	return c.Layers[1]
}

// FirstItemAt scans layers in stack order starting from the
// background. Overlay elements therefore do not pre-empt background
// content during hit-testing.
func (c *Canvas) FirstItemAt(abs Point) *Item {
	for _, l := range c.Layers {
		if it := l.ItemAt(abs); it != nil {
			return it
		}
	}
	return nil
}

// Redraw recomposites every layer in stack order, background first
func (c *Canvas) Redraw(s Surface) {
	for _, l := range c.Layers {
		l.Redraw(s)
	}
}

// Resize updates the compositing bounds after a terminal resize.
// Item storage is untouched.
func (c *Canvas) Resize(width, height int) {
	c.Width = width
	c.Height = height
	for _, l := range c.Layers {
		l.Width = width
		l.Height = height
	}
}

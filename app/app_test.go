package app

import (
	"net"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelterm/canvas"
	"github.com/lixenwraith/pixelterm/input"
	"github.com/lixenwraith/pixelterm/peer"
	"github.com/lixenwraith/pixelterm/wire"
)

// sinkConn accepts every write and times out every read
type sinkConn struct {
	writes [][]byte
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func (c *sinkConn) Read(b []byte) (int, error) { return 0, timeoutError{} }
func (c *sinkConn) Write(b []byte) (int, error) {
	c.writes = append(c.writes, append([]byte(nil), b...))
	return len(b), nil
}
func (c *sinkConn) Close() error                       { return nil }
func (c *sinkConn) LocalAddr() net.Addr                { return nil }
func (c *sinkConn) RemoteAddr() net.Addr               { return nil }
func (c *sinkConn) SetDeadline(t time.Time) error      { return nil }
func (c *sinkConn) SetReadDeadline(t time.Time) error  { return nil }
func (c *sinkConn) SetWriteDeadline(t time.Time) error { return nil }

func newTestApp(t *testing.T) *App {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	return New(s, nil, nil)
}

func newConnectedApp(t *testing.T) (*App, *sinkConn) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("simulation screen init failed: %v", err)
	}
	s.SetSize(80, 24)
	t.Cleanup(s.Fini)
	conn := &sinkConn{}
	return New(s, peer.NewSession(conn, peer.DefaultConfig("test")), nil), conn
}

func press(a *App, x, y int) {
	a.handlePointer(canvas.Point{X: x, Y: y}, true)
}

func move(a *App, x, y int) {
	a.handlePointer(canvas.Point{X: x, Y: y}, false)
}

func TestBrushPlacesPixelItem(t *testing.T) {
	a := newTestApp(t)
	a.active = canvas.PaletteColor(3)

	press(a, 10, 4)

	bg := a.canvas.Background()
	if len(bg.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(bg.Items))
	}
	item := bg.ItemAt(canvas.Point{X: 10, Y: 4})
	if item == nil {
		t.Fatal("Expected an item at (10,4)")
	}
	if item.Cells[0][0].Bg != canvas.PaletteColor(3) {
		t.Error("Expected the active color on the placed pixel")
	}
}

func TestBrushThenEraseIsNeutral(t *testing.T) {
	a := newTestApp(t)
	before := len(a.canvas.Background().Items)

	press(a, 10, 4)
	a.tool = input.ToolErase
	press(a, 10, 4)

	if got := len(a.canvas.Background().Items); got != before {
		t.Errorf("Expected item count back to %d, got %d", before, got)
	}
}

func TestEraseMiss(t *testing.T) {
	a := newTestApp(t)
	a.tool = input.ToolErase

	press(a, 40, 12) // nothing there; must not panic or enqueue
}

func TestInkOverFilledAdoptsColorAndBrush(t *testing.T) {
	a := newTestApp(t)
	a.active = canvas.PaletteColor(5)
	press(a, 10, 4)

	a.active = canvas.PaletteColor(0)
	a.tool = input.ToolInk
	press(a, 10, 4)

	if a.tool != input.ToolBrush {
		t.Errorf("Expected brush after ink hit, got %v", a.tool)
	}
	if a.active != canvas.PaletteColor(5) {
		t.Error("Expected the sampled background color to become active")
	}
}

func TestInkOverEmptyFallsBackToErase(t *testing.T) {
	a := newTestApp(t)
	a.tool = input.ToolInk

	press(a, 40, 12)

	if a.tool != input.ToolErase {
		t.Errorf("Expected erase after ink miss, got %v", a.tool)
	}
}

func TestPaletteOverlayGeometry(t *testing.T) {
	a := newTestApp(t)

	a.togglePalette()

	fg := a.canvas.Foreground()
	row := a.canvas.Height - 1
	count := 0
	for _, item := range fg.Items {
		if item.Name != paletteItemName {
			continue
		}
		if item.Offset.Y != row {
			t.Errorf("Expected swatch on row %d, got %d", row, item.Offset.Y)
		}
		if item.Offset.X != 2*count {
			t.Errorf("Expected swatch %d at column %d, got %d", count, 2*count, item.Offset.X)
		}
		count++
	}
	if count != 16 {
		t.Fatalf("Expected 16 swatches, got %d", count)
	}

	a.togglePalette()
	for _, item := range fg.Items {
		if item.Name == paletteItemName {
			t.Fatal("Expected all swatches removed")
		}
	}
}

func TestPaletteToggleBumpsEraseToBrush(t *testing.T) {
	a := newTestApp(t)
	a.tool = input.ToolErase

	a.togglePalette()

	if a.tool != input.ToolBrush {
		t.Errorf("Expected brush while the palette is open, got %v", a.tool)
	}
}

func TestSwatchPickSetsColorAndClosesPalette(t *testing.T) {
	a := newTestApp(t)
	a.togglePalette()

	// Swatch 2 covers columns 4-5 on the bottom row
	press(a, 4, a.canvas.Height-1)

	if a.active != canvas.PaletteColor(2) {
		t.Error("Expected swatch 2's color to become active")
	}
	if a.paletteOpen {
		t.Error("Expected the palette to close after a pick")
	}
	if a.tool != input.ToolBrush {
		t.Errorf("Expected a pick to force the brush, got %v", a.tool)
	}
	if len(a.canvas.Background().Items) != 0 {
		t.Error("Expected the pick to not place a pixel")
	}
}

func TestMovePansBackground(t *testing.T) {
	a := newTestApp(t)
	press(a, 10, 4) // draw something to pan
	a.tool = input.ToolMove

	move(a, 20, 10)
	press(a, 24, 11)

	bg := a.canvas.Background()
	if bg.Offset != (canvas.Point{X: 4, Y: 1}) {
		t.Errorf("Expected pan offset (4,1), got %v", bg.Offset)
	}
	if bg.ItemAt(canvas.Point{X: 14, Y: 5}) == nil {
		t.Error("Expected the item hit-testable at its panned position")
	}
}

func TestTextCaptureLifecycle(t *testing.T) {
	a := newTestApp(t)
	a.tool = input.ToolText

	press(a, 10, 5)
	if a.text == nil {
		t.Fatal("Expected a capture session after the first press")
	}
	if !a.machine.TextCapture() {
		t.Error("Expected the input machine switched to capture mode")
	}

	a.handleRune('H')
	a.handleRune('i')

	bg := a.canvas.Background()
	if len(bg.Items) != 2 {
		t.Fatalf("Expected 2 text items, got %d", len(bg.Items))
	}
	if bg.ItemAt(canvas.Point{X: 10, Y: 5}) == nil {
		t.Error("Expected 'H' at the opening position")
	}
	if bg.ItemAt(canvas.Point{X: 12, Y: 5}) == nil {
		t.Error("Expected 'i' one cell pair along")
	}

	a.handleBackspace()
	if bg.ItemAt(canvas.Point{X: 12, Y: 5}) != nil {
		t.Error("Expected backspace to remove the preceding item")
	}
	if a.text.caret != (canvas.Point{X: 12, Y: 5}) {
		t.Errorf("Expected the caret retreated to (12,5), got %v", a.text.caret)
	}

	a.endTextCapture()
	if a.text != nil || a.tool != input.ToolBrush {
		t.Error("Expected the session closed and the brush restored")
	}
	if a.machine.TextCapture() {
		t.Error("Expected the input machine back in normal mode")
	}
}

func TestRuneOutsideCaptureIsIgnored(t *testing.T) {
	a := newTestApp(t)

	a.handleRune('x')

	if len(a.canvas.Background().Items) != 0 {
		t.Error("Expected no item without an open capture session")
	}
}

func TestBrushEnqueuesPlacement(t *testing.T) {
	a, _ := newConnectedApp(t)
	a.active = canvas.PaletteColor(3)

	press(a, 10, 4)

	if a.session.PendingLen() != 1 {
		t.Fatalf("Expected 1 pending record, got %d", a.session.PendingLen())
	}
	a.session.Flush()
}

func TestEraseEnqueuesErasureKeyedByOffset(t *testing.T) {
	a, conn := newConnectedApp(t)
	press(a, 10, 4)
	a.tool = input.ToolErase
	press(a, 10, 4)
	a.session.Flush()

	if len(conn.writes) != 2 {
		t.Fatalf("Expected 2 records on the wire, got %d", len(conn.writes))
	}
	u, err := wire.Decode(conn.writes[1])
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	e, ok := u.(wire.CellErasure)
	if !ok {
		t.Fatalf("Expected CellErasure, got %T", u)
	}
	if e.X != 10 || e.Y != 4 {
		t.Errorf("Expected erasure at (10,4), got (%d,%d)", e.X, e.Y)
	}
}

func TestApplyPlacementAndErasure(t *testing.T) {
	a := newTestApp(t)

	a.applyUpdate(wire.CellPlacement{X: 10, Y: 4, Char: " ", Fg: 3, Bg: 3})

	bg := a.canvas.Background()
	item := bg.ItemAt(canvas.Point{X: 10, Y: 4})
	if item == nil {
		t.Fatal("Expected an item at (10,4)")
	}
	if item.Cells[0][0].Bg != canvas.PaletteColor(3) {
		t.Error("Expected background color index 3")
	}

	a.applyUpdate(wire.CellErasure{X: 10, Y: 4})
	if bg.ItemAt(canvas.Point{X: 10, Y: 4}) != nil {
		t.Error("Expected the item removed")
	}
}

func TestApplyPlacementOverwrites(t *testing.T) {
	a := newTestApp(t)

	a.applyUpdate(wire.CellPlacement{X: 6, Y: 2, Char: " ", Fg: 1, Bg: 1})
	a.applyUpdate(wire.CellPlacement{X: 6, Y: 2, Char: " ", Fg: 4, Bg: 4})

	bg := a.canvas.Background()
	if len(bg.Items) != 1 {
		t.Fatalf("Expected re-placement to overwrite, got %d items", len(bg.Items))
	}
	if bg.Items[0].Cells[0][0].Bg != canvas.PaletteColor(4) {
		t.Error("Expected the newer color to win")
	}
}

func TestApplyErasureAddsPanOffset(t *testing.T) {
	a := newTestApp(t)
	bg := a.canvas.Background()
	bg.AddItem(canvas.NewPixelItem(pixelItemName, canvas.Point{X: 10, Y: 4}, canvas.PaletteColor(2)))
	bg.Pan(2, 1)

	// Inbound erasure coordinates get the local pan folded in before
	// lookup, so the pre-pan address still finds the item
	a.applyUpdate(wire.CellErasure{X: 10, Y: 4})

	if len(bg.Items) != 0 {
		t.Error("Expected the erasure to fold the pan offset into its lookup")
	}
}

func TestApplyFullSync(t *testing.T) {
	a := newTestApp(t)

	a.applyUpdate(wire.FullSync{Cells: []wire.CellPlacement{
		{X: 0, Y: 0, Char: " ", Fg: 1, Bg: 1},
		{X: 4, Y: 2, Char: "A", Fg: 7, Bg: -1},
	}})

	bg := a.canvas.Background()
	if len(bg.Items) != 2 {
		t.Fatalf("Expected 2 items from the sync batch, got %d", len(bg.Items))
	}
	glyph := bg.ItemAt(canvas.Point{X: 4, Y: 2})
	if glyph == nil {
		t.Fatal("Expected the glyph placement applied")
	}
	if glyph.Cells[0][0].Rune != 'A' {
		t.Errorf("Expected rune 'A', got %q", glyph.Cells[0][0].Rune)
	}
	// Glyphs pad with a transparent cell instead of doubling
	if !glyph.Cells[0][1].Transparent {
		t.Error("Expected a transparent pad cell after the glyph")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	a, conn := newConnectedApp(t)
	press(a, 10, 4)
	press(a, 20, 8)

	a.sendSnapshot()
	a.session.Flush()

	last := conn.writes[len(conn.writes)-1]
	u, err := wire.Decode(last)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	sync, ok := u.(wire.FullSync)
	if !ok {
		t.Fatalf("Expected FullSync, got %T", u)
	}
	if len(sync.Cells) != 2 {
		t.Errorf("Expected 2 cells in the snapshot, got %d", len(sync.Cells))
	}
}

func TestResizeRepositionsOverlay(t *testing.T) {
	a := newTestApp(t)

	a.handleIntent(&input.Intent{Type: input.IntentResize, Width: 40, Height: 12})

	if a.canvas.Width != 40 || a.canvas.Height != 12 {
		t.Errorf("Expected canvas 40x12, got %dx%d", a.canvas.Width, a.canvas.Height)
	}
	if a.cursor.Offset != (canvas.Point{X: 39, Y: 0}) {
		t.Errorf("Expected cursor glyph at (39,0), got %v", a.cursor.Offset)
	}
	if a.cursorInfo.Offset != (canvas.Point{X: 31, Y: 11}) {
		t.Errorf("Expected readout at (31,11), got %v", a.cursorInfo.Offset)
	}
}

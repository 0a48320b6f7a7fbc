// Package app wires the canvas, tools, and peer session into the
// interactive application loop. One tick = poll the peer session,
// poll input, drive the active tool, recomposite what changed. All
// canvas state is mutated only by the tick; the sole goroutine besides
// it just ferries terminal events into a channel.
package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pixelterm/audio"
	"github.com/lixenwraith/pixelterm/canvas"
	"github.com/lixenwraith/pixelterm/input"
	"github.com/lixenwraith/pixelterm/peer"
)

const tickInterval = 16 * time.Millisecond

// App owns the canvas, the tool state, and the optional peer session
type App struct {
	screen  tcell.Screen
	canvas  *canvas.Canvas
	machine *input.Machine
	session *peer.Session // nil when running standalone
	sound   *audio.Player // nil when sound is disabled

	tool        input.Tool
	active      tcell.Color
	paletteOpen bool

	// Cursor overlay items live outside the layer stack, like the
	// tool glyph and readout they render
	cursor     *canvas.Item
	cursorInfo *canvas.Item

	lastPointer canvas.Point
	resized     bool
	quit        bool

	text *textCapture // nil when no capture session is open
}

// New builds an app over an initialized screen. session and sound may
// be nil.
func New(screen tcell.Screen, session *peer.Session, sound *audio.Player) *App {
	width, height := screen.Size()
	background := canvas.NewLayer("background", width, height, canvas.Point{})
	foreground := canvas.NewLayer("foreground", width, height, canvas.Point{})

	return &App{
		screen:  screen,
		canvas:  canvas.New(width, height, background, foreground),
		machine: input.NewMachine(),
		session: session,
		sound:   sound,
		tool:    input.ToolBrush,
		active:  canvas.PaletteColor(0),
		cursor: &canvas.Item{
			Name:   "cursor",
			Offset: canvas.Point{X: width - 1, Y: 0},
			Cells:  [][]canvas.Cell{{canvas.Empty}},
		},
		cursorInfo: &canvas.Item{
			Name:   "cursor_info",
			Offset: canvas.Point{X: width - 9, Y: height - 1},
			Cells:  [][]canvas.Cell{{canvas.Empty}},
		},
	}
}

// Run drives the application until quit
func (a *App) Run() {
	a.screen.EnableMouse()
	a.screen.Clear()
	a.screen.Show()

	a.sendSnapshot()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for !a.quit {
		select {
		case ev := <-events:
			if intent := a.machine.Process(ev); intent != nil {
				a.handleIntent(intent)
			}
		case <-ticker.C:
			a.tick()
		}
		a.screen.Show()
	}

	a.screen.HideCursor()
	a.screen.DisableMouse()
}

// tick runs the peer session's per-tick polls
func (a *App) tick() {
	if a.session == nil {
		return
	}
	a.session.Poll(a.applyUpdate)
	a.session.Flush()
}

func (a *App) handleIntent(in *input.Intent) {
	switch in.Type {
	case input.IntentQuit:
		a.quit = true
	case input.IntentSelectTool:
		a.tool = in.Tool
	case input.IntentTogglePalette:
		a.togglePalette()
	case input.IntentPointer:
		a.handlePointer(canvas.Point{X: in.X, Y: in.Y}, in.Press)
	case input.IntentRune:
		a.handleRune(in.Rune)
	case input.IntentBackspace:
		a.handleBackspace()
	case input.IntentEndText:
		a.endTextCapture()
	case input.IntentResize:
		a.handleResize(in.Width, in.Height)
	}
}

func (a *App) handleResize(width, height int) {
	a.screen.Clear()
	a.canvas.Resize(width, height)
	a.cursor.Offset = canvas.Point{X: width - 1, Y: 0}
	a.cursorInfo.Offset = canvas.Point{X: width - 9, Y: height - 1}
	a.resized = true
}

// Tool reports the active tool
func (a *App) Tool() input.Tool {
	return a.tool
}

// ActiveColor reports the selected drawing color
func (a *App) ActiveColor() tcell.Color {
	return a.active
}

// Canvas exposes the layer stack
func (a *App) Canvas() *canvas.Canvas {
	return a.canvas
}

// Package input parses raw terminal events into semantic intents.
// The machine is mode-aware: while a text capture session is open,
// character keys feed the capture instead of selecting tools.
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Machine is the input state machine
type Machine struct {
	textCapture bool
}

// NewMachine creates an input machine in normal (tool-selection) mode
func NewMachine() *Machine {
	return &Machine{}
}

// SetTextCapture switches character-key routing between tool
// selection and text entry
func (m *Machine) SetTextCapture(on bool) {
	m.textCapture = on
}

// TextCapture reports whether a capture session is routing keys
func (m *Machine) TextCapture() bool {
	return m.textCapture
}

// Process parses a terminal event and returns an intent.
// Returns nil for events that mean nothing in the current mode.
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, Width: w, Height: h}
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	if ev.Key() == tcell.KeyCtrlC {
		return &Intent{Type: IntentQuit}
	}

	if m.textCapture {
		switch ev.Key() {
		case tcell.KeyRune:
			return &Intent{Type: IntentRune, Rune: ev.Rune()}
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return &Intent{Type: IntentBackspace}
		case tcell.KeyEnter, tcell.KeyEscape:
			return &Intent{Type: IntentEndText}
		}
		return nil
	}

	if ev.Key() != tcell.KeyRune {
		return nil
	}

	switch ev.Rune() {
	case 'q':
		return &Intent{Type: IntentQuit}
	case 'b':
		return &Intent{Type: IntentSelectTool, Tool: ToolBrush}
	case 'e':
		return &Intent{Type: IntentSelectTool, Tool: ToolErase}
	case 'i':
		return &Intent{Type: IntentSelectTool, Tool: ToolInk}
	case 'm':
		return &Intent{Type: IntentSelectTool, Tool: ToolMove}
	case 't':
		return &Intent{Type: IntentSelectTool, Tool: ToolText}
	case 'c':
		return &Intent{Type: IntentTogglePalette}
	}
	return nil
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	return &Intent{
		Type:  IntentPointer,
		X:     x &^ 1, // snap to the double-width cell grid
		Y:     y,
		Press: ev.Buttons()&tcell.Button1 != 0,
	}
}

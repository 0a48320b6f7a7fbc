package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func keyEvent(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestToolSelectionKeys(t *testing.T) {
	m := NewMachine()
	cases := []struct {
		key  rune
		tool Tool
	}{
		{'b', ToolBrush},
		{'e', ToolErase},
		{'i', ToolInk},
		{'m', ToolMove},
		{'t', ToolText},
	}

	for _, tc := range cases {
		in := m.Process(keyEvent(tc.key))
		if in == nil || in.Type != IntentSelectTool {
			t.Fatalf("Key %q: expected tool selection, got %+v", tc.key, in)
		}
		if in.Tool != tc.tool {
			t.Errorf("Key %q: expected tool %v, got %v", tc.key, tc.tool, in.Tool)
		}
	}
}

func TestQuitAndPalette(t *testing.T) {
	m := NewMachine()

	if in := m.Process(keyEvent('q')); in == nil || in.Type != IntentQuit {
		t.Error("Expected 'q' to quit")
	}
	if in := m.Process(keyEvent('c')); in == nil || in.Type != IntentTogglePalette {
		t.Error("Expected 'c' to toggle the palette")
	}
	ctrlC := tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if in := m.Process(ctrlC); in == nil || in.Type != IntentQuit {
		t.Error("Expected Ctrl+C to quit")
	}
	if in := m.Process(keyEvent('z')); in != nil {
		t.Errorf("Expected unbound key to parse to nothing, got %+v", in)
	}
}

func TestTextCaptureRouting(t *testing.T) {
	m := NewMachine()
	m.SetTextCapture(true)

	// Tool keys become text while capturing
	in := m.Process(keyEvent('b'))
	if in == nil || in.Type != IntentRune || in.Rune != 'b' {
		t.Errorf("Expected rune intent for 'b' in capture mode, got %+v", in)
	}

	bs := tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone)
	if in := m.Process(bs); in == nil || in.Type != IntentBackspace {
		t.Error("Expected backspace intent")
	}

	enter := tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)
	if in := m.Process(enter); in == nil || in.Type != IntentEndText {
		t.Error("Expected Enter to end the capture")
	}
	esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if in := m.Process(esc); in == nil || in.Type != IntentEndText {
		t.Error("Expected Escape to end the capture")
	}

	m.SetTextCapture(false)
	if in := m.Process(keyEvent('b')); in == nil || in.Type != IntentSelectTool {
		t.Error("Expected tool selection after capture ends")
	}
}

func TestPointerSnapsToCellGrid(t *testing.T) {
	m := NewMachine()

	ev := tcell.NewEventMouse(7, 3, tcell.Button1, tcell.ModNone)
	in := m.Process(ev)
	if in == nil || in.Type != IntentPointer {
		t.Fatalf("Expected pointer intent, got %+v", in)
	}
	if in.X != 6 || in.Y != 3 {
		t.Errorf("Expected snapped position (6,3), got (%d,%d)", in.X, in.Y)
	}
	if !in.Press {
		t.Error("Expected press with button 1 held")
	}

	motion := tcell.NewEventMouse(4, 1, tcell.ButtonNone, tcell.ModNone)
	in = m.Process(motion)
	if in.Press {
		t.Error("Expected motion without press")
	}
}

func TestResizeIntent(t *testing.T) {
	m := NewMachine()

	in := m.Process(tcell.NewEventResize(100, 40))
	if in == nil || in.Type != IntentResize {
		t.Fatalf("Expected resize intent, got %+v", in)
	}
	if in.Width != 100 || in.Height != 40 {
		t.Errorf("Expected 100x40, got %dx%d", in.Width, in.Height)
	}
}

// Interpose a non-input event type to confirm it parses to nothing
func TestUnknownEvent(t *testing.T) {
	m := NewMachine()
	if in := m.Process(tcell.NewEventInterrupt(time.Now())); in != nil {
		t.Errorf("Expected nil for interrupt events, got %+v", in)
	}
}

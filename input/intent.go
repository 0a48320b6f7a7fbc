package input

// IntentType classifies parsed input
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentQuit
	IntentSelectTool    // Tool carries the selection
	IntentTogglePalette // modal color-selection overlay
	IntentPointer       // pointer motion or press
	IntentRune          // text-capture character
	IntentBackspace     // text-capture delete
	IntentEndText       // text-capture finished
	IntentResize
)

// Tool identifies the pointer interpretation mode
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolErase
	ToolInk
	ToolMove
	ToolText
)

// Glyph returns the one-character cursor marker for the tool
func (t Tool) Glyph() rune {
	switch t {
	case ToolBrush:
		return 'B'
	case ToolErase:
		return 'E'
	case ToolInk:
		return 'I'
	case ToolMove:
		return 'M'
	case ToolText:
		return 'T'
	}
	return '?'
}

// Intent is one semantic action decoded from a terminal event
type Intent struct {
	Type IntentType
	Tool Tool // IntentSelectTool
	Rune rune // IntentRune

	// IntentPointer: position with the column snapped to the
	// double-width cell grid, plus button state
	X, Y  int
	Press bool

	// IntentResize
	Width, Height int
}

// Package wire defines the peer-synchronization messages and their
// line-delimited text encoding. Every record is one self-describing
// JSON object carrying an explicit discriminator plus the payload of
// exactly one variant.
package wire

// Kind discriminates the update variants on the wire
type Kind string

const (
	KindPlace Kind = "place"
	KindErase Kind = "erase"
	KindSync  Kind = "sync"
)

// Update is one edit (or a batch catch-up of edits) exchanged between
// peers. Exactly one of the three variants implements it.
type Update interface {
	Kind() Kind
}

// CellPlacement places or overwrites one canvas pixel. Coordinates are
// absolute canvas coordinates, independent of any layer's pan. Color
// fields are palette indices; -1 means the terminal default.
type CellPlacement struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Char        string `json:"char"`
	Fg          int    `json:"fg"`
	Bg          int    `json:"bg"`
	Transparent bool   `json:"transparent"`
}

// Kind implements Update
func (CellPlacement) Kind() Kind { return KindPlace }

// CellErasure removes whatever item covers the absolute coordinate
type CellErasure struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Kind implements Update
func (CellErasure) Kind() Kind { return KindErase }

// FullSync is a batch catch-up carrying the complete drawn state
type FullSync struct {
	Cells []CellPlacement `json:"cells"`
}

// Kind implements Update
func (FullSync) Kind() Kind { return KindSync }

package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaxRecordSize bounds one encoded record on the wire
const MaxRecordSize = 64 * 1024

// envelope is the on-wire shape: a discriminator plus exactly one
// variant payload
type envelope struct {
	Type  Kind           `json:"type"`
	Place *CellPlacement `json:"place,omitempty"`
	Erase *CellErasure   `json:"erase,omitempty"`
	Sync  *FullSync      `json:"sync,omitempty"`
}

// Encode serializes one update as a single newline-terminated record
func Encode(u Update) ([]byte, error) {
	env := envelope{Type: u.Kind()}
	switch v := u.(type) {
	case CellPlacement:
		env.Place = &v
	case CellErasure:
		env.Erase = &v
	case FullSync:
		env.Sync = &v
	default:
		return nil, fmt.Errorf("wire: unknown update type %T", u)
	}

	b, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	if len(b)+1 > MaxRecordSize {
		return nil, fmt.Errorf("wire: record exceeds %d bytes", MaxRecordSize)
	}
	return append(b, '\n'), nil
}

// Decode parses one record. A record that does not carry the payload
// named by its discriminator is malformed.
func Decode(record []byte) (Update, error) {
	record = bytes.TrimSpace(record)
	if len(record) == 0 {
		return nil, fmt.Errorf("wire: empty record")
	}

	var env envelope
	if err := json.Unmarshal(record, &env); err != nil {
		return nil, fmt.Errorf("wire: malformed record: %w", err)
	}

	switch env.Type {
	case KindPlace:
		if env.Place == nil {
			return nil, fmt.Errorf("wire: %q record without payload", env.Type)
		}
		return *env.Place, nil
	case KindErase:
		if env.Erase == nil {
			return nil, fmt.Errorf("wire: %q record without payload", env.Type)
		}
		return *env.Erase, nil
	case KindSync:
		if env.Sync == nil {
			return nil, fmt.Errorf("wire: %q record without payload", env.Type)
		}
		return *env.Sync, nil
	default:
		return nil, fmt.Errorf("wire: unknown record type %q", env.Type)
	}
}

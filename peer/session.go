// Package peer owns the mirroring side of the canvas: one stream
// connection, an outbound pending queue with lossy backpressure, and a
// per-tick inbound decode loop. All methods are driven by the
// application tick; nothing here blocks once the session is up.
package peer

import (
	"bytes"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/lixenwraith/pixelterm/wire"
)

// Session is one live peer connection plus its queues
type Session struct {
	cfg  *Config
	conn net.Conn

	// Inbound reassembly: one chunk read per tick, records split on
	// newlines as they complete
	chunk []byte
	inbuf bytes.Buffer

	// Outbound pending queue, encoded records in enqueue order
	pending [][]byte

	readDone bool
}

// Connect dials the configured address with a bounded number of
// blocking attempts. This is the one allowed blocking path and it runs
// before the main loop starts; exhausting the bound is fatal to the
// caller.
func Connect(cfg *Config) (*Session, error) {
	var lastErr error
	for attempt := 1; attempt <= cfg.RetryAttempts; attempt++ {
		conn, err := net.DialTimeout("tcp", cfg.Address, cfg.DialTimeout)
		if err == nil {
			return NewSession(conn, cfg), nil
		}
		lastErr = err
		log.Printf("peer: connect attempt %d/%d to %s failed: %v",
			attempt, cfg.RetryAttempts, cfg.Address, err)
		if attempt < cfg.RetryAttempts {
			time.Sleep(cfg.RetryDelay)
		}
	}
	return nil, fmt.Errorf("peer: giving up on %s after %d attempts: %w",
		cfg.Address, cfg.RetryAttempts, lastErr)
}

// NewSession wraps an established connection
func NewSession(conn net.Conn, cfg *Config) *Session {
	return &Session{
		cfg:   cfg,
		conn:  conn,
		chunk: make([]byte, cfg.ChunkSize),
	}
}

// Close tears down the connection
func (s *Session) Close() error {
	return s.conn.Close()
}

// Enqueue encodes a local edit and appends it to the pending queue.
// Encoding failures are logged and the edit is dropped.
func (s *Session) Enqueue(u wire.Update) {
	b, err := wire.Encode(u)
	if err != nil {
		log.Printf("peer: dropping unencodable update: %v", err)
		return
	}
	s.pending = append(s.pending, b)
}

// PendingLen returns the current outbound queue length
func (s *Session) PendingLen() int {
	return len(s.pending)
}

// Flush attempts to drain the pending queue strictly in order. The
// first write failure requeues the failing record at the tail and
// stops the flush for this tick; later records stay queued in their
// relative order. Afterwards the queue is trimmed to its cap, dropping
// the oldest retained entries first.
func (s *Session) Flush() {
	for len(s.pending) > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(s.cfg.PollTimeout))
		if _, err := s.conn.Write(s.pending[0]); err != nil {
			log.Printf("peer: write failed, requeueing: %v", err)
			s.pending = append(s.pending[1:], s.pending[0])
			break
		}
		s.pending = s.pending[1:]
	}

	if excess := len(s.pending) - s.cfg.MaxPending; excess > 0 {
		log.Printf("peer: pending queue over cap, dropping %d oldest", excess)
		s.pending = s.pending[excess:]
	}
}

// Poll performs the per-tick inbound read: at most one chunk is pulled
// off the connection, and every record it completes is decoded and
// handed to apply in arrival order. A malformed record is logged and
// dropped without affecting later records. Absence of data is not an
// error.
func (s *Session) Poll(apply func(wire.Update)) {
	if s.readDone {
		return
	}

	s.conn.SetReadDeadline(time.Now().Add(s.cfg.PollTimeout))
	n, err := s.conn.Read(s.chunk)
	if n > 0 {
		s.inbuf.Write(s.chunk[:n])
		s.drainRecords(apply)
	}
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return // nothing to do this tick
		}
		log.Printf("peer: read failed, inbound mirroring stopped: %v", err)
		s.readDone = true
	}
}

// drainRecords splits completed lines out of the reassembly buffer
func (s *Session) drainRecords(apply func(wire.Update)) {
	for {
		data := s.inbuf.Bytes()
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			// A peer pushing an unterminated record past the size
			// bound will never complete it; drop the garbage
			if s.inbuf.Len() > wire.MaxRecordSize {
				log.Printf("peer: dropping %d-byte unterminated record", s.inbuf.Len())
				s.inbuf.Reset()
			}
			return
		}

		record := make([]byte, idx+1)
		copy(record, data[:idx+1])
		s.inbuf.Next(idx + 1)

		u, err := wire.Decode(record)
		if err != nil {
			log.Printf("peer: discarding inbound record: %v", err)
			continue
		}
		apply(u)
	}
}

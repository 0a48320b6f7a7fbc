package peer

import (
	"time"
)

// Config holds session tuning. Defaults are sized for a couple of
// peers doodling over a LAN.
type Config struct {
	// Address to connect to (host:port)
	Address string

	// Startup connection retry bounds
	DialTimeout   time.Duration
	RetryAttempts int
	RetryDelay    time.Duration

	// Per-tick I/O deadline; keeps polls from stalling the loop
	PollTimeout time.Duration

	// ChunkSize bounds one inbound read per tick
	ChunkSize int

	// MaxPending caps the outbound queue; oldest entries are dropped
	// first when the peer cannot keep up
	MaxPending int
}

// DefaultConfig returns the standard session configuration
func DefaultConfig(addr string) *Config {
	return &Config{
		Address:       addr,
		DialTimeout:   2 * time.Second,
		RetryAttempts: 10,
		RetryDelay:    500 * time.Millisecond,
		PollTimeout:   time.Millisecond,
		ChunkSize:     64 * 1024,
		MaxPending:    256,
	}
}

// Package relay implements the companion process: a TCP fan-out hub
// that forwards every record a client sends to every other client.
// The relay never decodes records; a malformed line is forwarded like
// any other and it is the receiving client's job to discard it.
package relay

import (
	"bufio"
	"log"
	"net"
	"sync"
)

// MaxLineSize bounds one forwarded record
const MaxLineSize = 64 * 1024

// Relay accepts client connections and mirrors their traffic
type Relay struct {
	listener net.Listener

	mu      sync.Mutex
	clients map[net.Conn]bool

	stopCh  chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

// Listen binds the relay to an address
func Listen(addr string) (*Relay, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Relay{
		listener: ln,
		clients:  make(map[net.Conn]bool),
		stopCh:   make(chan struct{}),
	}, nil
}

// Addr returns the bound listen address
func (r *Relay) Addr() net.Addr {
	return r.listener.Addr()
}

// Serve runs the accept loop until Close is called
func (r *Relay) Serve() error {
	for {
		conn, err := r.listener.Accept()
		if err != nil {
			select {
			case <-r.stopCh:
				return nil
			default:
				return err
			}
		}

		r.mu.Lock()
		r.clients[conn] = true
		count := len(r.clients)
		r.mu.Unlock()
		log.Printf("relay: client %s joined (%d connected)", conn.RemoteAddr(), count)

		r.wg.Add(1)
		go r.serveClient(conn)
	}
}

// serveClient reads records from one client and fans them out
func (r *Relay) serveClient(conn net.Conn) {
	defer r.wg.Done()
	defer r.drop(conn)

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 4096), MaxLineSize)
	for scanner.Scan() {
		record := append(scanner.Bytes(), '\n')
		r.broadcast(conn, record)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("relay: client %s read error: %v", conn.RemoteAddr(), err)
	}
}

// broadcast forwards a record to every client except the sender.
// A client that cannot be written to is dropped.
func (r *Relay) broadcast(from net.Conn, record []byte) {
	r.mu.Lock()
	targets := make([]net.Conn, 0, len(r.clients))
	for c := range r.clients {
		if c != from {
			targets = append(targets, c)
		}
	}
	r.mu.Unlock()

	for _, c := range targets {
		if _, err := c.Write(record); err != nil {
			log.Printf("relay: dropping client %s: %v", c.RemoteAddr(), err)
			r.drop(c)
		}
	}
}

// drop removes a client from the fan-out set
func (r *Relay) drop(conn net.Conn) {
	r.mu.Lock()
	if r.clients[conn] {
		delete(r.clients, conn)
		log.Printf("relay: client %s left (%d connected)", conn.RemoteAddr(), len(r.clients))
	}
	r.mu.Unlock()
	conn.Close()
}

// Close stops accepting and disconnects every client
func (r *Relay) Close() error {
	r.stopped.Do(func() {
		close(r.stopCh)
		r.listener.Close()

		r.mu.Lock()
		for c := range r.clients {
			c.Close()
		}
		r.clients = make(map[net.Conn]bool)
		r.mu.Unlock()
	})
	r.wg.Wait()
	return nil
}

// pixeld is the companion relay: it accepts pixelterm clients and
// mirrors every record each one sends to all the others. Normally
// spawned by `pixelterm serve`, but it can be run by hand to host a
// session across machines.
package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/lixenwraith/pixelterm/relay"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s HOST PORT\n", os.Args[0])
		os.Exit(2)
	}
	addr := net.JoinHostPort(os.Args[1], os.Args[2])

	r, err := relay.Listen(addr)
	if err != nil {
		log.Fatalf("pixeld: %v", err)
	}
	log.Printf("pixeld: listening on %s", r.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		r.Close()
	}()

	if err := r.Serve(); err != nil {
		log.Fatalf("pixeld: %v", err)
	}
}

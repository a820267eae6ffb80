package app

import (
	"errors"
	"fmt"
	"log"
	"net"
	"strconv"
	"syscall"
)

// listenWithFallback binds addr, overriding its port with port when set. When
// the port is taken it tries the next one, up to attempts binds in total.
// Port 0 asks the kernel for any free port and never falls back.
func listenWithFallback(addr string, port, attempts int) (net.Listener, error) {
	host, rawPort, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("parse http address %q: %w", addr, err)
	}
	if port <= 0 {
		port, err = strconv.Atoi(rawPort)
		if err != nil {
			return nil, fmt.Errorf("parse http port %q: %w", rawPort, err)
		}
	}
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		candidate := net.JoinHostPort(host, strconv.Itoa(port+i))
		listener, err := net.Listen("tcp", candidate)
		if err == nil {
			if i > 0 {
				log.Printf("chess: port %d in use, bound %s instead", port, listener.Addr())
			}
			return listener, nil
		}
		lastErr = err
		if port == 0 || !errors.Is(err, syscall.EADDRINUSE) {
			break
		}
	}
	return nil, fmt.Errorf("listen on %s: %w", addr, lastErr)
}

package transport

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"
)

// clientWriteTimeout bounds how long TCPServer.Write waits on a single
// client before giving up on it and disconnecting it, per spec.md Open
// Question (b): broadcast with no per-client backpressure, slow clients
// disconnected after this timeout.
const clientWriteTimeout = 5 * time.Second

// TCPServer accepts any number of simultaneous clients, broadcasting every
// Write to all of them and merging all clients' Reads into one ordered
// stream (ordered by arrival, not by client).
type TCPServer struct {
	Port int

	ln       net.Listener
	mu       sync.Mutex
	clients  map[net.Conn]struct{}
	incoming chan []byte
	done     chan struct{}
}

func NewTCPServer(port int) *TCPServer {
	return &TCPServer{Port: port}
}

func (t *TCPServer) Open(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", t.Port))
	if err != nil {
		return fmt.Errorf("transport: listen on :%d: %w", t.Port, err)
	}
	t.ln = ln
	t.clients = make(map[net.Conn]struct{})
	t.incoming = make(chan []byte, 64)
	t.done = make(chan struct{})

	go t.acceptLoop()
	go func() {
		<-ctx.Done()
		t.Close()
	}()
	return nil
}

func (t *TCPServer) acceptLoop() {
	for {
		conn, err := t.ln.Accept()
		if err != nil {
			return
		}
		t.mu.Lock()
		t.clients[conn] = struct{}{}
		t.mu.Unlock()
		go t.readLoop(conn)
	}
}

func (t *TCPServer) readLoop(conn net.Conn) {
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			t.dropClient(conn)
			return
		}
		b := make([]byte, n)
		copy(b, buf[:n])
		select {
		case t.incoming <- b:
		case <-t.done:
			return
		}
	}
}

func (t *TCPServer) dropClient(conn net.Conn) {
	t.mu.Lock()
	delete(t.clients, conn)
	t.mu.Unlock()
	conn.Close()
}

func (t *TCPServer) Close() error {
	select {
	case <-t.done:
		return nil
	default:
		close(t.done)
	}
	t.mu.Lock()
	for c := range t.clients {
		c.Close()
	}
	t.clients = map[net.Conn]struct{}{}
	t.mu.Unlock()
	if t.ln != nil {
		return t.ln.Close()
	}
	return nil
}

func (t *TCPServer) Read(ctx context.Context) ([]byte, []bool, error) {
	select {
	case b := <-t.incoming:
		return b, nil, nil
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-t.done:
		return nil, nil, fmt.Errorf("transport: server closed")
	}
}

// Write broadcasts data to every connected client. A client that doesn't
// accept the write within clientWriteTimeout is disconnected; the write is
// otherwise best-effort per client and a slow client never blocks the
// others (spec.md Open Question (b)).
func (t *TCPServer) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	t.mu.Lock()
	conns := make([]net.Conn, 0, len(t.clients))
	for c := range t.clients {
		conns = append(conns, c)
	}
	t.mu.Unlock()

	for _, c := range conns {
		_ = c.SetWriteDeadline(time.Now().Add(clientWriteTimeout))
		if _, err := c.Write(data); err != nil {
			t.dropClient(c)
		}
	}
	return len(data), nil
}

func (t *TCPServer) Flush() error { return nil }

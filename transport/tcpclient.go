package transport

import (
	"context"
	"fmt"
	"net"
)

// TCPClient dials out to a single remote endpoint, e.g. a chartplotter
// exposing its NMEA feed over TCP.
type TCPClient struct {
	Host string
	Port int

	conn net.Conn
}

func NewTCPClient(host string, port int) *TCPClient {
	return &TCPClient{Host: host, Port: port}
}

func (t *TCPClient) Open(ctx context.Context) error {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", fmt.Sprintf("%s:%d", t.Host, t.Port))
	if err != nil {
		return fmt.Errorf("transport: dial %s:%d: %w", t.Host, t.Port, err)
	}
	t.conn = conn
	return nil
}

func (t *TCPClient) Close() error {
	if t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

func (t *TCPClient) Read(ctx context.Context) ([]byte, []bool, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(dl)
	}
	buf := make([]byte, 4096)
	n, err := t.conn.Read(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], nil, nil
}

func (t *TCPClient) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(dl)
	}
	return t.conn.Write(data)
}

func (t *TCPClient) Flush() error { return nil }

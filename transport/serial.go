package transport

import (
	"context"
	"fmt"

	"github.com/tarm/serial"
)

// Serial wraps a plain serial port with no parity surfacing (spec.md
// §4.4). Configured baud/bytesize/stopbits/parity default to the usual
// NMEA-0183 line values.
type Serial struct {
	Port     string
	Baud     int
	Size     byte
	StopBits serial.StopBits
	Parity   serial.Parity

	port *serial.Port
}

func NewSerial(port string) *Serial {
	return &Serial{
		Port:     port,
		Baud:     4800,
		Size:     8,
		StopBits: serial.Stop1,
		Parity:   serial.ParityNone,
	}
}

func (t *Serial) Open(ctx context.Context) error {
	port, err := serial.OpenPort(&serial.Config{
		Name:     t.Port,
		Baud:     t.Baud,
		Size:     t.Size,
		StopBits: t.StopBits,
		Parity:   t.Parity,
	})
	if err != nil {
		return fmt.Errorf("transport: open serial port %s: %w", t.Port, err)
	}
	t.port = port
	return nil
}

func (t *Serial) Close() error {
	if t.port == nil {
		return nil
	}
	return t.port.Close()
}

func (t *Serial) Read(ctx context.Context) ([]byte, []bool, error) {
	buf := make([]byte, 256)
	n, err := t.port.Read(buf)
	if err != nil {
		return nil, nil, err
	}
	return buf[:n], nil, nil
}

func (t *Serial) Write(ctx context.Context, data []byte, _ []bool) (int, error) {
	return t.port.Write(data)
}

func (t *Serial) Flush() error {
	return t.port.Flush()
}

package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tarm/serial"
)

func TestNewSerial_Defaults(t *testing.T) {
	s := NewSerial("/dev/ttyUSB0")
	assert.Equal(t, 4800, s.Baud)
	assert.Equal(t, byte(8), s.Size)
	assert.Equal(t, serial.Stop1, s.StopBits)
	assert.Equal(t, serial.ParityNone, s.Parity)
}

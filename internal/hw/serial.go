// Package hw adapts real device backends — a GPIO chardev line or a serial
// port's modem status line — to the msf.Reader interface internal/msf
// expects; Hamlib front-end tuning lives in internal/rig. None of this is
// part of the core decoding pipeline; it exists so cmd/msfclock can hand
// a real msf.Reader to the receiver instead of a mock.
package hw

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SerialReader reads the carrier-detect line off a serial port's modem
// status register, the same TIOCM* handshake lines direwolf's PTT code
// drives for output rather than input. Some MSF receiver modules present
// their carrier line as DCD (or CTS) on a USB-serial adapter rather than a
// bare GPIO pin.
type SerialReader struct {
	f    *os.File
	bit  int
	stat func(fd uintptr) (int, error)
}

// SerialLine selects which modem status bit carries the carrier signal.
type SerialLine int

const (
	SerialLineDCD SerialLine = iota
	SerialLineCTS
)

func (l SerialLine) bit() int {
	switch l {
	case SerialLineCTS:
		return unix.TIOCM_CTS
	default:
		return unix.TIOCM_CD
	}
}

// OpenSerialReader opens the given device node in non-blocking, non-owning
// mode: it only ever reads modem status bits, it never becomes the
// controlling terminal and never writes.
func OpenSerialReader(path string, line SerialLine) (*SerialReader, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("hw: open serial device %s: %w", path, err)
	}

	return &SerialReader{f: f, bit: line.bit(), stat: unixModemBits}, nil
}

func unixModemBits(fd uintptr) (int, error) {
	return unix.IoctlGetInt(int(fd), unix.TIOCMGET)
}

// Read implements msf.Reader: true when the configured modem status bit is
// set. Any ioctl failure is reported as "no carrier" rather than
// propagated, since msf.Reader has no error return and a flaky read
// should just look like noise to the scorer.
func (s *SerialReader) Read() bool {
	bits, err := s.stat(s.f.Fd())
	if err != nil {
		return false
	}
	return bits&s.bit != 0
}

func (s *SerialReader) Close() error {
	return s.f.Close()
}

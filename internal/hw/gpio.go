package hw

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// GPIOReader reads the carrier-detect line off a GPIO chardev line, the
// primary backend for boards with the MSF receiver module's data pin
// wired directly to a header pin (Raspberry Pi and compatible SBCs).
type GPIOReader struct {
	line *gpiocdev.Line
}

// OpenGPIOReader requests offset as an input line on the named chip
// (e.g. "gpiochip0"). activeLow inverts the electrical sense of the pin
// for receiver modules that pull the line low to indicate carrier.
func OpenGPIOReader(chip string, offset int, activeLow bool) (*GPIOReader, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}

	line, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("hw: request gpio line %s:%d: %w", chip, offset, err)
	}

	return &GPIOReader{line: line}, nil
}

// Read implements msf.Reader. A read error is reported as "no carrier";
// see SerialReader.Read for why that's the right default here.
func (g *GPIOReader) Read() bool {
	v, err := g.line.Value()
	if err != nil {
		return false
	}
	return v != 0
}

func (g *GPIOReader) Close() error {
	return g.line.Close()
}

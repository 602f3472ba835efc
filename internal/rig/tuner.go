// Package rig tunes a Hamlib-controlled radio front end to the MSF
// frequency before an acquisition attempt begins. It only matters for
// installations where the "external radio receiver" named in spec.md §1
// is a general-coverage rig or SDR rather than a dedicated MSF module, so
// most deployments never construct a Tuner at all.
package rig

import (
	"fmt"

	"github.com/xylo04/goHamlib"
)

// MSFFrequencyHz is the UK MSF broadcast carrier frequency.
const MSFFrequencyHz = 60000

// Tuner wraps a single Hamlib rig handle, opened once and reused across
// acquisition attempts.
type Tuner struct {
	rig *goHamlib.Rig
}

// Open starts Hamlib against the given rig model over the given port
// (e.g. a serial device or network address, per Hamlib convention) and
// sets it to receive MSFFrequencyHz in AM mode with a 200 Hz passband.
func Open(model int, port string) (*Tuner, error) {
	r := &goHamlib.Rig{}

	if err := r.Init(model); err != nil {
		return nil, fmt.Errorf("rig: init model %d: %w", model, err)
	}

	r.SetPath(port)

	if err := r.Open(); err != nil {
		return nil, fmt.Errorf("rig: open %s: %w", port, err)
	}

	t := &Tuner{rig: r}
	if err := t.tuneToMSF(); err != nil {
		_ = t.Close()
		return nil, err
	}

	return t, nil
}

func (t *Tuner) tuneToMSF() error {
	if err := t.rig.SetFreq(goHamlib.RIG_VFO_CURR, MSFFrequencyHz); err != nil {
		return fmt.Errorf("rig: set freq: %w", err)
	}
	if err := t.rig.SetMode(goHamlib.RIG_VFO_CURR, goHamlib.RIG_MODE_AM, 200); err != nil {
		return fmt.Errorf("rig: set mode: %w", err)
	}
	return nil
}

// Close releases the underlying Hamlib handle.
func (t *Tuner) Close() error {
	return t.rig.Close()
}

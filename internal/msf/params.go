// Package msf implements the signal-acquisition and decoding pipeline for
// the UK's MSF 60 kHz time-and-date broadcast: minute-marker search over a
// rolling sampled window, per-second bit-window voting, and BCD/parity
// decoding into a calendar timestamp.
package msf

import "fmt"

// Params holds the sample-period-derived sizing for one receiver instance.
// All fields are fixed for the lifetime of a Receiver.
type Params struct {
	SamplePeriodMs int // S, in [1, 100]
	SamplesCarrier int // 700 / S
	SamplesSilence int // 500 / S
	Lookback       int // SamplesCarrier + SamplesSilence
	BufferLen      int // 1500 / S, logical bits in the circular buffer
}

// NewParams derives the sizing constants for a given sample period in
// milliseconds. It returns an error if the period is out of range or if the
// derived lookback window would not fit inside the circular buffer.
func NewParams(samplePeriodMs int) (Params, error) {
	if samplePeriodMs < 1 || samplePeriodMs > 100 {
		return Params{}, fmt.Errorf("msf: sample period %dms out of range [1,100]", samplePeriodMs)
	}

	p := Params{
		SamplePeriodMs: samplePeriodMs,
		SamplesCarrier: 700 / samplePeriodMs,
		SamplesSilence: 500 / samplePeriodMs,
	}
	p.Lookback = p.SamplesCarrier + p.SamplesSilence
	p.BufferLen = 1500 / samplePeriodMs

	if p.Lookback > p.BufferLen {
		return Params{}, fmt.Errorf("msf: sample period %dms leaves lookback %d bits > buffer %d bits", samplePeriodMs, p.Lookback, p.BufferLen)
	}

	return p, nil
}

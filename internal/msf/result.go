package msf

import "time"

// AcquisitionResult is the outcome of one acquisition attempt. It is always
// returned, whether or not decoding actually succeeded; callers must check
// ChecksumPassed (spec §3, §7).
type AcquisitionResult struct {
	Year           int // 0..99, offset from 2000
	Month          int // 1..12
	Day            int // 1..31
	Hour           int // 0..23
	Minute         int // 0..59
	Second         int // always 0: MSF does not transmit seconds
	DayOfWeek      int // 1..7
	ChecksumPassed bool

	// PeakScore is the best confidence score seen during minute-marker
	// search. A value of 0 means the search never locked onto anything
	// resembling a marker at all ("no lock", spec §7).
	PeakScore int

	// NoisySeconds lists the second indices (0..59) whose bit-A or bit-B
	// majority fell strictly between 10% and 90%, i.e. neither a clean
	// carrier nor a clean silence dwell. Each second appears at most
	// once. Present even when ChecksumPassed is true.
	NoisySeconds []int
}

// Time converts the result to an absolute UTC time.Time, applying the
// +2000 offset spec.md deliberately keeps out of the raw Year field (see
// SPEC_FULL.md's Open Question note). It does not attempt to interpret
// DayOfWeek; MSF's day-of-week field is redundant with the calendar date
// and is only useful as an extra sanity signal upstream.
func (r AcquisitionResult) Time() time.Time {
	return time.Date(2000+r.Year, time.Month(r.Month), r.Day, r.Hour, r.Minute, r.Second, 0, time.UTC)
}

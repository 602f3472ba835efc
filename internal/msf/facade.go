package msf

import (
	"math/rand/v2"
	"time"
)

// Reader is the caller-owned collaborator that samples the receiver's
// carrier-detect line. true means the 60 kHz carrier is presently
// detected, false means silence. Implementations must be reentrant-safe
// and fast relative to the sample period.
type Reader interface {
	Read() bool
}

// ReaderFunc adapts a plain function to a Reader.
type ReaderFunc func() bool

func (f ReaderFunc) Read() bool { return f() }

// Clock is the monotonic millisecond source. Wraparound is acceptable;
// callers must only ever subtract two readings, never compare them
// directly (spec §9).
type Clock interface {
	NowMillis() uint32
}

// Sleeper provides the two delay primitives the pipeline needs: a
// millisecond-granularity yield/sleep and a sub-millisecond busy-wait.
type Sleeper interface {
	DelayMillis(ms uint32)
	DelayMicros(us uint32)
}

// Random is a bounded pseudo-random source, used only to jitter the sync
// engine's initial sleep so repeated attempts don't keep missing the
// marker at the same phase.
type Random interface {
	// RandomInRange returns a value in [lo, hi).
	RandomInRange(lo, hi uint32) uint32
}

// Logger is the optional log sink named in spec §9. A nil Logger is a
// legal no-op; nothing in the pipeline requires log output to function.
type Logger interface {
	Debug(msg interface{}, keyvals ...interface{})
	Info(msg interface{}, keyvals ...interface{})
	Warn(msg interface{}, keyvals ...interface{})
}

func logDebug(l Logger, msg string, kv ...interface{}) {
	if l != nil {
		l.Debug(msg, kv...)
	}
}

func logInfo(l Logger, msg string, kv ...interface{}) {
	if l != nil {
		l.Info(msg, kv...)
	}
}

func logWarn(l Logger, msg string, kv ...interface{}) {
	if l != nil {
		l.Warn(msg, kv...)
	}
}

// realClock is the production Clock backed by the monotonic runtime clock.
type realClock struct{ start time.Time }

func newRealClock() *realClock { return &realClock{start: time.Now()} }

func (c *realClock) NowMillis() uint32 {
	return uint32(time.Since(c.start).Milliseconds())
}

// realSleeper is the production Sleeper backed by time.Sleep. Per spec §5,
// hosts that multitask need at least a millisecond-granularity yield during
// the alignment busy-waits; time.Sleep already does that.
type realSleeper struct{}

func (realSleeper) DelayMillis(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

func (realSleeper) DelayMicros(us uint32) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}

// realRandom is the production Random source. It need not be
// cryptographically strong; it only jitters a retry's start phase.
type realRandom struct{}

func (realRandom) RandomInRange(lo, hi uint32) uint32 {
	if hi <= lo {
		return lo
	}
	return lo + uint32(rand.Uint64N(uint64(hi-lo)))
}

// elapsed computes now-ref as a modular millisecond duration. Safe under
// clock wraparound as long as the true span is less than half the u32
// range (spec §9); never widen this to a signed subtraction directly.
func elapsed(now, ref uint32) uint32 {
	return now - ref
}

// after reports whether a is at or past reference point b, tolerating
// wraparound by widening the modular difference into a signed value. This
// is the one place a signed conversion is safe: it only decides ordering,
// never a duration.
func after(a, b uint32) bool {
	return int32(a-b) >= 0
}

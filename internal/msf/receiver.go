package msf

// DefaultSamplePeriodMs matches the value the reference implementation was
// tuned against.
const DefaultSamplePeriodMs = 10

// Receiver is the MSF acquisition pipeline. It is a value object: every
// acquisition attempt reinitializes its mutable state (spec §9), so one
// Receiver can be reused for AcquireBlocking's retry loop or for repeated
// AcquireOnce calls. It is not safe to call Acquire* concurrently on the
// same Receiver.
type Receiver struct {
	params Params
	reader Reader

	clock   Clock
	sleeper Sleeper
	random  Random
	logger  Logger

	scorer   *scorer
	payloadA payloadRegister
	payloadB payloadRegister
}

// Option configures a Receiver at construction time. The zero-value
// Receiver from New(reader) already has production Clock/Sleeper/Random
// facades; options exist mainly so tests and hardware backends can swap
// them out.
type Option func(*Receiver)

// WithSamplePeriod overrides DefaultSamplePeriodMs.
func WithSamplePeriod(ms int) Option {
	return func(r *Receiver) {
		p, err := NewParams(ms)
		if err != nil {
			panic(err)
		}
		r.params = p
	}
}

// WithClock overrides the monotonic millisecond source.
func WithClock(c Clock) Option { return func(r *Receiver) { r.clock = c } }

// WithSleeper overrides the delay primitives.
func WithSleeper(s Sleeper) Option { return func(r *Receiver) { r.sleeper = s } }

// WithRandom overrides the bounded pseudo-random source.
func WithRandom(rnd Random) Option { return func(r *Receiver) { r.random = rnd } }

// WithLogger installs a log sink. Passing nil is equivalent to omitting
// this option.
func WithLogger(l Logger) Option { return func(r *Receiver) { r.logger = l } }

// New constructs a Receiver around a carrier Reader, the sole required
// collaborator per spec §6. All other facades default to real
// implementations backed by the runtime clock and scheduler; pass Options
// to override them.
func New(reader Reader, opts ...Option) *Receiver {
	p, err := NewParams(DefaultSamplePeriodMs)
	if err != nil {
		panic(err)
	}

	r := &Receiver{
		params:   p,
		reader:   reader,
		clock:    newRealClock(),
		sleeper:  realSleeper{},
		random:   realRandom{},
		payloadA: newPayloadRegister(),
		payloadB: newPayloadRegister(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.scorer = newScorer(r.params)

	return r
}

// AcquireOnce performs one best-effort acquisition attempt: it never
// fails outright, always returning an AcquisitionResult; callers must
// inspect ChecksumPassed (spec §7). Worst case it blocks the calling
// goroutine for roughly 190 seconds (up to 5s jitter sleep + 65s scan + up
// to 60s alignment wait + 60s of bit sampling).
func (r *Receiver) AcquireOnce() AcquisitionResult {
	r.payloadA.reset()
	r.payloadB.reset()

	sync := r.syncToMinuteMarker()
	minuteStart := r.alignToMinuteStart(sync.boundaryMs)

	logInfo(r.logger, "msf: sampling minute", "start_ms", minuteStart)
	noisy := r.sampleSeconds(minuteStart)

	res := decode(r.payloadA, r.payloadB)
	logDebug(r.logger, "msf: parity groups",
		"year", checkParity(r.payloadA, r.payloadB, startYear, 8, parityYear),
		"date", checkParity(r.payloadA, r.payloadB, startMonth, 11, parityDate),
		"dow", checkParity(r.payloadA, r.payloadB, startDOW, 3, parityDOW),
		"time", checkParity(r.payloadA, r.payloadB, startHour, 13, parityTime),
	)
	res.PeakScore = sync.peakScore
	res.NoisySeconds = noisy

	if res.ChecksumPassed {
		logInfo(r.logger, "msf: acquisition succeeded",
			"year", 2000+res.Year, "month", res.Month, "day", res.Day,
			"hour", res.Hour, "minute", res.Minute, "dow", res.DayOfWeek,
		)
	} else {
		logWarn(r.logger, "msf: acquisition failed checksum", "peak_score", res.PeakScore, "noisy_seconds", len(res.NoisySeconds))
	}

	return res
}

// AcquireBlocking retries AcquireOnce until checksumPassed is true, per
// spec §4.6. There is no maximum attempt count and no backoff beyond the
// random initial sleep already built into the sync engine.
func (r *Receiver) AcquireBlocking() AcquisitionResult {
	for {
		res := r.AcquireOnce()
		if res.ChecksumPassed {
			return res
		}
		logWarn(r.logger, "msf: retrying acquisition")
	}
}

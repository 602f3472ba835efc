package msf

const (
	scanWindowMs    = 65000
	progressEveryMs = 100
	initialSleepLo  = 1000
	initialSleepHi  = 5000
)

// syncResult carries the minute-marker sync engine's estimate plus enough
// diagnostic state for the caller to log or judge signal quality.
type syncResult struct {
	boundaryMs uint32 // estimated timestamp of the next minute's start
	peakScore  int
}

// syncToMinuteMarker implements spec §4.3: sleep a random jitter, reset the
// scorer, scan for 65 seconds of wall time tracking the timestamp of the
// best score seen, and return timeOfMax-500 as the minute-boundary
// estimate. If the scorer never beats its initial score of 0, boundaryMs
// underflows exactly as spec.md describes; the failed sync is logged at
// Warn and surfaces to the caller as AcquisitionResult.PeakScore == 0, and
// the decode step downstream will fail sanity/parity on the resulting
// garbage bits.
func (r *Receiver) syncToMinuteMarker() syncResult {
	sleepMs := r.random.RandomInRange(initialSleepLo, initialSleepHi)
	logDebug(r.logger, "msf: sleeping before sync scan", "ms", sleepMs)
	r.sleeper.DelayMillis(sleepMs)

	r.scorer.reset()

	logDebug(r.logger, "msf: scanning for minute marker")

	startScan := r.clock.NowMillis()
	var lastSample uint32
	haveSample := false
	var lastPrint uint32
	havePrint := false

	var bestScore int
	var lastScore int
	var timeOfMax uint32

	for elapsed(r.clock.NowMillis(), startScan) < scanWindowMs {
		now := r.clock.NowMillis()

		if !haveSample || elapsed(now, lastSample) >= uint32(r.params.SamplePeriodMs) {
			lastSample = now
			haveSample = true

			carrier := r.reader.Read()
			score := r.scorer.feed(carrier)
			lastScore = score

			if score > bestScore {
				bestScore = score
				timeOfMax = now
			}
		}

		if !havePrint || elapsed(now, lastPrint) >= progressEveryMs {
			lastPrint = now
			havePrint = true
			logDebug(r.logger, "msf: sync progress",
				"elapsed_ms", elapsed(now, startScan),
				"score", lastScore,
				"best", bestScore,
			)
		}

		r.sleeper.DelayMillis(1)
	}

	if bestScore == 0 {
		logWarn(r.logger, "msf: no minute-marker peak found in 65s scan")
	} else {
		logDebug(r.logger, "msf: sync scan complete", "peak_score", bestScore)
	}

	return syncResult{boundaryMs: timeOfMax - 500, peakScore: bestScore}
}

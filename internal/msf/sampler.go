package msf

const (
	windowAStart = 135
	windowAEnd   = 165
	windowBStart = 235
	windowBEnd   = 265

	noisyLow  = 10
	noisyHigh = 90
	majority  = 60

	perSecondPollMicros = 500
)

// majorityPercent is the percentage of "high" (silence-side) samples seen
// in a bit window, or 0 if the window was never entered.
func majorityPercent(high, total int) int {
	if total == 0 {
		return 0
	}
	return (100 * high) / total
}

// majorityBit applies the deliberately asymmetric 60% threshold from spec
// §4.4: values strictly above 60% vote for a set bit.
func majorityBit(pct int) bool {
	return pct > majority
}

// alignToMinuteStart adjusts a minute-boundary estimate forward by whole
// minutes until it lies in the future, then busy-waits until it arrives.
// Spec §4.4: the peak found during the 65s scan can land anywhere inside
// that window, so the estimate may already be in the past by the time the
// scan finishes.
func (r *Receiver) alignToMinuteStart(t0 uint32) uint32 {
	for !after(t0, r.clock.NowMillis()) {
		t0 += 60000
	}

	logDebug(r.logger, "msf: aligning to minute start", "wait_ms", elapsed(t0, r.clock.NowMillis()))

	for !after(r.clock.NowMillis(), t0) {
		r.sleeper.DelayMillis(1)
	}

	return t0
}

// sampleSeconds implements spec §4.4: from t0, walk 60 one-second slots,
// sampling the carrier inside the two narrow bit windows and voting by
// majority. It writes into the receiver's A/B payload registers and
// returns the list of seconds flagged as noisy.
func (r *Receiver) sampleSeconds(t0 uint32) []int {
	var noisy []int

	for k := 0; k < 60; k++ {
		nextBoundary := t0 + uint32(1000*(k+1))

		var highA, totalA, highB, totalB int

		for {
			now := r.clock.NowMillis()
			if after(now, nextBoundary) {
				break
			}

			carrier := r.reader.Read()
			bit := !carrier // MSF payload convention: silence=1, carrier=0

			msIntoSecond := elapsed(now, t0) % 1000
			switch {
			case msIntoSecond >= windowAStart && msIntoSecond <= windowAEnd:
				totalA++
				if bit {
					highA++
				}
			case msIntoSecond >= windowBStart && msIntoSecond <= windowBEnd:
				totalB++
				if bit {
					highB++
				}
			}

			r.sleeper.DelayMicros(perSecondPollMicros)
		}

		pctA := majorityPercent(highA, totalA)
		pctB := majorityPercent(highB, totalB)

		a := majorityBit(pctA)
		b := majorityBit(pctB)
		r.payloadA.set(k, a)
		r.payloadB.set(k, b)

		secondNoisy := false
		if pctA > noisyLow && pctA < noisyHigh {
			secondNoisy = true
		}
		if pctB > noisyLow && pctB < noisyHigh {
			secondNoisy = true
		}
		if secondNoisy {
			noisy = append(noisy, k)
		}

		logDebug(r.logger, "msf: second sampled",
			"sec", k, "a", a, "pct_a", pctA, "b", b, "pct_b", pctB, "noisy", secondNoisy,
		)
	}

	return noisy
}

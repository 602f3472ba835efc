package msf

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// referenceScore recomputes the confidence score by brute-force recount
// over the two sub-windows, given the full sample history fed so far
// (most recent last). Ages beyond the recorded history fall back to the
// buffer's initial "steady carrier" fill, exactly like the real circular
// buffer would still report for positions it hasn't overwritten yet.
func referenceScore(hist []bool, p Params) int {
	n := len(hist)
	at := func(age int) bool {
		idx := n - age
		if idx < 0 {
			return true
		}
		return hist[idx]
	}

	silence := 0
	for age := 1; age <= p.SamplesSilence; age++ {
		if !at(age) {
			silence++
		}
	}

	carrier := 0
	for age := p.SamplesSilence + 1; age <= p.Lookback; age++ {
		if at(age) {
			carrier++
		}
	}

	return silence + carrier
}

// Properties 1 & 2 (spec §8): the incremental score matches a full
// recount, and both running counts stay within their legal ranges, for
// every sequence of inputs and every sample period the spec calls out.
func TestScorerEquivalenceAndRange(t *testing.T) {
	for _, period := range []int{10, 20, 50, 100} {
		period := period
		t.Run(fmt.Sprintf("S=%d", period), func(t *testing.T) {
			rapid.Check(t, func(rt *rapid.T) {
				p, err := NewParams(period)
				require.NoError(t, err)

				sc := newScorer(p)
				var hist []bool

				n := rapid.IntRange(0, 400).Draw(rt, "n")
				for i := 0; i < n; i++ {
					v := rapid.Bool().Draw(rt, "sample")
					got := sc.feed(v)
					hist = append(hist, v)

					want := referenceScore(hist, p)
					if got != want {
						rt.Fatalf("step %d: incremental score %d != recount %d", i, got, want)
					}
					if sc.carrierScore < 0 || sc.carrierScore > p.SamplesCarrier {
						rt.Fatalf("step %d: carrierScore %d out of [0,%d]", i, sc.carrierScore, p.SamplesCarrier)
					}
					if sc.silenceScore < 0 || sc.silenceScore > p.SamplesSilence {
						rt.Fatalf("step %d: silenceScore %d out of [0,%d]", i, sc.silenceScore, p.SamplesSilence)
					}
				}
			})
		})
	}
}

// Property 3 (spec §8): immediately after reset, feeding SamplesCarrier
// carrier samples then SamplesSilence silence samples yields the maximum
// confidence of Lookback.
func TestScorerResetThenPerfectMarkerReachesMaxConfidence(t *testing.T) {
	for _, period := range []int{10, 20, 50, 100} {
		p, err := NewParams(period)
		require.NoError(t, err)

		sc := newScorer(p)
		sc.reset()

		var last int
		for i := 0; i < p.SamplesCarrier; i++ {
			last = sc.feed(true)
		}
		for i := 0; i < p.SamplesSilence; i++ {
			last = sc.feed(false)
		}

		require.Equal(t, p.Lookback, last, "S=%d", period)
	}
}

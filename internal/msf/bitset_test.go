package msf

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Property 4 (spec §8): setBit/getBit round-trip without disturbing any
// other position, for any bit position in a buffer of 1 to 400 bits. That
// covers the 60-bit payload registers and the circular buffer for sample
// periods of 4ms and up; the larger buffers of S = 1..3 are not drawn.
func TestBitsetRoundTripDoesNotDisturbOtherBits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 400).Draw(rt, "n")
		b := newBitset(n)

		initial := make([]bool, n)
		for i := range initial {
			initial[i] = rapid.Bool().Draw(rt, "init")
			b.set(i, initial[i])
		}

		target := rapid.IntRange(0, n-1).Draw(rt, "target")
		newVal := rapid.Bool().Draw(rt, "newVal")
		b.set(target, newVal)

		if b.get(target) != newVal {
			rt.Fatalf("bit %d: got %v want %v", target, b.get(target), newVal)
		}
		for i := range initial {
			if i == target {
				continue
			}
			if b.get(i) != initial[i] {
				rt.Fatalf("bit %d disturbed by writing bit %d", i, target)
			}
		}
	})
}

func TestPayloadRegisterClampsOutOfRangeReads(t *testing.T) {
	p := newPayloadRegister()
	require.False(t, p.get(-1))
	require.False(t, p.get(60))
	require.False(t, p.get(1000))

	p.set(59, true)
	require.True(t, p.get(59))

	// out-of-range writes are no-ops, not panics
	p.set(60, true)
	p.set(-1, true)
}

package msf

// scorer maintains the O(1) rolling-window confidence estimate over the
// circular sample buffer described in spec §4.2. It tracks two running
// counts: how many of the most recent SamplesSilence samples look like
// silence, and how many of the SamplesCarrier samples just before those
// look like carrier.
type scorer struct {
	params        Params
	buf           *bitset
	head          int
	carrierScore  int
	silenceScore  int
}

func newScorer(p Params) *scorer {
	s := &scorer{params: p, buf: newBitset(p.BufferLen)}
	s.reset()
	return s
}

// reset restores the buffer to all-1s ("steady carrier") and seeds the
// running scores as if that history were real, per spec §3.
func (s *scorer) reset() {
	s.buf.fillOnes()
	s.head = 0
	s.carrierScore = s.params.SamplesCarrier
	s.silenceScore = 0
}

// feed pushes one new carrier/silence sample and returns the combined
// confidence score. true means carrier present, false means silence.
func (s *scorer) feed(carrier bool) int {
	p := s.params

	silenceEdge := s.buf.get(modIndex(s.head-p.SamplesSilence, p.BufferLen))
	carrierEdge := s.buf.get(modIndex(s.head-p.Lookback, p.BufferLen))

	if silenceEdge {
		s.carrierScore++
	}
	if carrierEdge {
		s.carrierScore--
	}
	if !carrier {
		s.silenceScore++
	}
	if !silenceEdge {
		s.silenceScore--
	}

	s.buf.set(s.head, carrier)
	s.head++
	if s.head >= p.BufferLen {
		s.head = 0
	}

	return s.carrierScore + s.silenceScore
}

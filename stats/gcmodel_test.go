package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCModelBinsSumToOne(t *testing.T) {
	for _, length := range []int{1, 2, 7, 33, 50, 99} {
		m := NewGCModel(length)
		var bins [NumGCBins]float64
		for gc := 0; gc <= length; gc++ {
			d := m.Distribution(gc)
			require.NotEmpty(t, d, "length %d gc %d", length, gc)
			for i := 1; i < len(d); i++ {
				assert.Equal(t, d[i-1].Percent+1, d[i].Percent)
			}
			m.Apply(gc, &bins)
		}
		for p, v := range bins {
			if v != 0 {
				assert.InDelta(t, 1.0, v, 1e-9, "length %d bin %d", length, p)
			}
		}
		assert.InDelta(t, 1.0, bins[0], 1e-9)
		assert.InDelta(t, 1.0, bins[100], 1e-9)
	}
}

func TestGCModelExtremes(t *testing.T) {
	m := NewGCModel(99)
	low := m.Distribution(0)
	assert.Equal(t, 0, low[0].Percent)
	for _, v := range low[1:] {
		assert.True(t, v.Increment < low[0].Increment)
	}
	high := m.Distribution(99)
	assert.Equal(t, 100, high[len(high)-1].Percent)
	assert.Equal(t, high, m.Distribution(150))
}

func TestGCModelZeroLength(t *testing.T) {
	m := NewGCModel(0)
	assert.Equal(t, []GCValue{{Percent: 0, Increment: 1}}, m.Distribution(0))
}

func TestGCModelsClamp(t *testing.T) {
	ms := DefaultGCModels()
	assert.Same(t, ms, DefaultGCModels())
	for l := 0; l < ShortReadThreshold; l++ {
		assert.Equal(t, l, ms.For(l).ReadLength())
	}
	assert.Same(t, ms.For(MaxGCModelLength), ms.For(ShortReadThreshold))
	assert.Same(t, ms.For(MaxGCModelLength), ms.For(10000))
}

func TestLongReadGCUsesPrefix(t *testing.T) {
	s := newTestStats(t, true)
	bases := make([]byte, 150)
	for i := range bases {
		bases[i] = 'G'
		if i >= MaxGCModelLength {
			bases[i] = 'A'
		}
	}
	r := NewRead(bases, make([]byte, 150))
	for i := range r.Qualities {
		r.Qualities[i] = 'I'
	}
	assert.NoError(t, s.Collect(r))
	gc := s.GCCount()
	assert.Equal(t, 1.0, gc[100])
	assert.Equal(t, uint64(MaxGCModelLength), s.TotalGC)
}

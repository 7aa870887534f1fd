package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQCMetrics(t *testing.T) {
	fs := newTestStats(t, true)
	dup := NewDuplicationStats()
	sm := Map{"basic": fs, "duplication": dup}
	for _, r := range []*Read{
		NewRead([]byte("ACGN"), []byte("IIII")),
		NewRead([]byte("ACGN"), []byte("####")),
		NewRead([]byte("TTTT"), []byte("IIII")),
		NewRead([]byte("GGCC"), []byte("II##")),
	} {
		require.NoError(t, sm.Collect(r))
	}
	sm.Finalize()

	m := &QCMetrics{}
	require.NoError(t, m.Calculate(sm))
	assert.InDelta(t, 0.25, float64(m.PoorReads), 1e-9)
	assert.InDelta(t, 6.0/16, float64(m.LowQualityBases), 1e-9)
	assert.InDelta(t, 2.0/16, float64(m.NBases), 1e-9)
	assert.InDelta(t, 8.0/16, float64(m.GC), 1e-9)
	assert.InDelta(t, 0.25, float64(m.Duplicated), 1e-9)

	var out bytes.Buffer
	require.NoError(t, m.Output(&out))
	assert.Contains(t, out.String(), "FRACTION_POOR_READS\t0.25\n")
	assert.Contains(t, out.String(), "FRACTION_N_BASES\t0.125\n")
}

func TestQCMetricsWithoutBasic(t *testing.T) {
	m := &QCMetrics{}
	assert.Error(t, m.Calculate(Map{"duplication": NewDuplicationStats()}))
}

package stats

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicationCounts(t *testing.T) {
	s := NewDuplicationStats()
	long := bytes.Repeat([]byte("ACGTG"), 20)
	otherTail := append(append([]byte{}, long[:DupReadTruncateSize]...), bytes.Repeat([]byte{'T'}, 50)...)
	for _, r := range []*Read{
		testRead("ACGT", 'I', 0),
		testRead("ACGT", 'I', 0),
		testRead("ACGT", 'I', 0),
		testRead("TTTT", 'I', 0),
		testRead(string(long), 'I', 0),
		testRead(string(otherTail), 'I', 0),
		NewRead(nil, nil),
	} {
		require.NoError(t, s.Collect(r))
	}
	s.Finalize()

	assert.Equal(t, uint64(6), s.NumReads)
	assert.Equal(t, 3, s.NumUniqueSeen)
	assert.Equal(t, uint64(6), s.CountAtLimit)
	assert.Equal(t, uint64(3), s.Count([]byte("ACGT")))
	assert.Equal(t, uint64(2), s.Count(long))
	assert.Equal(t, CountMap{1: 1, 2: 1, 3: 1}, s.Levels)
	assert.InDelta(t, 0.5, float64(s.Remaining), 1e-9)

	require.Len(t, s.Overrepresented, 3)
	assert.Equal(t, "ACGT", s.Overrepresented[0].Sequence)
	assert.InDelta(t, 50.0, float64(s.Overrepresented[0].Percentage), 1e-9)
}

func TestDuplicationCutoff(t *testing.T) {
	if testing.Short() {
		t.Skip("fills the duplication table")
	}
	s := NewDuplicationStats()
	for i := 0; i < DupUniqueCutoff; i++ {
		require.NoError(t, s.Collect(testRead(fmt.Sprintf("A%07dC", i), 'I', 0)))
	}
	require.NoError(t, s.Collect(testRead("NEWSEQUENCE", 'I', 0)))
	require.NoError(t, s.Collect(testRead("A0000000C", 'I', 0)))

	assert.Equal(t, DupUniqueCutoff, s.NumUniqueSeen)
	assert.Equal(t, uint64(DupUniqueCutoff), s.CountAtLimit)
	assert.Zero(t, s.Count([]byte("NEWSEQUENCE")))
	assert.Equal(t, uint64(2), s.Count([]byte("A0000000C")))
}

func TestCorrectedCount(t *testing.T) {
	assert.Equal(t, 5.0, correctedCount(100, 100, 3, 5))
	c := correctedCount(1000, 100000, 1, 10)
	assert.True(t, c > 10)
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTileRegistryRectangular(t *testing.T) {
	r := NewTileRegistry()
	r.Record(1101, 3, 40)
	r.Extend()
	r.Extend()
	r.Record(1102, ShortReadThreshold+1, 30)
	r.Extend()
	r.Record(1103, 0, 20)

	assert.Equal(t, []int{1101, 1102, 1103}, r.Tiles())
	for _, tile := range r.Tiles() {
		assert.Equal(t, 3, r.TailLen(tile), "tile %d", tile)
	}
	assert.Equal(t, -1, r.TailLen(9999))

	q, n := r.At(1102, ShortReadThreshold+1)
	assert.Equal(t, uint64(30), q)
	assert.Equal(t, uint64(1), n)
	q, n = r.At(1101, ShortReadThreshold+2)
	assert.Zero(t, q)
	assert.Zero(t, n)
	assert.Equal(t, 40.0, r.Mean(1101, 3))
	assert.Zero(t, r.Mean(1101, 4))
}

func TestTileRegistryRecordUnallocated(t *testing.T) {
	r := NewTileRegistry()
	assert.Panics(t, func() { r.Record(1, ShortReadThreshold, 30) })
}

func TestTileRegistryUpdate(t *testing.T) {
	a, b := NewTileRegistry(), NewTileRegistry()
	a.Record(1, 0, 10)
	b.Extend()
	b.Extend()
	b.Record(1, 0, 20)
	b.Record(2, ShortReadThreshold+1, 30)

	a.Update(b)
	assert.Equal(t, 2, a.Width())
	assert.Equal(t, 2, a.Len())
	for _, tile := range a.Tiles() {
		assert.Equal(t, 2, a.TailLen(tile))
	}
	q, n := a.At(1, 0)
	assert.Equal(t, uint64(30), q)
	assert.Equal(t, uint64(2), n)
	assert.Equal(t, 30.0, a.Mean(2, ShortReadThreshold+1))
}

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyRoundTrip(t *testing.T) {
	for _, d := range []Domain{PositionDomain, NucleotideDomain, QualityDomain, KmerDomain, AdapterDomain} {
		for _, pos := range []int{0, 1, ShortReadThreshold - 1, ShortReadThreshold, 12345} {
			for _, sym := range []int{0, d.Mask / 2, d.Mask} {
				k := Key{Pos: pos, Symbol: sym}
				assert.Equal(t, k, d.Decode(d.Encode(k)), "%s %v", d.Name, k)
			}
		}
	}
}

func TestKeyDistinct(t *testing.T) {
	seen := make(map[int]Key)
	for pos := 0; pos < 8; pos++ {
		for sym := 0; sym < NumQualityValues; sym++ {
			k := Key{pos, sym}
			i := QualityDomain.Encode(k)
			if prev, ok := seen[i]; ok {
				t.Fatalf("%v and %v share index %d", prev, k, i)
			}
			seen[i] = k
		}
	}
}

func TestKeyKmerMask(t *testing.T) {
	i := KmerDomain.Encode(Key{Pos: 3, Symbol: KmerMask + 1 + 5})
	assert.Equal(t, Key{Pos: 3, Symbol: 5}, KmerDomain.Decode(i))
}

func TestKeyOverflowPanics(t *testing.T) {
	assert.Panics(t, func() { NucleotideDomain.Encode(Key{Pos: 0, Symbol: NumNucleotides}) })
	assert.Panics(t, func() { QualityDomain.Encode(Key{Pos: 0, Symbol: NumQualityValues}) })
	assert.Panics(t, func() { AdapterDomain.Encode(Key{Pos: 0, Symbol: MaxAdapters}) })
	assert.Panics(t, func() { QualityDomain.Encode(Key{Pos: -1, Symbol: 0}) })
}

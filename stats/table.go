package stats

import "fmt"

// positionTable is a logical [position][symbol] counter stored as a fixed
// region for positions below ShortReadThreshold and a growable tail for the
// rest. slot is the only place where the two regions are told apart.
type positionTable struct {
	domain Domain
	fixed  []uint64
	long   []uint64
}

func newPositionTable(d Domain) *positionTable {
	return &positionTable{
		domain: d,
		fixed:  make([]uint64, ShortReadThreshold<<d.Shift),
	}
}

// tailLen is the number of positions allocated in the tail.
func (t *positionTable) tailLen() int {
	return len(t.long) >> t.domain.Shift
}

// Len is the number of addressable positions.
func (t *positionTable) Len() int {
	return ShortReadThreshold + t.tailLen()
}

// extend appends one position worth of zeroed slots to the tail.
func (t *positionTable) extend() {
	t.long = append(t.long, make([]uint64, t.domain.Width())...)
}

func (t *positionTable) slot(pos, symbol int) *uint64 {
	if pos < ShortReadThreshold {
		return &t.fixed[t.domain.Encode(Key{pos, symbol})]
	}
	i := t.domain.Encode(Key{pos - ShortReadThreshold, symbol})
	if i >= len(t.long) {
		panic(fmt.Sprintf("stats: position %d recorded before its %s slot was allocated", pos, t.domain.Name))
	}
	return &t.long[i]
}

func (t *positionTable) Inc(pos, symbol int) {
	*t.slot(pos, symbol)++
}

func (t *positionTable) Add(pos, symbol int, n uint64) {
	*t.slot(pos, symbol) += n
}

// At returns the count at (pos, symbol); positions never allocated read
// as zero.
func (t *positionTable) At(pos, symbol int) uint64 {
	if pos >= t.Len() {
		return 0
	}
	return *t.slot(pos, symbol)
}

// Row returns a copy of every symbol count at pos.
func (t *positionTable) Row(pos int) []uint64 {
	row := make([]uint64, t.domain.Width())
	if pos >= t.Len() {
		return row
	}
	for s := range row {
		row[s] = t.At(pos, s)
	}
	return row
}

// update adds every count of other, growing the tail first if other is
// longer.
func (t *positionTable) update(other *positionTable) {
	for t.tailLen() < other.tailLen() {
		t.extend()
	}
	for i, v := range other.fixed {
		t.fixed[i] += v
	}
	for i, v := range other.long {
		t.long[i] += v
	}
}

package stats

import (
	"fmt"
	"sort"
)

type tileSeries struct {
	quality     [ShortReadThreshold]uint64
	count       [ShortReadThreshold]uint64
	longQuality []uint64
	longCount   []uint64
}

// TileRegistry maps tile identifiers to per-position quality sums and
// observation counts. Every tile has the same tail width: Extend grows all
// of them at once and tiles created later are backfilled to that width.
type TileRegistry struct {
	width int
	tiles map[int]*tileSeries
}

// NewTileRegistry creates an empty registry.
func NewTileRegistry() *TileRegistry {
	return &TileRegistry{tiles: make(map[int]*tileSeries)}
}

// Width is the length of every tile's tail, beyond ShortReadThreshold.
func (r *TileRegistry) Width() int {
	return r.width
}

// Len is the number of tiles seen.
func (r *TileRegistry) Len() int {
	return len(r.tiles)
}

// Extend adds one tail position to every tile.
func (r *TileRegistry) Extend() {
	r.width++
	for _, s := range r.tiles {
		s.longQuality = append(s.longQuality, 0)
		s.longCount = append(s.longCount, 0)
	}
}

func (r *TileRegistry) series(tile int) *tileSeries {
	s, ok := r.tiles[tile]
	if !ok {
		s = &tileSeries{
			longQuality: make([]uint64, r.width),
			longCount:   make([]uint64, r.width),
		}
		r.tiles[tile] = s
	}
	return s
}

// Record adds quality at pos for tile, creating the tile if needed.
func (r *TileRegistry) Record(tile, pos int, quality byte) {
	s := r.series(tile)
	if pos < ShortReadThreshold {
		s.quality[pos] += uint64(quality)
		s.count[pos]++
		return
	}
	i := pos - ShortReadThreshold
	if i >= r.width {
		panic(fmt.Sprintf("stats: tile position %d recorded before it was allocated", pos))
	}
	s.longQuality[i] += uint64(quality)
	s.longCount[i]++
}

// Tiles returns the tile identifiers in ascending order.
func (r *TileRegistry) Tiles() []int {
	ids := make([]int, 0, len(r.tiles))
	for id := range r.tiles {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// At returns the quality sum and count of tile at pos.
func (r *TileRegistry) At(tile, pos int) (quality, count uint64) {
	s, ok := r.tiles[tile]
	if !ok {
		return 0, 0
	}
	if pos < ShortReadThreshold {
		return s.quality[pos], s.count[pos]
	}
	i := pos - ShortReadThreshold
	if i >= r.width {
		return 0, 0
	}
	return s.longQuality[i], s.longCount[i]
}

// TailLen returns the tail length of a tile, -1 if the tile is unknown.
func (r *TileRegistry) TailLen(tile int) int {
	s, ok := r.tiles[tile]
	if !ok {
		return -1
	}
	return len(s.longCount)
}

// Mean returns the mean raw quality of tile at pos, 0 without observations.
func (r *TileRegistry) Mean(tile, pos int) float64 {
	q, n := r.At(tile, pos)
	if n == 0 {
		return 0
	}
	return float64(q) / float64(n)
}

// Update adds every tile of other into r.
func (r *TileRegistry) Update(other *TileRegistry) {
	for r.width < other.width {
		r.Extend()
	}
	for id, o := range other.tiles {
		s := r.series(id)
		for i := range o.quality {
			s.quality[i] += o.quality[i]
			s.count[i] += o.count[i]
		}
		for i := range o.longCount {
			s.longQuality[i] += o.longQuality[i]
			s.longCount[i] += o.longCount[i]
		}
	}
}

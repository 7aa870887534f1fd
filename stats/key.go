package stats

import "fmt"

// A Key addresses one cell of a logical two dimensional table: a position
// within the read and a symbol counted at that position.
type Key struct {
	Pos    int
	Symbol int
}

// A Domain describes how a symbol family is packed next to a position in a
// flat counter index: index = Pos<<Shift | Symbol.
type Domain struct {
	Name  string
	Shift uint
	// Mask covers every valid symbol. Masked domains fold larger values
	// into range instead of rejecting them.
	Mask   int
	masked bool
}

// The domains used by the accumulator. Every table indexes through one of
// these so that widths are defined once.
var (
	PositionDomain   = Domain{Name: "position", Shift: 0, Mask: 0}
	NucleotideDomain = Domain{Name: "nucleotide", Shift: bitShiftNucleotide, Mask: 1<<bitShiftNucleotide - 1}
	QualityDomain    = Domain{Name: "quality", Shift: bitShiftQuality, Mask: 1<<bitShiftQuality - 1}
	KmerDomain       = Domain{Name: "kmer", Shift: bitShiftKmer, Mask: KmerMask, masked: true}
	AdapterDomain    = Domain{Name: "adapter", Shift: bitShiftAdapter, Mask: 1<<bitShiftAdapter - 1}
)

// Width is the number of slots a single position occupies.
func (d Domain) Width() int {
	return 1 << d.Shift
}

// Encode packs k into a flat index. Negative positions and symbols wider
// than the domain are programming errors and panic.
func (d Domain) Encode(k Key) int {
	sym := k.Symbol
	if d.masked {
		sym &= d.Mask
	} else if sym < 0 || sym > d.Mask {
		panic(fmt.Sprintf("stats: symbol %d out of range for %s domain", sym, d.Name))
	}
	if k.Pos < 0 {
		panic(fmt.Sprintf("stats: negative position %d", k.Pos))
	}
	return k.Pos<<d.Shift | sym
}

// Decode unpacks an index produced by Encode.
func (d Domain) Decode(index int) Key {
	return Key{Pos: index >> d.Shift, Symbol: index & d.Mask}
}

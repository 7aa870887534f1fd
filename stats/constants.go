package stats

// Sizes shared by the accumulator and any consumer of its tables. The
// shift widths below depend on them: changing KmerSize or NumQualityValues
// means revisiting every Domain in key.go.
const (
	// ShortReadThreshold is the first position stored in the dynamic tail.
	ShortReadThreshold = 100

	// NumNucleotides counts A, C, G and T. N is counted separately.
	NumNucleotides = 4
	// NumQualityValues is the number of raw quality symbols tracked.
	NumQualityValues = 128
	// KmerSize is the length of the k-mers counted per position.
	KmerSize = 7
	// KmerMask keeps the 2*KmerSize low bits of a rolling k-mer.
	KmerMask = 1<<(2*KmerSize) - 1
	// MaxAdapters bounds the number of adapters searched for.
	MaxAdapters = 16
	// NumGCBins is the number of GC percentage bins (0..100).
	NumGCBins = 101

	// DupUniqueCutoff is the number of distinct sequences admitted by the
	// duplication tracker.
	DupUniqueCutoff = 100000
	// DupReadMaxSize is the longest read kept whole for duplication.
	DupReadMaxSize = 75
	// DupReadTruncateSize is the prefix kept from longer reads.
	DupReadTruncateSize = 50

	// DefaultQualityOffset is the Sanger/Illumina 1.8+ ASCII offset.
	DefaultQualityOffset = 33
	// DefaultPoorQuality is the phred mean below which a read is poor.
	DefaultPoorQuality = 20
)

const (
	bitShiftNucleotide = 2
	bitShiftQuality    = 7
	bitShiftKmer       = 2 * KmerSize
	bitShiftAdapter    = 4
)

// nucleotide codes; also the 2-bit k-mer alphabet.
const (
	baseA = iota
	baseC
	baseG
	baseT
	baseN = -1
)

var nucleotideIndex [256]int8

func init() {
	for i := range nucleotideIndex {
		nucleotideIndex[i] = baseN
	}
	for _, b := range []struct {
		c    byte
		code int8
	}{
		{'A', baseA}, {'C', baseC}, {'G', baseG}, {'T', baseT},
		{'a', baseA}, {'c', baseC}, {'g', baseG}, {'t', baseT},
		{'U', baseT}, {'u', baseT},
	} {
		nucleotideIndex[b.c] = b.code
	}
}

// Nucleotide returns the 2-bit code of base, or -1 for N and any other
// symbol.
func Nucleotide(base byte) int {
	return int(nucleotideIndex[base])
}

// NucleotideSymbols lists the bases in code order.
var NucleotideSymbols = [NumNucleotides]byte{'A', 'C', 'G', 'T'}

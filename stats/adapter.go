package stats

import "github.com/pkg/errors"

// Adapter is a sequence searched for in reads. Only its leading KmerSize
// bases take part in matching.
type Adapter struct {
	Name     string `mapstructure:"name" json:"name"`
	Sequence string `mapstructure:"sequence" json:"sequence"`
}

// DefaultAdapters are the commonly used Illumina and SOLiD adapters plus
// poly-A and poly-G tails.
var DefaultAdapters = []Adapter{
	{"Illumina Universal Adapter", "AGATCGGAAGAG"},
	{"Illumina Small RNA 3' Adapter", "TGGAATTCTCGG"},
	{"Illumina Small RNA 5' Adapter", "GATCGTCGGACT"},
	{"Nextera Transposase Sequence", "CTGTCTCTTATA"},
	{"SOLID Small RNA Adapter", "CGCCTTGGCCGT"},
	{"PolyA", "AAAAAAAAAAAA"},
	{"PolyG", "GGGGGGGGGGGG"},
}

// Kmer returns the 2-bit packed leading k-mer of the adapter.
func (a Adapter) Kmer() (int, error) {
	if len(a.Sequence) < KmerSize {
		return 0, errors.Errorf("adapter %q shorter than %d bases", a.Name, KmerSize)
	}
	kmer := 0
	for i := 0; i < KmerSize; i++ {
		code := Nucleotide(a.Sequence[i])
		if code < 0 {
			return 0, errors.Errorf("adapter %q has non-ACGT base %q", a.Name, a.Sequence[i])
		}
		kmer = (kmer<<2 | code) & KmerMask
	}
	return kmer, nil
}

func adapterKmers(adapters []Adapter) ([]int, error) {
	if len(adapters) > MaxAdapters {
		return nil, errors.Errorf("%d adapters given, at most %d supported", len(adapters), MaxAdapters)
	}
	kmers := make([]int, len(adapters))
	for i, a := range adapters {
		k, err := a.Kmer()
		if err != nil {
			return nil, err
		}
		kmers[i] = k
	}
	return kmers, nil
}

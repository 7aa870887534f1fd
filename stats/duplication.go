package stats

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// overrepresentedFraction is the share of all reads above which a sequence
// is reported as overrepresented.
const overrepresentedFraction = 0.001

type sequenceCount struct {
	seq   string
	count uint64
}

// OverrepresentedSequence is a sequence seen in more than 0.1% of reads.
type OverrepresentedSequence struct {
	Sequence   string   `json:"sequence"`
	Count      uint64   `json:"count"`
	Percentage fraction `json:"percentage"`
}

// DuplicationStats counts how often each read sequence occurs. Only the
// first DupUniqueCutoff distinct sequences are admitted; once the table is
// full only sequences already in it are counted, and CountAtLimit keeps the
// number of reads seen while it was still open.
type DuplicationStats struct {
	NumReads        uint64                    `json:"reads"`
	NumUniqueSeen   int                       `json:"unique_seen"`
	CountAtLimit    uint64                    `json:"count_at_limit"`
	Levels          CountMap                  `json:"levels"`
	CorrectedLevels map[int]float64           `json:"corrected_levels"`
	Remaining       fraction                  `json:"remaining_fraction"`
	Overrepresented []OverrepresentedSequence `json:"overrepresented,omitempty"`
	sequences       map[uint64]*sequenceCount
}

// NewDuplicationStats creates an empty DuplicationStats.
func NewDuplicationStats() *DuplicationStats {
	return &DuplicationStats{
		Levels:    make(CountMap),
		sequences: make(map[uint64]*sequenceCount),
	}
}

// Collect counts the (possibly truncated) sequence of read.
func (s *DuplicationStats) Collect(read *Read) error {
	if err := read.validate(); err != nil {
		return err
	}
	if read.Length == 0 {
		return nil
	}
	s.NumReads++
	seq := read.Bases
	if len(seq) > DupReadMaxSize {
		seq = seq[:DupReadTruncateSize]
	}
	open := s.NumUniqueSeen < DupUniqueCutoff
	key := xxhash.Sum64(seq)
	if sc, ok := s.sequences[key]; ok {
		sc.count++
	} else if open {
		s.sequences[key] = &sequenceCount{seq: string(seq), count: 1}
		s.NumUniqueSeen++
	}
	if open {
		s.CountAtLimit = s.NumReads
	}
	return nil
}

// Update adds the counts of another DuplicationStats. The result is an
// approximation once either side has hit DupUniqueCutoff.
func (s *DuplicationStats) Update(other Stats) {
	o, ok := other.(*DuplicationStats)
	if !ok {
		return
	}
	s.NumReads += o.NumReads
	s.CountAtLimit += o.CountAtLimit
	for key, osc := range o.sequences {
		if sc, ok := s.sequences[key]; ok {
			sc.count += osc.count
			continue
		}
		s.sequences[key] = &sequenceCount{seq: osc.seq, count: osc.count}
		s.NumUniqueSeen++
	}
}

// Merge updates counts from a channel of Stats instances.
func (s *DuplicationStats) Merge(others chan Stats) {
	for other := range others {
		s.Update(other)
	}
}

// Finalize computes the duplication levels, the fraction of reads left
// after deduplication and the overrepresented sequences.
func (s *DuplicationStats) Finalize() {
	s.Levels = make(CountMap)
	s.Overrepresented = nil
	for _, sc := range s.sequences {
		s.Levels[int(sc.count)]++
		if float64(sc.count) > float64(s.NumReads)*overrepresentedFraction {
			s.Overrepresented = append(s.Overrepresented, OverrepresentedSequence{
				Sequence:   sc.seq,
				Count:      sc.count,
				Percentage: fraction(100 * float64(sc.count) / float64(s.NumReads)),
			})
		}
	}
	sort.Slice(s.Overrepresented, func(i, j int) bool {
		a, b := s.Overrepresented[i], s.Overrepresented[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Sequence < b.Sequence
	})

	s.CorrectedLevels = make(map[int]float64, len(s.Levels))
	var deduplicated, total float64
	for _, level := range s.Levels.Keys() {
		corrected := correctedCount(s.CountAtLimit, s.NumReads, level, s.Levels[level])
		s.CorrectedLevels[level] = corrected
		deduplicated += corrected
		total += corrected * float64(level)
	}
	s.Remaining = 0
	if total > 0 {
		s.Remaining = fraction(deduplicated / total)
	}
}

// correctedCount extrapolates the number of distinct sequences at a
// duplication level from those observed while the table was open, given
// the chance that such a sequence was seen before the limit at all.
func correctedCount(countAtLimit, total uint64, level int, observed uint64) float64 {
	if countAtLimit == total || total-observed < countAtLimit {
		return float64(observed)
	}
	pNotSeen := 1.0
	limitOfCaring := 1 - float64(observed)/(float64(observed)+0.01)
	for i := uint64(0); i < countAtLimit; i++ {
		pNotSeen *= (float64(total-i) - float64(level)) / float64(total-i)
		if pNotSeen < limitOfCaring {
			pNotSeen = 0
			break
		}
	}
	return float64(observed) / (1 - pNotSeen)
}

// Count returns how often seq (after truncation) was seen.
func (s *DuplicationStats) Count(seq []byte) uint64 {
	if len(seq) > DupReadMaxSize {
		seq = seq[:DupReadTruncateSize]
	}
	if sc, ok := s.sequences[xxhash.Sum64(seq)]; ok {
		return sc.count
	}
	return 0
}

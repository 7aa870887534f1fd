package stats

import "encoding/json"

// BaseComposition is the percentage of each base at one position.
type BaseComposition struct {
	A fraction `json:"A"`
	C fraction `json:"C"`
	G fraction `json:"G"`
	T fraction `json:"T"`
	N fraction `json:"N"`
}

// QualityBox summarizes the phred qualities observed at one position.
type QualityBox struct {
	Mean          fraction `json:"mean"`
	P10           int      `json:"p10"`
	LowerQuartile int      `json:"lower_quartile"`
	Median        int      `json:"median"`
	UpperQuartile int      `json:"upper_quartile"`
	P90           int      `json:"p90"`
}

// Report is a read-only view of a summarized FastqStats, positions of the
// fixed region and the dynamic tail concatenated.
type Report struct {
	Reads                 uint64                `json:"reads"`
	EmptyReads            uint64                `json:"empty_reads"`
	PoorReads             uint64                `json:"poor_reads"`
	TotalBases            uint64                `json:"total_bases"`
	LowQualityBases       uint64                `json:"low_quality_bases"`
	GCPercent             fraction              `json:"gc_percent"`
	MinReadLength         int                   `json:"min_read_length"`
	MaxReadLength         int                   `json:"max_read_length"`
	EncodingOffset        int                   `json:"encoding_offset"`
	BaseComposition       []BaseComposition     `json:"base_composition"`
	PositionQuality       []QualityBox          `json:"position_quality"`
	SequenceQuality       CountMap              `json:"sequence_quality"`
	GCContent             []fraction            `json:"gc_content"`
	ReadLengths           CountMap              `json:"read_lengths"`
	CumulativeReadLengths []uint64              `json:"cumulative_read_lengths"`
	AdapterContent        map[string][]fraction `json:"adapter_content,omitempty"`
	TileQuality           map[int][]fraction    `json:"tile_quality,omitempty"`
}

// Report builds the report view. Summarize must have been called.
func (s *FastqStats) Report() *Report {
	offset := s.EncodingOffset()
	r := &Report{
		Reads:           s.NumReads,
		EmptyReads:      s.EmptyReads,
		PoorReads:       s.NumPoor,
		TotalBases:      s.TotalBases,
		LowQualityBases: s.LowQualityBases,
		MinReadLength:   s.MinReadLength,
		MaxReadLength:   s.MaxReadLength,
		EncodingOffset:  offset,
		SequenceQuality: make(CountMap),
		ReadLengths:     make(CountMap),
		GCContent:       make([]fraction, NumGCBins),
	}
	if s.TotalBases > 0 {
		r.GCPercent = fraction(100 * float64(s.TotalGC) / float64(s.TotalBases))
	}
	for q, n := range s.qualityCount {
		if n > 0 {
			r.SequenceQuality[q-offset] = n
		}
	}
	var gcTotal float64
	for _, v := range s.gcCount {
		gcTotal += v
	}
	for i, v := range s.gcCount {
		if gcTotal > 0 {
			r.GCContent[i] = fraction(100 * v / gcTotal)
		}
	}
	for pos := 0; pos < s.MaxReadLength; pos++ {
		r.BaseComposition = append(r.BaseComposition, s.baseComposition(pos))
		r.PositionQuality = append(r.PositionQuality, s.qualityBox(pos, offset))
		if n := s.ReadLengthCount(pos + 1); n > 0 {
			r.ReadLengths[pos+1] = n
		}
		r.CumulativeReadLengths = append(r.CumulativeReadLengths, s.CumulativeReadLengthFreq(pos))
	}
	r.AdapterContent = s.adapterContent()
	r.TileQuality = s.tileDeviation(r.PositionQuality, offset)
	return r
}

func (s *FastqStats) baseComposition(pos int) BaseComposition {
	counts := s.baseCount.Row(pos)
	n := s.NBaseCount(pos)
	total := n
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return BaseComposition{}
	}
	pct := func(c uint64) fraction { return fraction(100 * float64(c) / float64(total)) }
	return BaseComposition{
		A: pct(counts[baseA]),
		C: pct(counts[baseC]),
		G: pct(counts[baseG]),
		T: pct(counts[baseT]),
		N: pct(n),
	}
}

func (s *FastqStats) qualityBox(pos, offset int) QualityBox {
	counts := s.positionQualityCount.Row(pos)
	var total, sum uint64
	for q, c := range counts {
		total += c
		sum += c * uint64(q)
	}
	if total == 0 {
		return QualityBox{}
	}
	percentile := func(p float64) int {
		var seen uint64
		for q, c := range counts {
			seen += c
			if float64(seen) >= p*float64(total) {
				return q - offset
			}
		}
		return len(counts) - 1 - offset
	}
	return QualityBox{
		Mean:          fraction(float64(sum)/float64(total) - float64(offset)),
		P10:           percentile(0.1),
		LowerQuartile: percentile(0.25),
		Median:        percentile(0.5),
		UpperQuartile: percentile(0.75),
		P90:           percentile(0.9),
	}
}

// adapterContent reports, per adapter and position, the cumulative
// percentage of reads in which the adapter started at or before that
// position.
func (s *FastqStats) adapterContent() map[string][]fraction {
	if len(s.adapters) == 0 || s.NumReads == 0 {
		return nil
	}
	last := s.MaxReadLength - KmerSize + 1
	if last > ShortReadThreshold {
		last = ShortReadThreshold
	}
	if last <= 0 {
		return nil
	}
	content := make(map[string][]fraction, len(s.adapters))
	for i, a := range s.adapters {
		values := make([]fraction, last)
		var cumulative uint64
		for pos := 0; pos < last; pos++ {
			cumulative += s.AdapterCount(pos, i)
			values[pos] = fraction(100 * float64(cumulative) / float64(s.NumReads))
		}
		content[a.Name] = values
	}
	return content
}

// tileDeviation reports each tile's mean quality per position minus the
// mean over all tiles at that position.
func (s *FastqStats) tileDeviation(boxes []QualityBox, offset int) map[int][]fraction {
	if s.tiles.Len() == 0 {
		return nil
	}
	deviation := make(map[int][]fraction, s.tiles.Len())
	for _, tile := range s.tiles.Tiles() {
		values := make([]fraction, len(boxes))
		for pos := range boxes {
			if _, n := s.tiles.At(tile, pos); n > 0 {
				values[pos] = fraction(s.tiles.Mean(tile, pos)-float64(offset)) - boxes[pos].Mean
			}
		}
		deviation[tile] = values
	}
	return deviation
}

// MarshalJSON encodes the report view of s.
func (s *FastqStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Report())
}

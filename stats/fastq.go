package stats

// Options configures a FastqStats accumulator.
type Options struct {
	// QualityOffset is the raw symbol of phred 0.
	QualityOffset int
	// PoorQuality is the phred floor: bases below it are low quality and
	// reads whose mean is below it are poor.
	PoorQuality int
	// IgnoreTiles disables the tile quality tracker.
	IgnoreTiles bool
	Adapters    []Adapter
	// GCModels defaults to DefaultGCModels.
	GCModels *GCModels
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		QualityOffset: DefaultQualityOffset,
		PoorQuality:   DefaultPoorQuality,
		Adapters:      DefaultAdapters,
	}
}

// FastqStats accumulates per-read and per-position statistics of a stream
// of reads.
//
// Positions below ShortReadThreshold are counted in fixed tables; longer
// reads extend a dynamic tail one position at a time through
// AllocateNewBase. A FastqStats must not be mutated concurrently: shard the
// input over several instances and combine them with Update.
type FastqStats struct {
	TotalBases      uint64
	NumReads        uint64
	EmptyReads      uint64
	NumPoor         uint64
	LowQualityBases uint64
	TotalGC         uint64
	MinReadLength   int
	MaxReadLength   int
	NumExtraBases   int
	// LowestChar is the smallest quality symbol seen, 0xff before any.
	LowestChar byte

	baseCount            *positionTable
	nBaseCount           *positionTable
	positionQualityCount *positionTable
	readLengthFreq       *positionTable
	// k-mer and adapter counts cover the fixed region only.
	posKmerCount    *positionTable
	posAdapterCount *positionTable

	qualityCount [NumQualityValues]uint64
	gcCount      [NumGCBins]float64

	cumulativeReadLengthFreq     [ShortReadThreshold]uint64
	longCumulativeReadLengthFreq []uint64

	tiles *TileRegistry

	ignoreTiles  bool
	qualityFloor int
	adapters     []Adapter
	adapterKmers []int
	gcModels     *GCModels
}

// NewFastqStats creates an empty accumulator.
func NewFastqStats(opts Options) (*FastqStats, error) {
	kmers, err := adapterKmers(opts.Adapters)
	if err != nil {
		return nil, err
	}
	models := opts.GCModels
	if models == nil {
		models = DefaultGCModels()
	}
	return &FastqStats{
		LowestChar:           0xff,
		baseCount:            newPositionTable(NucleotideDomain),
		nBaseCount:           newPositionTable(PositionDomain),
		positionQualityCount: newPositionTable(QualityDomain),
		readLengthFreq:       newPositionTable(PositionDomain),
		posKmerCount:         newPositionTable(KmerDomain),
		posAdapterCount:      newPositionTable(AdapterDomain),
		tiles:                NewTileRegistry(),
		ignoreTiles:          opts.IgnoreTiles,
		qualityFloor:         opts.QualityOffset + opts.PoorQuality,
		adapters:             opts.Adapters,
		adapterKmers:         kmers,
		gcModels:             models,
	}, nil
}

// AllocateNewBase appends one position to every dynamic table and, unless
// ignoreTile is set, to every tile. It must be called once per position
// beyond ShortReadThreshold, in order, before that position is recorded.
func (s *FastqStats) AllocateNewBase(ignoreTile bool) {
	s.baseCount.extend()
	s.nBaseCount.extend()
	s.positionQualityCount.extend()
	s.readLengthFreq.extend()
	if !ignoreTile {
		s.tiles.Extend()
	}
	s.NumExtraBases++
}

// RecordBase counts one base and its quality at pos.
func (s *FastqStats) RecordBase(pos int, base, quality byte, lowQuality bool) {
	s.TotalBases++
	switch code := Nucleotide(base); code {
	case baseN:
		s.nBaseCount.Inc(pos, 0)
	case baseC, baseG:
		s.TotalGC++
		fallthrough
	default:
		s.baseCount.Inc(pos, code)
	}
	s.positionQualityCount.Inc(pos, int(quality))
	if lowQuality {
		s.LowQualityBases++
	}
	if quality < s.LowestChar {
		s.LowestChar = quality
	}
}

// Collect adds a read. The only error is ErrMalformedRead, in which case
// nothing has been counted.
func (s *FastqStats) Collect(r *Read) error {
	if err := r.validate(); err != nil {
		return err
	}
	s.NumReads++
	if r.Length == 0 {
		s.EmptyReads++
		return nil
	}
	for pos := s.MaxReadLength; pos < r.Length; pos++ {
		if pos >= ShortReadThreshold {
			s.AllocateNewBase(s.ignoreTiles)
		}
	}
	if r.Length > s.MaxReadLength {
		s.MaxReadLength = r.Length
	}
	trackTile := r.HasTile && !s.ignoreTiles

	var gc, qualitySum, kmer, kmerLen int
	var adaptersFound uint32
	for pos := 0; pos < r.Length; pos++ {
		base, quality := r.Bases[pos], r.Qualities[pos]
		s.RecordBase(pos, base, quality, int(quality) < s.qualityFloor)
		qualitySum += int(quality)
		if trackTile {
			s.tiles.Record(r.Tile, pos, quality)
		}

		code := Nucleotide(base)
		if code < 0 {
			kmerLen = 0
			continue
		}
		if (code == baseC || code == baseG) && pos < MaxGCModelLength {
			gc++
		}
		kmer = (kmer<<2 | code) & KmerMask
		if kmerLen++; kmerLen < KmerSize {
			continue
		}
		if start := pos - KmerSize + 1; start < ShortReadThreshold {
			s.posKmerCount.Inc(start, kmer)
			for i, ak := range s.adapterKmers {
				if ak == kmer && adaptersFound&(1<<i) == 0 {
					adaptersFound |= 1 << i
					s.posAdapterCount.Inc(start, i)
				}
			}
		}
	}

	s.gcModels.Apply(r.Length, gc, &s.gcCount)
	mean := qualitySum / r.Length
	s.qualityCount[mean]++
	if mean < s.qualityFloor {
		s.NumPoor++
	}
	s.readLengthFreq.Inc(r.Length-1, 0)
	return nil
}

// Summarize derives the cumulative read length frequencies and the minimum
// read length. It recomputes from scratch, so calling it again after more
// reads or an Update is safe.
func (s *FastqStats) Summarize() {
	s.MinReadLength = 0
	s.cumulativeReadLengthFreq = [ShortReadThreshold]uint64{}
	s.longCumulativeReadLengthFreq = nil

	var cumulative uint64
	for i := 0; i < s.MaxReadLength; i++ {
		f := s.readLengthFreq.At(i, 0)
		cumulative += f
		if f > 0 && s.MinReadLength == 0 {
			s.MinReadLength = i + 1
		}
	}
	for i := 0; i < s.MaxReadLength; i++ {
		if i < ShortReadThreshold {
			s.cumulativeReadLengthFreq[i] = cumulative
		} else {
			s.longCumulativeReadLengthFreq = append(s.longCumulativeReadLengthFreq, cumulative)
		}
		cumulative -= s.readLengthFreq.At(i, 0)
	}
}

// Finalize summarizes the accumulator.
func (s *FastqStats) Finalize() {
	s.Summarize()
}

// Update adds all counts of another FastqStats instance.
func (s *FastqStats) Update(other Stats) {
	o, ok := other.(*FastqStats)
	if !ok {
		return
	}
	s.TotalBases += o.TotalBases
	s.NumReads += o.NumReads
	s.EmptyReads += o.EmptyReads
	s.NumPoor += o.NumPoor
	s.LowQualityBases += o.LowQualityBases
	s.TotalGC += o.TotalGC
	if o.LowestChar < s.LowestChar {
		s.LowestChar = o.LowestChar
	}
	for s.NumExtraBases < o.NumExtraBases {
		s.AllocateNewBase(s.ignoreTiles)
	}
	if o.MaxReadLength > s.MaxReadLength {
		s.MaxReadLength = o.MaxReadLength
	}
	s.baseCount.update(o.baseCount)
	s.nBaseCount.update(o.nBaseCount)
	s.positionQualityCount.update(o.positionQualityCount)
	s.readLengthFreq.update(o.readLengthFreq)
	s.posKmerCount.update(o.posKmerCount)
	s.posAdapterCount.update(o.posAdapterCount)
	for i, v := range o.qualityCount {
		s.qualityCount[i] += v
	}
	for i, v := range o.gcCount {
		s.gcCount[i] += v
	}
	if !s.ignoreTiles {
		s.tiles.Update(o.tiles)
	}
}

// Merge updates counts from a channel of Stats instances.
func (s *FastqStats) Merge(others chan Stats) {
	for other := range others {
		s.Update(other)
	}
}

// BaseCount returns how often nucleotide code (see Nucleotide) was seen at
// pos.
func (s *FastqStats) BaseCount(pos, code int) uint64 {
	return s.baseCount.At(pos, code)
}

// NBaseCount returns the number of N bases at pos.
func (s *FastqStats) NBaseCount(pos int) uint64 {
	return s.nBaseCount.At(pos, 0)
}

// PositionQualityCount returns the number of bases of quality symbol q at
// pos.
func (s *FastqStats) PositionQualityCount(pos, q int) uint64 {
	return s.positionQualityCount.At(pos, q)
}

// QualityCount returns the number of reads with mean quality symbol q.
func (s *FastqStats) QualityCount(q int) uint64 {
	return s.qualityCount[q]
}

// GCCount returns the per-read GC percentage distribution.
func (s *FastqStats) GCCount() [NumGCBins]float64 {
	return s.gcCount
}

// ReadLengthCount returns the number of reads of the given length.
func (s *FastqStats) ReadLengthCount(length int) uint64 {
	if length <= 0 {
		return 0
	}
	return s.readLengthFreq.At(length-1, 0)
}

// LongReadLengthFreq returns a copy of the dynamic tail of the read length
// frequency table, indexed by length-1-ShortReadThreshold.
func (s *FastqStats) LongReadLengthFreq() []uint64 {
	return append([]uint64(nil), s.readLengthFreq.long...)
}

// CumulativeReadLengthFreq returns the number of reads longer than pos.
// Valid after Summarize.
func (s *FastqStats) CumulativeReadLengthFreq(pos int) uint64 {
	if pos < ShortReadThreshold {
		return s.cumulativeReadLengthFreq[pos]
	}
	if i := pos - ShortReadThreshold; i < len(s.longCumulativeReadLengthFreq) {
		return s.longCumulativeReadLengthFreq[i]
	}
	return 0
}

// LongCumulativeReadLengthFreq returns a copy of the dynamic tail of the
// cumulative read length frequencies.
func (s *FastqStats) LongCumulativeReadLengthFreq() []uint64 {
	return append([]uint64(nil), s.longCumulativeReadLengthFreq...)
}

// KmerCount returns the number of reads with kmer starting at pos.
func (s *FastqStats) KmerCount(pos, kmer int) uint64 {
	return s.posKmerCount.At(pos, kmer)
}

// AdapterCount returns the number of reads whose first occurrence of
// adapter i starts at pos.
func (s *FastqStats) AdapterCount(pos, i int) uint64 {
	return s.posAdapterCount.At(pos, i)
}

// Adapters returns the adapters searched for, in index order.
func (s *FastqStats) Adapters() []Adapter {
	return s.adapters
}

// Tiles returns the tile quality tracker.
func (s *FastqStats) Tiles() *TileRegistry {
	return s.tiles
}

// EncodingOffset guesses the quality offset from the lowest symbol seen:
// 64 for Illumina 1.3-1.7 style data, 33 otherwise.
func (s *FastqStats) EncodingOffset() int {
	if s.LowestChar == 0xff || s.LowestChar < 64 {
		return 33
	}
	return 64
}

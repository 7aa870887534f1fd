package sam

import (
	"github.com/biogo/hts/sam"
	"github.com/guigolab/fqstats/fastq"
	"github.com/guigolab/fqstats/stats"
)

// missingQuality is the BAM filler for records stored without qualities.
const missingQuality = 0xff

type Record struct {
	*sam.Record
}

func NewRecord(r *sam.Record) *Record {
	return &Record{r}
}

func (r *Record) IsPrimary() bool {
	return r.Flags&(sam.Secondary|sam.Supplementary) == 0
}

func (r *Record) IsUnmapped() bool {
	return r.Flags&sam.Unmapped == sam.Unmapped
}

func (r *Record) IsReverse() bool {
	return r.Flags&sam.Reverse == sam.Reverse
}

func (r *Record) IsQCFail() bool {
	return r.Flags&sam.QCFail == sam.QCFail
}

// HasQualities reports whether the record carries base qualities.
func (r *Record) HasQualities() bool {
	return len(r.Qual) > 0 && r.Qual[0] != missingQuality
}

var complement [256]byte

func init() {
	for i := range complement {
		complement[i] = 'N'
	}
	for _, p := range [][2]byte{{'A', 'T'}, {'C', 'G'}, {'G', 'C'}, {'T', 'A'}, {'=', '='}} {
		complement[p[0]] = p[1]
	}
}

// Fill sets read to the record as it came off the sequencer: reverse
// strand alignments are reverse complemented back and qualities are
// shifted by offset into ASCII symbols.
func (r *Record) Fill(read *stats.Read, offset int, noTile bool) {
	bases := r.Seq.Expand()
	n := len(bases)
	read.Bases = append(read.Bases[:0], bases...)
	read.Qualities = read.Qualities[:0]
	for _, q := range r.Qual {
		read.Qualities = append(read.Qualities, byte(int(q)+offset))
	}
	if r.IsReverse() {
		for i, j := 0, n-1; i <= j; i, j = i+1, j-1 {
			read.Bases[i], read.Bases[j] = complement[read.Bases[j]], complement[read.Bases[i]]
		}
		for i, j := 0, len(read.Qualities)-1; i < j; i, j = i+1, j-1 {
			read.Qualities[i], read.Qualities[j] = read.Qualities[j], read.Qualities[i]
		}
	}
	read.Length = n
	read.Tile, read.HasTile = 0, false
	if !noTile {
		read.Tile, read.HasTile = fastq.TileFromID([]byte(r.Name))
	}
}

// Package sam reads unaligned or aligned SAM/BAM records into stats.Read
// values.
package sam

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/biogo/hts/bam"
	"github.com/biogo/hts/sam"
	"github.com/guigolab/fqstats/config"
	"github.com/guigolab/fqstats/stats"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type recordReader interface {
	Read() (*sam.Record, error)
}

// Reader yields the primary records of a SAM or BAM stream. Secondary and
// supplementary alignments are skipped so every read is seen once, as are
// records without qualities.
type Reader struct {
	FileName string
	Skipped  int
	r        recordReader
	cfg      *config.Config
	err      error
}

// IsBAM reports whether fileName names a BAM file.
func IsBAM(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".bam")
}

// NewReader returns a Reader over in. BAM decoding is used when configured
// or, with automatic detection, for .bam files; anything else is parsed as
// SAM text.
func NewReader(fileName string, in io.Reader, cfg *config.Config) (*Reader, error) {
	var (
		r   recordReader
		err error
	)
	if cfg.Format == config.FormatBAM || (cfg.Format == config.FormatAuto && IsBAM(fileName)) {
		r, err = bam.NewReader(in, cfg.Cpu)
	} else {
		r, err = sam.NewReader(in)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", fileName)
	}
	return &Reader{FileName: fileName, r: r, cfg: cfg}, nil
}

// Scan reads the next primary record into read. It returns false at the
// end of the stream or on error; check Err afterwards.
func (r *Reader) Scan(read *stats.Read) bool {
	for r.err == nil {
		record, err := r.r.Read()
		if err != nil {
			if err != io.EOF {
				r.err = errors.Wrapf(err, "reading %s", r.FileName)
			}
			return false
		}
		rec := NewRecord(record)
		if !rec.IsPrimary() {
			continue
		}
		if !rec.HasQualities() {
			r.Skipped++
			log.WithFields(log.Fields{
				"file": r.FileName,
				"read": rec.Name,
			}).Debug("Skipping record without qualities")
			continue
		}
		rec.Fill(read, r.cfg.QualityOffset, r.cfg.IgnoreTiles)
		return true
	}
	return false
}

// Err returns the reading error, if any.
func (r *Reader) Err() error {
	return r.err
}

// Package fastq reads FASTQ records into stats.Read values.
package fastq

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/guigolab/fqstats/stats"
	"github.com/pkg/errors"
)

var (
	// ErrShort is returned when a truncated FASTQ file is encountered.
	ErrShort = errors.New("short FASTQ file")
	// ErrInvalid is returned when an invalid FASTQ file is encountered.
	ErrInvalid = errors.New("invalid FASTQ file")
)

// maxLineSize bounds a single FASTQ line; long-read platforms exceed the
// bufio default by far.
const maxLineSize = 64 << 20

var errEOF = errors.New("eof")

// Scanner reads FASTQ records. It checks that ID lines begin with "@" and
// that line 3 begins with "+"; the sequence and quality lengths are checked
// by the accumulator. Scanners are not threadsafe.
type Scanner struct {
	b      *bufio.Scanner
	err    error
	line   int
	noTile bool
}

// NewScanner constructs a Scanner reading FASTQ data from r. When noTile
// is set tile identifiers are not parsed from read names.
func NewScanner(r io.Reader, noTile bool) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(make([]byte, 0, 64<<10), maxLineSize)
	return &Scanner{b: b, noTile: noTile}
}

// Scan the next record into read, which receives its own copy of the
// sequence and qualities. Scan returns false at the end of input or on
// error; check Err afterwards.
func (f *Scanner) Scan(read *stats.Read) bool {
	if f.err != nil {
		return false
	}
	if !f.b.Scan() {
		if f.err = f.b.Err(); f.err == nil {
			f.err = errEOF
		}
		return false
	}
	f.line++
	id := f.b.Bytes()
	if len(id) == 0 || id[0] != '@' {
		f.err = errors.Wrapf(ErrInvalid, "line %d: record does not start with '@'", f.line)
		return false
	}
	read.Tile, read.HasTile = 0, false
	if !f.noTile {
		read.Tile, read.HasTile = TileFromID(id)
	}
	if !f.scan() {
		return false
	}
	read.Bases = append(read.Bases[:0], f.b.Bytes()...)
	read.Length = len(read.Bases)
	if !f.scan() {
		return false
	}
	if sep := f.b.Bytes(); len(sep) == 0 || sep[0] != '+' {
		f.err = errors.Wrapf(ErrInvalid, "line %d: separator does not start with '+'", f.line)
		return false
	}
	if !f.scan() {
		return false
	}
	read.Qualities = append(read.Qualities[:0], f.b.Bytes()...)
	return true
}

func (f *Scanner) scan() bool {
	ok := f.b.Scan()
	if !ok {
		if f.err = f.b.Err(); f.err == nil {
			f.err = ErrShort
		}
		return false
	}
	f.line++
	return true
}

// Err returns the scanning error, if any.
func (f *Scanner) Err() error {
	if f.err == errEOF {
		return nil
	}
	return f.err
}

// TileFromID extracts the tile number from an Illumina read name. Names
// with seven or more colon separated fields
// (@instrument:run:flowcell:lane:tile:x:y) carry it in the fifth field,
// older five field names (@instrument:lane:tile:x:y) in the third.
func TileFromID(id []byte) (int, bool) {
	id = bytes.TrimPrefix(id, []byte{'@'})
	if i := bytes.IndexAny(id, " \t"); i >= 0 {
		id = id[:i]
	}
	fields := bytes.Split(id, []byte{':'})
	var field []byte
	switch {
	case len(fields) >= 7:
		field = fields[4]
	case len(fields) == 5:
		field = fields[2]
	default:
		return 0, false
	}
	tile, err := strconv.Atoi(string(field))
	if err != nil {
		return 0, false
	}
	return tile, true
}

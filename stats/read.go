package stats

import "github.com/pkg/errors"

// ErrMalformedRead is returned when a read's declared length disagrees with
// its bases or qualities.
var ErrMalformedRead = errors.New("malformed read")

// Read is a sequencing read as handed over by a reader. Qualities are raw
// symbols (e.g. phred+33 ASCII); the accumulator does not interpret the
// offset beyond the configured poor-quality floor.
type Read struct {
	Bases     []byte
	Qualities []byte
	Length    int
	Tile      int
	HasTile   bool
}

// NewRead returns a read of bases and qualities with its length set from
// bases.
func NewRead(bases, qualities []byte) *Read {
	return &Read{Bases: bases, Qualities: qualities, Length: len(bases)}
}

func (r *Read) validate() error {
	if r.Length < 0 || len(r.Bases) != r.Length || len(r.Qualities) != r.Length {
		return errors.Wrapf(ErrMalformedRead, "length %d, %d bases, %d qualities", r.Length, len(r.Bases), len(r.Qualities))
	}
	for i, q := range r.Qualities {
		if q >= NumQualityValues {
			return errors.Wrapf(ErrMalformedRead, "quality symbol %d at position %d", q, i)
		}
	}
	return nil
}

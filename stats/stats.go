package stats

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type fraction float64

func (m fraction) String() string {
	return fmt.Sprintf("%.6g", float64(m))
}

func (m fraction) MarshalJSON() ([]byte, error) {
	v, err := strconv.ParseFloat(m.String(), 64)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// Stats represents read statistics.
type Stats interface {
	Update(other Stats)
	Merge(others chan Stats)
	Collect(read *Read) error
	Finalize()
}

// Map is a map of Stats instances with string keys.
type Map map[string]Stats

// Merge merges instances of Map
func (sm Map) Merge(stats chan Map) {
	for s := range stats {
		for key, stat := range sm {
			if otherStat, ok := s[key]; ok {
				stat.Update(otherStat)
			}
		}
	}
}

// Add adds a new Stats object to sm
func (sm Map) Add(key string, s Stats) {
	sm[key] = s
}

// Collect hands read to every Stats in sm, stopping at the first error.
func (sm Map) Collect(read *Read) error {
	for _, s := range sm {
		if err := s.Collect(read); err != nil {
			return err
		}
	}
	return nil
}

// Finalize finalizes every Stats in sm.
func (sm Map) Finalize() {
	for _, s := range sm {
		s.Finalize()
	}
}

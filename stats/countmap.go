package stats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// CountMap is a sparse histogram with integer keys.
type CountMap map[int]uint64

// Update updates all counts from another CountMap instance.
func (cm CountMap) Update(other CountMap) {
	for k, v := range other {
		cm[k] += v
	}
}

// Keys returns the keys of the CountMap in ascending order.
func (cm CountMap) Keys() []int {
	keys := make([]int, 0, len(cm))
	for k := range cm {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Total returns the sum of all counts in the CountMap
func (cm CountMap) Total() (sum uint64) {
	for _, v := range cm {
		sum += v
	}
	return
}

// MarshalJSON returns a JSON representation of a CountMap, numerically sorting the keys.
func (cm CountMap) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Write([]byte{'{', '\n'})
	keys := cm.Keys()
	l := len(keys)
	for i, k := range keys {
		fmt.Fprintf(buf, "\t\"%d\": %v", k, cm[k])
		if i < l-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.Write([]byte{'}', '\n'})
	return buf.Bytes(), nil
}

// UnmarshalJSON parse a JSON representation of a CountMap.
func (cm *CountMap) UnmarshalJSON(b []byte) (err error) {
	smap, imap := make(map[string]uint64), CountMap{}
	if err = json.Unmarshal(b, &smap); err == nil {
		for key, value := range smap {
			// JSON objects have string key - need to convert to int
			if intKey, err := strconv.Atoi(key); err == nil {
				imap[intKey] = value
			}
		}
		*cm = imap
	}
	return
}

package stats

import (
	"math"
	"sync"
)

// GCValue is the share of one read credited to a GC percentage bin.
type GCValue struct {
	Percent   int
	Increment float64
}

// GCModel spreads the GC count of reads of a fixed length over percentage
// bins. A count c covers the interval [c-0.5, c+0.5]; every bin that
// interval rounds to gets a share, weighted down by how many counts claim
// that bin, so that short reads do not produce a comb-shaped distribution.
type GCModel struct {
	readLength int
	models     [][]GCValue
}

func percentRange(count, readLength int) (low, high int) {
	lowCount := math.Max(float64(count)-0.5, 0)
	highCount := math.Min(float64(count)+0.5, float64(readLength))
	round := func(x float64) int { return int(math.Floor(x + 0.5)) }
	return round(lowCount * 100 / float64(readLength)), round(highCount * 100 / float64(readLength))
}

// NewGCModel builds the model for reads of length readLength.
func NewGCModel(readLength int) *GCModel {
	m := &GCModel{readLength: readLength, models: make([][]GCValue, readLength+1)}
	if readLength == 0 {
		m.models[0] = []GCValue{{Percent: 0, Increment: 1}}
		return m
	}
	var claiming [NumGCBins]int
	for c := 0; c <= readLength; c++ {
		low, high := percentRange(c, readLength)
		for p := low; p <= high; p++ {
			claiming[p]++
		}
	}
	for c := 0; c <= readLength; c++ {
		low, high := percentRange(c, readLength)
		values := make([]GCValue, 0, high-low+1)
		for p := low; p <= high; p++ {
			values = append(values, GCValue{Percent: p, Increment: 1 / float64(claiming[p])})
		}
		m.models[c] = values
	}
	return m
}

// ReadLength is the read length the model was built for.
func (m *GCModel) ReadLength() int {
	return m.readLength
}

// Distribution returns the bins credited for a read with gcCount GC bases.
// Counts above the modeled length are clamped to it.
func (m *GCModel) Distribution(gcCount int) []GCValue {
	if gcCount > m.readLength {
		gcCount = m.readLength
	}
	if gcCount < 0 {
		gcCount = 0
	}
	return m.models[gcCount]
}

// Apply adds the distribution for gcCount into bins.
func (m *GCModel) Apply(gcCount int, bins *[NumGCBins]float64) {
	for _, v := range m.Distribution(gcCount) {
		bins[v.Percent] += v.Increment
	}
}

// GCModels holds one model per read length below ShortReadThreshold. It is
// immutable once built and safe to share between accumulators.
type GCModels [ShortReadThreshold]*GCModel

// NewGCModels builds every model.
func NewGCModels() *GCModels {
	var ms GCModels
	for i := range ms {
		ms[i] = NewGCModel(i)
	}
	return &ms
}

// For returns the model for reads of the given length.
//
// Reads at or beyond ShortReadThreshold are clamped to the model of the
// longest modeled length (MaxGCModelLength) rather than getting a model of
// their own. This is a known approximation: the GC content reported for a
// long read is that of its first MaxGCModelLength bases.
func (ms *GCModels) For(length int) *GCModel {
	if length > MaxGCModelLength {
		length = MaxGCModelLength
	}
	return ms[length]
}

// Apply credits a read into bins. For reads longer than MaxGCModelLength,
// gcCount must be the GC count of the first MaxGCModelLength bases.
func (ms *GCModels) Apply(length, gcCount int, bins *[NumGCBins]float64) {
	ms.For(length).Apply(gcCount, bins)
}

// MaxGCModelLength is the longest read length with its own GC model.
const MaxGCModelLength = ShortReadThreshold - 1

var (
	defaultModels     *GCModels
	defaultModelsOnce sync.Once
)

// DefaultGCModels returns a process-wide table, built on first use.
func DefaultGCModels() *GCModels {
	defaultModelsOnce.Do(func() {
		defaultModels = NewGCModels()
	})
	return defaultModels
}

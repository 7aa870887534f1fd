package stats

import (
	"fmt"
	"io"
	"text/template"

	"github.com/pkg/errors"
)

// Metrics defines an interface for a metric
type Metrics interface {
	Calculate(m Map) error
}

type metric float64

// QCMetrics are summary fractions over all reads of a run
type QCMetrics struct {
	PoorReads       metric `json:"FRACTION_POOR_READS"`
	LowQualityBases metric `json:"FRACTION_LOW_QUALITY_BASES"`
	NBases          metric `json:"FRACTION_N_BASES"`
	GC              metric `json:"FRACTION_GC"`
	Duplicated      metric `json:"FRACTION_DUPLICATED,omitempty"`
}

// Calculate compute metrics from the basic and duplication stats. The
// stats must have been finalized.
func (m *QCMetrics) Calculate(sm Map) error {
	fs, hasBasic := sm["basic"].(*FastqStats)
	if !hasBasic {
		return errors.New("no basic stats to compute metrics from")
	}
	if fs.NumReads > 0 {
		m.PoorReads = metric(fs.NumPoor) / metric(fs.NumReads)
	}
	if fs.TotalBases > 0 {
		var n uint64
		for pos := 0; pos < fs.MaxReadLength; pos++ {
			n += fs.NBaseCount(pos)
		}
		m.LowQualityBases = metric(fs.LowQualityBases) / metric(fs.TotalBases)
		m.NBases = metric(n) / metric(fs.TotalBases)
		m.GC = metric(fs.TotalGC) / metric(fs.TotalBases)
	}
	if dup, ok := sm["duplication"].(*DuplicationStats); ok && dup.NumReads > 0 {
		m.Duplicated = 1 - metric(dup.Remaining)
	}
	return nil
}

// Output write metrics to out
func (m *QCMetrics) Output(out io.Writer) error {
	tmpl := `FRACTION_POOR_READS	{{.PoorReads}}
FRACTION_LOW_QUALITY_BASES	{{.LowQualityBases}}
FRACTION_N_BASES	{{.NBases}}
FRACTION_GC	{{.GC}}
FRACTION_DUPLICATED	{{.Duplicated}}
`
	o := template.Must(template.New("QC").Parse(tmpl))
	return o.Execute(out, m)
}

func (m metric) String() string {
	return fmt.Sprintf("%.6g", float64(m))
}

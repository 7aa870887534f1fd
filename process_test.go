package fqstats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guigolab/fqstats/config"
	"github.com/guigolab/fqstats/fastq"
	"github.com/guigolab/fqstats/stats"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastqRecords(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		seq := "ACGTACGTAA"
		if i%3 == 0 {
			seq = strings.Repeat("GATTACA", 20)
		}
		fmt.Fprintf(&b, "@M001:1:FC:1:%d:%d:%d\n%s\n+\n%s\n", 1101+i%2, i, i, seq, strings.Repeat("I", len(seq)))
	}
	return b.String()
}

func TestProcessReader(t *testing.T) {
	for _, cpu := range []int{1, 2, 4} {
		cfg := config.NewConfig(cpu, 10, -1)
		sc := fastq.NewScanner(strings.NewReader(fastqRecords(30)), false)
		sm, err := ProcessReader(context.Background(), sc, cfg)
		require.NoError(t, err, "cpu %d", cpu)

		fs, ok := sm["basic"].(*stats.FastqStats)
		require.True(t, ok)
		assert.Equal(t, uint64(30), fs.NumReads, "cpu %d", cpu)
		assert.Equal(t, uint64(10*140+20*10), fs.TotalBases, "cpu %d", cpu)
		assert.Equal(t, 10, fs.MinReadLength)
		assert.Equal(t, 140, fs.MaxReadLength)
		assert.Equal(t, 40, fs.NumExtraBases)
		assert.Equal(t, []int{1101, 1102}, fs.Tiles().Tiles())

		dup, ok := sm["duplication"].(*stats.DuplicationStats)
		require.True(t, ok)
		assert.Equal(t, uint64(30), dup.NumReads)
		assert.Equal(t, 2, dup.NumUniqueSeen)
		assert.Equal(t, uint64(20), dup.Count([]byte("ACGTACGTAA")))
	}
}

func TestProcessReaderReadLimit(t *testing.T) {
	cfg := config.NewConfig(2, 10, 7)
	sc := fastq.NewScanner(strings.NewReader(fastqRecords(30)), true)
	sm, err := ProcessReader(context.Background(), sc, cfg)
	require.NoError(t, err)
	fs := sm["basic"].(*stats.FastqStats)
	assert.Equal(t, uint64(7), fs.NumReads)
	assert.Equal(t, 0, fs.Tiles().Len())
}

func TestProcessReaderErrors(t *testing.T) {
	cfg := config.NewConfig(2, 10, -1)
	sc := fastq.NewScanner(strings.NewReader(fastqRecords(4)+"@bad\nACGT\n+\nII\n"), false)
	_, err := ProcessReader(context.Background(), sc, cfg)
	require.Error(t, err)
	assert.Equal(t, stats.ErrMalformedRead, errors.Cause(err))

	sc = fastq.NewScanner(strings.NewReader(fastqRecords(4)+"@short\nACGT\n"), false)
	_, err = ProcessReader(context.Background(), sc, cfg)
	require.Error(t, err)
	assert.Equal(t, fastq.ErrShort, errors.Cause(err))

	cfg.Cpu = 0
	_, err = ProcessReader(context.Background(), fastq.NewScanner(strings.NewReader(""), false), cfg)
	assert.Error(t, err)
}

func TestDetectFormat(t *testing.T) {
	cfg := config.NewConfig(1, 10, -1)
	for name, want := range map[string]string{
		"reads.fastq":     config.FormatFastq,
		"reads.fq.gz":     config.FormatFastq,
		"reads.sam":       config.FormatSAM,
		"reads.sam.gz":    config.FormatSAM,
		"/data/reads.BAM": config.FormatBAM,
		"-":               config.FormatFastq,
	} {
		assert.Equal(t, want, DetectFormat(name, cfg), name)
	}
	cfg.Format = config.FormatSAM
	assert.Equal(t, config.FormatSAM, DetectFormat("reads.fastq", cfg))
}

func TestProcessGzipFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "reads.fq.gz")
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(fastqRecords(9)))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(input, buf.Bytes(), 0o644))

	cfg := config.NewConfig(2, 10, -1)
	sm, err := Process(context.Background(), input, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), sm["basic"].(*stats.FastqStats).NumReads)

	output := filepath.Join(dir, "stats.json")
	require.NoError(t, WriteOutput(output, sm))
	data, err := os.ReadFile(output)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "basic")
	assert.Contains(t, decoded, "duplication")

	metrics := filepath.Join(dir, "metrics.tsv")
	require.NoError(t, WriteMetrics(metrics, sm))
	data, err = os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FRACTION_DUPLICATED\t")
}

func TestProcessSAM(t *testing.T) {
	in := "@HD\tVN:1.6\n" +
		"r1\t4\t*\t0\t0\t*\t*\t0\t0\tACGTT\tIIIII\n" +
		"r2\t4\t*\t0\t0\t*\t*\t0\t0\tGGGTT\tIIIII\n"
	input := filepath.Join(t.TempDir(), "reads.sam")
	require.NoError(t, os.WriteFile(input, []byte(in), 0o644))

	sm, err := Process(context.Background(), input, config.NewConfig(1, 10, -1))
	require.NoError(t, err)
	fs := sm["basic"].(*stats.FastqStats)
	assert.Equal(t, uint64(2), fs.NumReads)
	assert.Equal(t, uint64(10), fs.TotalBases)
}

// Package fqstats computes quality control statistics on a stream of
// sequencing reads.
package fqstats

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/guigolab/fqstats/config"
	"github.com/guigolab/fqstats/fastq"
	"github.com/guigolab/fqstats/sam"
	"github.com/guigolab/fqstats/stats"
	"github.com/guigolab/fqstats/utils"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.SetLevel(log.WarnLevel)
}

// Scanner is a source of reads.
type Scanner interface {
	Scan(read *stats.Read) bool
	Err() error
}

// DetectFormat returns the input format for fileName: the configured one,
// or a guess from the file extension (ignoring a trailing .gz).
func DetectFormat(fileName string, cfg *config.Config) string {
	if cfg.Format != config.FormatAuto {
		return cfg.Format
	}
	name := strings.TrimSuffix(strings.ToLower(fileName), ".gz")
	switch filepath.Ext(name) {
	case ".bam":
		return config.FormatBAM
	case ".sam":
		return config.FormatSAM
	default:
		return config.FormatFastq
	}
}

// NewScanner returns a Scanner over in, an input named fileName.
func NewScanner(fileName string, in io.Reader, cfg *config.Config) (Scanner, error) {
	format := DetectFormat(fileName, cfg)
	log.WithFields(log.Fields{
		"file":   fileName,
		"format": format,
	}).Debug("Opening input")
	if format == config.FormatBAM {
		c := *cfg
		c.Format = config.FormatBAM
		return sam.NewReader(fileName, in, &c)
	}
	r, err := utils.Decompress(in)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", fileName)
	}
	if format == config.FormatSAM {
		c := *cfg
		c.Format = config.FormatSAM
		return sam.NewReader(fileName, r, &c)
	}
	return fastq.NewScanner(r, cfg.IgnoreTiles), nil
}

func dispatch(ctx context.Context, sc Scanner, chans []chan *stats.Read, dup *stats.DuplicationStats, reads int) error {
	defer func() {
		for _, ch := range chans {
			close(ch)
		}
	}()
	c := 0
	for reads < 0 || c < reads {
		read := &stats.Read{}
		if !sc.Scan(read) {
			break
		}
		if err := dup.Collect(read); err != nil {
			return errors.Wrapf(err, "read %d", c+1)
		}
		select {
		case chans[c%len(chans)] <- read:
		case <-ctx.Done():
			return ctx.Err()
		}
		c++
	}
	log.Debugf("Dispatched %d reads", c)
	return sc.Err()
}

func worker(id int, in chan *stats.Read, out chan stats.Map, fs *stats.FastqStats) error {
	logger := log.WithFields(log.Fields{
		"worker": id,
	})
	logger.Debug("Starting")
	sm := stats.Map{"basic": fs}
	n := 0
	for read := range in {
		if err := sm.Collect(read); err != nil {
			return errors.Wrapf(err, "worker %d", id)
		}
		n++
	}
	logger.WithField("reads", n).Debug("Done")
	out <- sm
	return nil
}

// ProcessReader collects statistics for the reads of sc using cfg.Cpu
// workers, each with its own accumulator, and merges them.
func ProcessReader(ctx context.Context, sc Scanner, cfg *config.Config) (stats.Map, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := cfg.Options()
	opts.GCModels = stats.DefaultGCModels()
	shards := make([]*stats.FastqStats, cfg.Cpu)
	for i := range shards {
		fs, err := stats.NewFastqStats(opts)
		if err != nil {
			return nil, err
		}
		shards[i] = fs
	}

	g, ctx := errgroup.WithContext(ctx)
	buf := cfg.MaxBuf / cfg.Cpu
	chans := make([]chan *stats.Read, cfg.Cpu)
	for i := range chans {
		chans[i] = make(chan *stats.Read, buf)
	}
	out := make(chan stats.Map, cfg.Cpu)
	dup := stats.NewDuplicationStats()

	g.Go(func() error {
		return dispatch(ctx, sc, chans, dup, cfg.Reads)
	})
	for i := range chans {
		id, ch, fs := i+1, chans[i], shards[i]
		g.Go(func() error {
			return worker(id, ch, out, fs)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)

	sm := <-out
	sm.Merge(out)
	sm.Add("duplication", dup)
	sm.Finalize()
	return sm, nil
}

// Process opens input and collects its read statistics.
func Process(ctx context.Context, input string, cfg *config.Config) (stats.Map, error) {
	f, err := utils.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := NewScanner(input, f, cfg)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	log.Infof("Collecting stats for %s", input)
	sm, err := ProcessReader(ctx, sc, cfg)
	if err != nil {
		return nil, err
	}
	log.Infof("Stats done in %v", time.Since(start))
	return sm, nil
}

// WriteOutput writes the JSON representation of sm to output, '-' being
// standard output.
func WriteOutput(output string, sm stats.Map) error {
	w, err := utils.NewWriter(output)
	if err != nil {
		return err
	}
	if err := utils.OutputJSON(w, sm); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// WriteMetrics writes the summary QC metrics of sm as tab separated text
// to output.
func WriteMetrics(output string, sm stats.Map) error {
	m := &stats.QCMetrics{}
	if err := m.Calculate(sm); err != nil {
		return err
	}
	w, err := utils.NewWriter(output)
	if err != nil {
		return err
	}
	if err := m.Output(w); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

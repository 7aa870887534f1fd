// Package config holds the run configuration of fqstats.
package config

import (
	"runtime"
	"strings"

	"github.com/guigolab/fqstats/stats"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Input formats.
const (
	FormatAuto  = "auto"
	FormatFastq = "fastq"
	FormatSAM   = "sam"
	FormatBAM   = "bam"
)

type Config struct {
	Cpu           int             `mapstructure:"cpu"`
	MaxBuf        int             `mapstructure:"max-buf"`
	Reads         int             `mapstructure:"reads"`
	Format        string          `mapstructure:"format"`
	QualityOffset int             `mapstructure:"quality-offset"`
	PoorQuality   int             `mapstructure:"poor-quality"`
	IgnoreTiles   bool            `mapstructure:"ignore-tiles"`
	Adapters      []stats.Adapter `mapstructure:"adapters"`
}

// NewConfig returns a Config with the given resources and default
// settings for everything else.
func NewConfig(cpu, maxBuf, reads int) *Config {
	return &Config{
		Cpu:           cpu,
		MaxBuf:        maxBuf,
		Reads:         reads,
		Format:        FormatAuto,
		QualityOffset: stats.DefaultQualityOffset,
		PoorQuality:   stats.DefaultPoorQuality,
		Adapters:      stats.DefaultAdapters,
	}
}

// Load builds a Config from defaults, the optional configuration file at
// path, FQSTATS_* environment variables and flags, in increasing order of
// precedence.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	def := NewConfig(runtime.NumCPU(), 100000, -1)
	v := viper.New()
	v.SetDefault("cpu", def.Cpu)
	v.SetDefault("max-buf", def.MaxBuf)
	v.SetDefault("reads", def.Reads)
	v.SetDefault("format", def.Format)
	v.SetDefault("quality-offset", def.QualityOffset)
	v.SetDefault("poor-quality", def.PoorQuality)
	v.SetDefault("ignore-tiles", def.IgnoreTiles)

	v.SetEnvPrefix("fqstats")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, errors.Wrap(err, "binding flags")
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if len(cfg.Adapters) == 0 {
		cfg.Adapters = def.Adapters
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the ranges of every setting.
func (c *Config) Validate() error {
	switch {
	case c.Cpu < 1:
		return errors.Errorf("cpu must be positive, got %d", c.Cpu)
	case c.MaxBuf < 1:
		return errors.Errorf("max-buf must be positive, got %d", c.MaxBuf)
	case c.QualityOffset < 0 || c.QualityOffset >= stats.NumQualityValues:
		return errors.Errorf("quality-offset %d out of range", c.QualityOffset)
	case c.PoorQuality < 0:
		return errors.Errorf("poor-quality must not be negative, got %d", c.PoorQuality)
	case len(c.Adapters) > stats.MaxAdapters:
		return errors.Errorf("%d adapters configured, at most %d supported", len(c.Adapters), stats.MaxAdapters)
	}
	switch c.Format {
	case FormatAuto, FormatFastq, FormatSAM, FormatBAM:
	default:
		return errors.Errorf("unknown input format %q", c.Format)
	}
	return nil
}

// Options returns the accumulator options for c.
func (c *Config) Options() stats.Options {
	return stats.Options{
		QualityOffset: c.QualityOffset,
		PoorQuality:   c.PoorQuality,
		IgnoreTiles:   c.IgnoreTiles,
		Adapters:      c.Adapters,
	}
}

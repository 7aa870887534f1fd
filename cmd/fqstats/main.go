package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/guigolab/fqstats"
	"github.com/guigolab/fqstats/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

var (
	input, configFile, loglevel, output, metrics string
)

func run(cmd *cobra.Command, args []string) (err error) {
	// Set loglevel
	level, err := log.ParseLevel(loglevel)
	if err != nil {
		return
	}
	log.SetLevel(level)

	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return
	}
	logger := log.WithFields(log.Fields{
		"version":   version,
		"commit":    commit,
		"buildTime": date,
	})
	logger.Infof("Running %s", cmd.Use)
	log.Infof("Using %v out of %v logical CPUs", cfg.Cpu, runtime.NumCPU())
	allStats, err := fqstats.Process(context.Background(), input, cfg)
	if err != nil {
		return
	}

	if err = fqstats.WriteOutput(output, allStats); err != nil {
		return
	}
	if metrics != "" {
		return fqstats.WriteMetrics(metrics, allStats)
	}
	return
}

func setFqstatsFlags(c *cobra.Command) {
	c.PersistentFlags().StringVarP(&input, "input", "i", "", "input FASTQ, SAM or BAM file, '-' for stdin (required)")
	c.PersistentFlags().StringVarP(&configFile, "config", "", "", "configuration file (yaml, toml or json)")
	c.PersistentFlags().StringVarP(&loglevel, "loglevel", "", "warn", "logging level")
	c.PersistentFlags().StringVarP(&output, "output", "o", "-", "output file")
	c.PersistentFlags().StringVarP(&metrics, "metrics", "m", "", "write summary QC metrics to this file")
	c.PersistentFlags().IntP("cpu", "c", runtime.NumCPU(), "number of cpus to be used")
	c.PersistentFlags().Int("max-buf", 100000, "maximum number of buffered reads")
	c.PersistentFlags().IntP("reads", "n", -1, "number of reads to process")
	c.PersistentFlags().StringP("format", "f", config.FormatAuto, "input format (auto, fastq, sam, bam)")
	c.PersistentFlags().Int("quality-offset", 33, "ASCII offset of phred 0 qualities")
	c.PersistentFlags().Int("poor-quality", 20, "phred quality below which bases are low quality and reads poor")
	c.PersistentFlags().Bool("ignore-tiles", false, "do not collect per-tile qualities")
	c.MarkPersistentFlagRequired("input")

	c.SetVersionTemplate(`{{with .Name}}{{printf "== %s ==\n" .}}{{end}}{{printf "%s\n" .Version}}`)
}

func buildVersion(version, commit, date string) string {
	if version == "dev" {
		version = fmt.Sprintf("%s (%s)", version, fqstats.Version())
	}
	var result = fmt.Sprintf("version: %s", version)
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	return result
}

func main() {
	var rootCmd = &cobra.Command{
		Use:     "fqstats",
		Short:   "Read quality statistics",
		Long:    "fqstats - compute quality control statistics of sequencing reads",
		RunE:    run,
		Version: buildVersion(version, commit, date),
	}

	setFqstatsFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Debug(err)
		os.Exit(1)
	}
}

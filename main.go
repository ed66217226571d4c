package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voxlab/transcript-eval/benchmark"
	cfg "github.com/voxlab/transcript-eval/config"
	"github.com/voxlab/transcript-eval/export"
	"github.com/voxlab/transcript-eval/transcript"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "transcript-eval",
		Short:         "Score ASR transcripts against human-verified references",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(evaluateCmd(), batchCmd())
	return root
}

func setup() (*cfg.Root, error) {
	conf, err := cfg.Load()
	if err != nil {
		return nil, err
	}
	lvl, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("bad log_level %q: %w", conf.LogLevel, err)
	}
	logrus.SetLevel(lvl)
	return conf, nil
}

func evaluateCmd() *cobra.Command {
	var csvOut string

	cmd := &cobra.Command{
		Use:   "evaluate <reference> <hypothesis>",
		Short: "Evaluate one transcript pair and print the metric record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := setup()
			if err != nil {
				return err
			}
			ref, err := transcript.Load(args[0])
			if err != nil {
				return err
			}
			hyp, err := transcript.Load(args[1])
			if err != nil {
				return err
			}

			res, err := benchmark.New(conf.Options()).Evaluate(ref, hyp)
			if err != nil {
				return err
			}

			if csvOut != "" {
				rec := export.NamedRecord{File: filepath.Base(args[1]), Record: res.Record()}
				return export.ToCSV(csvOut, []export.NamedRecord{rec}, conf.Batch.Precision, true)
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Record())
		},
	}
	cmd.Flags().StringVar(&csvOut, "csv", "", "append the record to this CSV file instead of printing JSON")
	return cmd
}

// manifest lists the transcript pairs of a batch run.
type manifest struct {
	Pairs []struct {
		Name       string `yaml:"name"`
		Reference  string `yaml:"reference"`
		Hypothesis string `yaml:"hypothesis"`
	} `yaml:"pairs"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <manifest.yaml>",
		Short: "Evaluate every pair in a manifest and write CSV + JSON outputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := setup()
			if err != nil {
				return err
			}
			pairs, err := loadManifest(args[0])
			if err != nil {
				return err
			}

			runID, dir, err := export.NewRunDir(conf.Batch.OutputDir)
			if err != nil {
				return err
			}
			logrus.WithFields(logrus.Fields{"run_id": runID, "pairs": len(pairs)}).Info("batch started")

			results := benchmark.New(conf.Options()).
				EvaluateAll(context.Background(), pairs, conf.Batch.Workers)

			var records []export.NamedRecord
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					continue
				}
				records = append(records, export.NamedRecord{File: r.Name, Record: r.Result.Record()})
			}

			if err := export.ToCSV(filepath.Join(dir, "metrics.csv"), records, conf.Batch.Precision, false); err != nil {
				return err
			}
			bundle := export.RunBundle{
				RunID:       runID,
				GeneratedAt: time.Now(),
				Results:     records,
				Summary:     map[string]any{"metrics": benchmark.Summarize(results)},
			}
			if err := export.WriteJSON(filepath.Join(dir, "results.json"), bundle); err != nil {
				return err
			}

			logrus.WithFields(logrus.Fields{
				"run_id": runID, "ok": len(records), "failed": failed, "dir": dir,
			}).Info("batch finished")
			if failed > 0 {
				return fmt.Errorf("%d of %d pairs failed", failed, len(results))
			}
			return nil
		},
	}
	return cmd
}

func loadManifest(path string) ([]benchmark.Pair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	pairs := make([]benchmark.Pair, 0, len(m.Pairs))
	for i, p := range m.Pairs {
		if p.Reference == "" || p.Hypothesis == "" {
			return nil, fmt.Errorf("%s: pair %d: reference and hypothesis are required", path, i)
		}
		ref, err := transcript.Load(resolve(base, p.Reference))
		if err != nil {
			return nil, err
		}
		hyp, err := transcript.Load(resolve(base, p.Hypothesis))
		if err != nil {
			return nil, err
		}
		name := p.Name
		if name == "" {
			name = filepath.Base(p.Hypothesis)
		}
		pairs = append(pairs, benchmark.Pair{Name: name, Reference: ref, Hypothesis: hyp})
	}
	return pairs, nil
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

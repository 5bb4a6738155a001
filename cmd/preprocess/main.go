package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/englhardt/des-evaluation/pkg/config"
	"github.com/englhardt/des-evaluation/pkg/data"
	"github.com/englhardt/des-evaluation/pkg/dataprep"
	"github.com/englhardt/des-evaluation/pkg/pipeline"
	"github.com/englhardt/des-evaluation/pkg/report"
)

//
// preprocess                          : converts every DAMI ARFF file below
//                                       data/input/raw/dami into a CSV file below
//                                       data/input/processed/dami
// preprocess scores <in.arff> <out.png> : plots the feature scores of one file
//
// All tunables are fixed in pkg/config.
//

var rootCmd = &cobra.Command{
	Use:           "preprocess",
	Short:         "Convert DAMI ARFF benchmark files into cleaned CSV files",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.NewRunner(config.Default(), slog.Default()).Run()
		return err
	},
}

var scoresCmd = &cobra.Command{
	Use:   "scores inputFile chartFile",
	Short: "Plot the mutual information of every feature of one ARFF file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return plotScores(config.Default(), args[0], args[1])
	},
}

func plotScores(cfg config.Config, in, chart string) error {
	df, err := data.LoadLabeled(in)
	if err != nil {
		return errors.Wrapf(err, "load %s", in)
	}
	selector := dataprep.FeatureSelector{K: cfg.NumFeatures, Neighbors: cfg.Neighbors, Seed: cfg.Seed}
	names, scores, err := selector.Score(df)
	if err != nil {
		return errors.Wrapf(err, "score %s", in)
	}

	entries := make([]report.FeatureScore, len(names))
	for i, name := range names {
		entries[i] = report.FeatureScore{Name: name, Score: scores[i]}
	}
	for _, j := range dataprep.SelectKBest(scores, cfg.NumFeatures) {
		entries[j].Selected = true
	}
	for _, e := range entries {
		slog.Info("feature score", "feature", e.Name, "mi", e.Score, "selected", e.Selected)
	}

	title := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	return report.PlotScores(title, entries, chart)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))

	rootCmd.AddCommand(scoresCmd)
	if err := rootCmd.Execute(); err != nil {
		slog.Error("preprocessing failed", "error", err)
		os.Exit(1)
	}
}

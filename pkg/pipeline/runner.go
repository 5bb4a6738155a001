package pipeline

import (
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/englhardt/des-evaluation/pkg/config"
	"github.com/englhardt/des-evaluation/pkg/data"
	"github.com/englhardt/des-evaluation/pkg/dataprep"
)

// Runner converts every matching ARFF file below the input root into a CSV
// file below the output root, one file at a time.
type Runner struct {
	cfg      config.Config
	pipeline *Pipeline
	logger   *slog.Logger
}

// NewRunner wires feature selection and noise injection from cfg. Both stages
// reuse cfg.Seed for every file so repeated runs give identical output.
func NewRunner(cfg config.Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg: cfg,
		pipeline: NewPipeline(
			dataprep.FeatureSelector{K: cfg.NumFeatures, Neighbors: cfg.Neighbors, Seed: cfg.Seed},
			dataprep.NoiseInjector{Scale: cfg.NoiseAmount, Seed: cfg.Seed},
		),
		logger: logger,
	}
}

// Run processes all discovered files and returns how many were written.
// An empty input directory is logged and is not an error; any other failure
// aborts the run.
func (r *Runner) Run() (int, error) {
	entries, err := os.ReadDir(r.cfg.InputDir)
	if err != nil {
		return 0, errors.Wrap(err, "read input dir")
	}
	if len(entries) == 0 {
		r.logger.Error("data input dir is empty, download the raw DAMI data first",
			"dir", r.cfg.InputDir)
		return 0, nil
	}

	files, err := Discover(r.cfg.InputDir, r.cfg.FilePattern)
	if err != nil {
		return 0, err
	}

	for i, file := range files {
		out, err := OutputPath(r.cfg.InputDir, r.cfg.OutputDir, file)
		if err != nil {
			return i, err
		}
		r.logger.Info("processing", "file", file, "output", out)
		if err := r.ProcessFile(file, out); err != nil {
			return i, err
		}
	}

	r.logger.Info("done", "files", len(files), "stages", r.pipeline.Stages())
	return len(files), nil
}

// ProcessFile loads, transforms and writes a single file.
func (r *Runner) ProcessFile(in, out string) error {
	df, err := data.LoadLabeled(in)
	if err != nil {
		return errors.Wrapf(err, "load %s", in)
	}
	rows := df.Nrow()

	df, err = r.pipeline.Transform(df)
	if err != nil {
		return errors.Wrapf(err, "transform %s", in)
	}
	r.logger.Debug("transformed", "file", in, "rows", rows, "columns", df.Names())

	return data.WriteCSV(out, df)
}

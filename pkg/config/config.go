package config

import (
	"path/filepath"
	"regexp"
)

// Fixed tunables of the preprocessing run.
const (
	NoiseAmount = 0.01 // std of the gaussian noise added to every feature cell
	RandomState = 0    // seed for the MI jitter and the noise, reused for every file
	NumFeatures = 5    // features kept per file
	Neighbors   = 3    // k of the kNN mutual information estimator
)

// FilePattern matches the DAMI dataset variants that get processed.
var FilePattern = regexp.MustCompile(`^.*withoutdupl_norm(_\d\d)?\.arff$`)

var (
	InputDir  = filepath.Join("data", "input", "raw", "dami")
	OutputDir = filepath.Join("data", "input", "processed", "dami")
)

// Config bundles everything one run needs.
type Config struct {
	InputDir    string
	OutputDir   string
	FilePattern *regexp.Regexp
	NumFeatures int
	Neighbors   int
	NoiseAmount float64
	Seed        uint64
}

func Default() Config {
	return Config{
		InputDir:    InputDir,
		OutputDir:   OutputDir,
		FilePattern: FilePattern,
		NumFeatures: NumFeatures,
		Neighbors:   Neighbors,
		NoiseAmount: NoiseAmount,
		Seed:        RandomState,
	}
}

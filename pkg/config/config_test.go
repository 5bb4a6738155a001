package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/englhardt/des-evaluation/pkg/config"
)

func TestFilePattern(t *testing.T) {
	for name, want := range map[string]bool{
		"Glass_withoutdupl_norm.arff":        true,
		"Glass_withoutdupl_norm_01.arff":     true,
		"withoutdupl_norm_99.arff":           true,
		"Glass_withoutdupl_norm_1.arff":      false,
		"Glass_withoutdupl_norm_001.arff":    false,
		"Glass_withoutdupl_norm.arff.gz":     false,
		"Glass_withoutdupl_norm_01_v01.arff": false,
		"Glass_withoutdupl.arff":             false,
		"Glass_withoutdupl_normXarff":        false,
	} {
		assert.Equal(t, want, config.FilePattern.MatchString(name), name)
	}
}

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 5, cfg.NumFeatures)
	assert.Equal(t, 3, cfg.Neighbors)
	assert.Equal(t, 0.01, cfg.NoiseAmount)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Same(t, config.FilePattern, cfg.FilePattern)
	assert.NotEqual(t, cfg.InputDir, cfg.OutputDir)
}

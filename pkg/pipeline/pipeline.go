package pipeline

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/pkg/errors"
)

// Stage is one in-memory transformation of a labeled table.
type Stage interface {
	Name() string
	Apply(df dataframe.DataFrame) (dataframe.DataFrame, error)
}

// Pipeline chains multiple stages.
type Pipeline struct {
	steps []Stage
}

func NewPipeline(steps ...Stage) *Pipeline {
	return &Pipeline{steps: steps}
}

// Transform runs every stage in order and stops at the first failure.
func (p *Pipeline) Transform(df dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, step := range p.steps {
		var err error
		df, err = step.Apply(df)
		if err != nil {
			return dataframe.DataFrame{}, errors.Wrap(err, step.Name())
		}
	}
	return df, nil
}

// Stages returns the names of the configured stages.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

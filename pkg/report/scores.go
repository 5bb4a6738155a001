// Package report renders diagnostics for the feature selection.
package report

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// FeatureScore is the mutual information of one feature with the label.
type FeatureScore struct {
	Name     string
	Score    float64
	Selected bool
}

var (
	selectedColor = color.RGBA{R: 50, G: 50, B: 255, A: 255}
	droppedColor  = color.RGBA{R: 180, G: 180, B: 180, A: 255}
)

// PlotScores saves a bar chart of the scores to filename. Selected features
// are drawn in blue, dropped ones in grey. The image format follows the file
// extension.
func PlotScores(title string, scores []FeatureScore, filename string) error {
	if len(scores) == 0 {
		return errors.New("report: no scores to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Mutual information"
	p.Y.Min = 0

	selected := make(plotter.Values, len(scores))
	dropped := make(plotter.Values, len(scores))
	names := make([]string, len(scores))
	for i, s := range scores {
		names[i] = s.Name
		if s.Selected {
			selected[i] = s.Score
		} else {
			dropped[i] = s.Score
		}
	}

	width := vg.Points(14)
	for _, set := range []struct {
		values plotter.Values
		color  color.Color
		label  string
	}{
		{selected, selectedColor, "selected"},
		{dropped, droppedColor, "dropped"},
	} {
		bars, err := plotter.NewBarChart(set.values, width)
		if err != nil {
			return errors.Wrap(err, "bar chart")
		}
		bars.Color = set.color
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.Legend.Add(set.label, bars)
	}
	p.Legend.Top = true
	p.NominalX(names...)

	w := vg.Length(len(scores))*vg.Points(22) + 2*vg.Inch
	if err := p.Save(w, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save %s", filename)
	}
	return nil
}

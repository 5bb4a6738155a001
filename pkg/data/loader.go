package data

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"

	"github.com/englhardt/des-evaluation/pkg/arff"
	"github.com/englhardt/des-evaluation/pkg/dataprep"
)

// Conventional DAMI column names.
const (
	IDColumn        = "id"
	IndicatorColumn = "outlier"
)

var ErrMissingColumn = errors.New("data: required column missing")

// LoadLabeled parses the ARFF file at path and returns its labeled table.
func LoadLabeled(path string) (dataframe.DataFrame, error) {
	ds, err := arff.ParseFile(path)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	df, err := Label(ds)
	if err != nil {
		return dataframe.DataFrame{}, errors.Wrapf(err, "label %s", path)
	}
	return df, nil
}

// Label converts a parsed dataset into a table holding every attribute except
// the identifier and the indicator, in declared order, followed by the label.
// Numeric attributes become float columns, everything else string columns.
func Label(ds *arff.Dataset) (dataframe.DataFrame, error) {
	for _, name := range []string{IDColumn, IndicatorColumn} {
		if ds.Index(name) < 0 {
			return dataframe.DataFrame{}, errors.Wrapf(ErrMissingColumn, "%q", name)
		}
	}

	var cols []series.Series
	for i, attr := range ds.Attributes {
		switch attr.Name {
		case IDColumn, IndicatorColumn, dataprep.LabelColumn:
			continue
		}
		if attr.Type == arff.Numeric {
			cols = append(cols, series.New(ds.Columns[i].Floats, series.Float, attr.Name))
		} else {
			cols = append(cols, series.New(ds.Columns[i].Strings, series.String, attr.Name))
		}
	}

	attr, col, _ := ds.Column(IndicatorColumn)
	indicator := col.Strings
	if attr.Type == arff.Numeric {
		// a number never equals the sentinel
		indicator = make([]string, len(col.Floats))
	}
	cols = append(cols, series.New(dataprep.OutlierLabel(indicator), series.String, dataprep.LabelColumn))

	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, errors.Wrap(df.Err, "build table")
	}
	return df, nil
}

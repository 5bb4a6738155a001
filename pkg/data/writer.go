package data

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pkg/errors"
)

// WriteCSV writes df to path without header or index, creating parent
// directories and replacing an existing file.
func WriteCSV(path string, df dataframe.DataFrame) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer file.Close()

	bw := bufio.NewWriter(file)
	if err := EncodeCSV(bw, df); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return file.Close()
}

// EncodeCSV writes the rows of df as comma separated records. Floats use the
// shortest representation that round-trips.
func EncodeCSV(w io.Writer, df dataframe.DataFrame) error {
	cols := make([][]string, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		if s.Type() != series.Float {
			cols = append(cols, s.Records())
			continue
		}
		values := s.Float()
		formatted := make([]string, len(values))
		for i, v := range values {
			formatted[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		cols = append(cols, formatted)
	}

	writer := csv.NewWriter(w)
	record := make([]string, len(cols))
	for i := range df.Nrow() {
		for j := range cols {
			record[j] = cols[j][i]
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrapf(err, "row %d", i)
		}
	}
	writer.Flush()
	return writer.Error()
}

package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// WriteCSV writes the table to w as CSV: one header row with the column
// names in their stable order, then one row per observation. Numeric
// cells use the shortest representation that round-trips.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.order); err != nil {
		return regressErrors.Wrap(err, "dataset.Table.WriteCSV: header")
	}

	row := make([]string, len(t.order))
	for i := 0; i < t.n; i++ {
		for j, name := range t.order {
			if floats, ok := t.nums[name]; ok {
				row[j] = strconv.FormatFloat(floats[i], 'g', -1, 64)
			} else {
				row[j] = t.cats[name][i]
			}
		}
		if err := cw.Write(row); err != nil {
			return regressErrors.Wrapf(err, "dataset.Table.WriteCSV: row %d", i+1)
		}
	}

	cw.Flush()
	return regressErrors.Wrap(cw.Error(), "dataset.Table.WriteCSV")
}

// SaveCSV writes the table to a CSV file at path, creating or
// truncating it.
func (t *Table) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return regressErrors.Wrapf(err, "dataset.Table.SaveCSV: create %s", path)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return regressErrors.Wrapf(f.Close(), "dataset.Table.SaveCSV: close %s", path)
}

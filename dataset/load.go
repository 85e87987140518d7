package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"time"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// Load reads the movie table from a CSV file at path.
//
// The header row must contain every column named in §6 of the input
// contract (Rate through Episodes); extra columns are ignored. Cell
// values are returned untouched, so all trimming and coercion happens
// in Clean.
//
// Errors:
//   - ValueError: if a required header is missing
//   - ErrEmptyData: if the file has no data rows
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, regressErrors.Wrapf(err, "dataset.Load: open %s", path)
	}
	defer f.Close()

	records, err := LoadReader(f)
	if err != nil {
		return nil, regressErrors.Wrapf(err, "dataset.Load: %s", path)
	}
	return records, nil
}

// LoadReader reads the movie table from r. See Load.
func LoadReader(r io.Reader) ([]Record, error) {
	start := time.Now()

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, regressErrors.Wrap(err, "dataset.LoadReader: read header")
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, regressErrors.NewValueError("dataset.LoadReader",
				"missing required column "+name)
		}
	}

	var records []Record
	for row := 2; ; row++ {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, regressErrors.Wrapf(err, "dataset.LoadReader: row %d", row)
		}
		records = append(records, Record{
			Rate:        cells[idx[ColRate]],
			Votes:       cells[idx[ColVotes]],
			Duration:    cells[idx[ColDuration]],
			Certificate: cells[idx[ColCertificate]],
			Nudity:      cells[idx[ColNudity]],
			Violence:    cells[idx[ColViolence]],
			Profanity:   cells[idx[ColProfanity]],
			Alcohol:     cells[idx[ColAlcohol]],
			Frightening: cells[idx[ColFrightening]],
			Genre:       cells[idx[ColGenre]],
			Date:        cells[idx[ColDate]],
			Type:        cells[idx[ColType]],
			Episodes:    cells[idx[ColEpisodes]],
		})
	}

	if len(records) == 0 {
		return nil, regressErrors.Wrap(regressErrors.ErrEmptyData, "dataset.LoadReader")
	}

	log.GetLoggerWithName("dataset").Info("loaded raw records",
		log.OperationKey, log.OperationLoad,
		log.RowsKey, len(records),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return records, nil
}

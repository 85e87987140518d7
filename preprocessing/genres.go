// Package preprocessing provides the feature-engineering estimators of
// the pipeline: genre indicator expansion and the Box-Cox response
// transform. Both follow the Fit/Transform estimator convention and
// derive new dataset tables rather than mutating their input.
package preprocessing

import (
	"fmt"
	"strings"
	"time"

	"github.com/sawruhv/Less-Stress-More-Regress/core/model"
	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
	"github.com/sawruhv/Less-Stress-More-Regress/pkg/log"
)

// GenreEncoder expands the delimited Genre column into one numeric 0/1
// indicator column per distinct genre token.
//
// The vocabulary is collected in first-seen order over the fitted
// corpus, so re-running on the same input reproduces the same columns
// in the same order. Tokens are sanitized into identifier-safe column
// names ("Sci-Fi" becomes "Sci_Fi").
type GenreEncoder struct {
	state  *model.StateManager
	logger log.Logger

	// Vocabulary holds the distinct raw genre tokens in first-seen order.
	Vocabulary []string

	names    []string       // sanitized column names aligned with Vocabulary
	tokenIdx map[string]int // raw token -> vocabulary position
}

// NewGenreEncoder creates an unfitted GenreEncoder.
func NewGenreEncoder() *GenreEncoder {
	e := &GenreEncoder{
		state: model.NewStateManager(),
	}
	e.logger = log.GetLoggerWithName("preprocessing").With(
		log.ModelNameKey, "GenreEncoder",
	)
	return e
}

// Fit collects the genre vocabulary from the table's Genre column.
//
// Errors:
//   - ErrUnknownColumn: if the table has no Genre column
//   - ErrEmptyData: if no genre token occurs in the corpus
//   - ValueError: if two distinct tokens sanitize to the same name
func (e *GenreEncoder) Fit(t *dataset.Table) (err error) {
	defer regressErrors.Recover(&err, "GenreEncoder.Fit")
	start := time.Now()

	genres, err := t.Labels(dataset.ColGenre)
	if err != nil {
		return regressErrors.Wrap(err, "GenreEncoder.Fit")
	}

	vocab := make([]string, 0, 32)
	tokenIdx := make(map[string]int)
	nameSeen := make(map[string]string) // sanitized name -> raw token
	names := make([]string, 0, 32)

	for _, cell := range genres {
		for _, token := range splitGenres(cell) {
			if _, known := tokenIdx[token]; known {
				continue
			}
			name := sanitizeToken(token)
			if prev, clash := nameSeen[name]; clash {
				return regressErrors.NewValueError("GenreEncoder.Fit",
					fmt.Sprintf("tokens %q and %q both sanitize to column %q", prev, token, name))
			}
			nameSeen[name] = token
			tokenIdx[token] = len(vocab)
			vocab = append(vocab, token)
			names = append(names, name)
		}
	}

	if len(vocab) == 0 {
		return regressErrors.Wrap(regressErrors.ErrEmptyData, "GenreEncoder.Fit: no genre tokens")
	}

	e.Vocabulary = vocab
	e.names = names
	e.tokenIdx = tokenIdx
	e.state.SetFitted()
	e.state.SetDimensions(len(vocab), t.NumRows())

	e.logger.Info("vocabulary collected",
		log.OperationKey, log.OperationFit,
		log.FeaturesKey, len(vocab),
		log.SamplesKey, t.NumRows(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)
	return nil
}

// Transform returns a new table with one indicator column per
// vocabulary token appended and the original Genre column removed. A
// row's indicator is 1.0 exactly when that token appears in its genre
// set; tokens unseen at fit time are ignored.
func (e *GenreEncoder) Transform(t *dataset.Table) (_ *dataset.Table, err error) {
	defer regressErrors.Recover(&err, "GenreEncoder.Transform")

	if !e.state.IsFitted() {
		return nil, regressErrors.NewNotFittedError("GenreEncoder", "Transform")
	}

	genres, err := t.Labels(dataset.ColGenre)
	if err != nil {
		return nil, regressErrors.Wrap(err, "GenreEncoder.Transform")
	}

	indicators := make([][]float64, len(e.Vocabulary))
	for i := range indicators {
		indicators[i] = make([]float64, t.NumRows())
	}
	for row, cell := range genres {
		for _, token := range splitGenres(cell) {
			if idx, known := e.tokenIdx[token]; known {
				indicators[idx][row] = 1.0
			}
		}
	}

	out, err := t.WithoutColumn(dataset.ColGenre)
	if err != nil {
		return nil, regressErrors.Wrap(err, "GenreEncoder.Transform")
	}
	for i, name := range e.names {
		out, err = out.WithFloats(name, indicators[i])
		if err != nil {
			return nil, regressErrors.Wrap(err, "GenreEncoder.Transform")
		}
	}

	e.logger.Debug("indicators added",
		log.OperationKey, log.OperationTransform,
		log.FeaturesKey, len(e.names),
		log.SamplesKey, t.NumRows(),
	)
	return out, nil
}

// FitTransform fits the vocabulary on t and transforms it in one call.
func (e *GenreEncoder) FitTransform(t *dataset.Table) (*dataset.Table, error) {
	if err := e.Fit(t); err != nil {
		return nil, err
	}
	return e.Transform(t)
}

// FeatureNames returns the sanitized indicator column names in
// vocabulary order.
func (e *GenreEncoder) FeatureNames() []string {
	out := make([]string, len(e.names))
	copy(out, e.names)
	return out
}

// IsFitted reports whether Fit has succeeded.
func (e *GenreEncoder) IsFitted() bool {
	return e.state.IsFitted()
}

// splitGenres tokenizes a comma-and-space delimited genre cell.
func splitGenres(cell string) []string {
	parts := strings.Split(cell, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if tok := strings.TrimSpace(p); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// sanitizeToken maps a genre token to an identifier-safe column name,
// replacing every rune outside [A-Za-z0-9] with an underscore.
func sanitizeToken(token string) string {
	var b strings.Builder
	b.Grow(len(token))
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}

package formula

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/sawruhv/Less-Stress-More-Regress/dataset"
	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// InterceptName is the design-matrix name of the leading constant column.
const InterceptName = "(Intercept)"

// Design is a formula materialized against one table: the numeric
// design matrix, the response vector, and the bookkeeping linking
// design columns back to formula terms.
type Design struct {
	// X is the n × p design matrix; column 0 is the intercept.
	X *mat.Dense
	// Y is the response vector.
	Y []float64
	// Names holds one name per design column, Names[0] == "(Intercept)".
	Names []string
	// TermColumns holds, per formula term, the design column indices the
	// term expanded into.
	TermColumns [][]int
	// Levels records each categorical column's level order as captured
	// at build time (baseline first), so a later build against new data
	// can reproduce the same dummy layout.
	Levels map[string][]string
}

// Build materializes the formula against t. Categorical levels are
// collected from t in first-seen order; the first level is the dummy
// baseline.
//
// Errors:
//   - ErrUnknownColumn: if the formula references a column t lacks
//   - ErrNotPositive: if a log term meets a value ≤ 0
//   - ValueError: if the response is not numeric, or a categorical
//     column has fewer than two levels
func (f *Formula) Build(t *dataset.Table) (*Design, error) {
	return f.build(t, nil)
}

// BuildWithLevels materializes the formula against t reusing a level
// layout captured by an earlier Build, so train and test designs share
// column meaning. Rows with levels absent from the layout get all-zero
// dummies.
func (f *Formula) BuildWithLevels(t *dataset.Table, levels map[string][]string) (*Design, error) {
	if levels == nil {
		return nil, regressErrors.NewValueError("formula.BuildWithLevels", "nil level layout")
	}
	return f.build(t, levels)
}

func (f *Formula) build(t *dataset.Table, fixed map[string][]string) (*Design, error) {
	n := t.NumRows()

	y, err := t.Floats(f.Response)
	if err != nil {
		return nil, regressErrors.Wrap(err, "formula.Build: response "+f.Response)
	}

	d := &Design{
		Y:      y,
		Names:  []string{InterceptName},
		Levels: make(map[string][]string),
	}

	cols := [][]float64{constantColumn(n, 1)}
	for _, term := range f.Terms {
		termCols, termNames, err := f.expand(t, term, fixed, d.Levels)
		if err != nil {
			return nil, err
		}
		indices := make([]int, len(termCols))
		for i := range termCols {
			indices[i] = len(cols) + i
		}
		d.TermColumns = append(d.TermColumns, indices)
		cols = append(cols, termCols...)
		d.Names = append(d.Names, termNames...)
	}

	d.X = mat.NewDense(n, len(cols), nil)
	for j, col := range cols {
		for i := 0; i < n; i++ {
			d.X.Set(i, j, col[i])
		}
	}
	return d, nil
}

// expand returns the design columns and names for one term.
func (f *Formula) expand(t *dataset.Table, term Term, fixed, captured map[string][]string) ([][]float64, []string, error) {
	switch term.Kind {
	case KindNumeric:
		col, err := t.Floats(term.Column)
		if err != nil {
			return nil, nil, regressErrors.Wrap(err, "formula.Build")
		}
		return [][]float64{col}, []string{term.Column}, nil

	case KindLog:
		col, err := t.Floats(term.Column)
		if err != nil {
			return nil, nil, regressErrors.Wrap(err, "formula.Build")
		}
		logged := make([]float64, len(col))
		for i, v := range col {
			if v <= 0 {
				return nil, nil, regressErrors.Wrapf(regressErrors.ErrNotPositive,
					"formula.Build: log(%s) at row %d (value %v)", term.Column, i, v)
			}
			logged[i] = math.Log(v)
		}
		return [][]float64{logged}, []string{term.String()}, nil

	case KindCategorical:
		return f.expandCategorical(t, term.Column, fixed, captured)

	case KindInteraction:
		leftCols, leftNames, err := f.expand(t, *term.Left, fixed, captured)
		if err != nil {
			return nil, nil, err
		}
		rightCols, rightNames, err := f.expand(t, *term.Right, fixed, captured)
		if err != nil {
			return nil, nil, err
		}
		n := t.NumRows()
		var cols [][]float64
		var names []string
		for li, lc := range leftCols {
			for ri, rc := range rightCols {
				prod := make([]float64, n)
				for i := 0; i < n; i++ {
					prod[i] = lc[i] * rc[i]
				}
				cols = append(cols, prod)
				names = append(names, leftNames[li]+":"+rightNames[ri])
			}
		}
		return cols, names, nil

	default:
		return nil, nil, regressErrors.NewValueError("formula.Build",
			fmt.Sprintf("unknown term kind %d", term.Kind))
	}
}

func (f *Formula) expandCategorical(t *dataset.Table, column string, fixed, captured map[string][]string) ([][]float64, []string, error) {
	labels, err := t.Labels(column)
	if err != nil {
		return nil, nil, regressErrors.Wrap(err, "formula.Build")
	}

	var levels []string
	if fixed != nil {
		var ok bool
		levels, ok = fixed[column]
		if !ok {
			return nil, nil, regressErrors.NewValueError("formula.BuildWithLevels",
				fmt.Sprintf("no captured levels for column %q", column))
		}
	} else if prior, ok := captured[column]; ok {
		// The column may appear in several terms; reuse one layout.
		levels = prior
	} else {
		levels, err = t.Levels(column)
		if err != nil {
			return nil, nil, regressErrors.Wrap(err, "formula.Build")
		}
	}
	if len(levels) < 2 {
		return nil, nil, regressErrors.NewValueError("formula.Build",
			fmt.Sprintf("categorical %q has %d level(s); need at least 2", column, len(levels)))
	}
	captured[column] = levels

	n := t.NumRows()
	cols := make([][]float64, len(levels)-1)
	names := make([]string, len(levels)-1)
	index := make(map[string]int, len(levels))
	for i, lv := range levels {
		index[lv] = i
	}
	for j := 1; j < len(levels); j++ {
		cols[j-1] = make([]float64, n)
		names[j-1] = fmt.Sprintf("%s[%s]", column, levels[j])
	}
	for i, lab := range labels {
		if idx, ok := index[lab]; ok && idx > 0 {
			cols[idx-1][i] = 1
		}
		// Baseline and unseen levels leave all dummies at zero.
	}
	return cols, names, nil
}

func constantColumn(n int, v float64) []float64 {
	col := make([]float64, n)
	for i := range col {
		col[i] = v
	}
	return col
}

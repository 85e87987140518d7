package dataset

import (
	"fmt"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

// ColumnKind discriminates the two column representations a Table holds.
type ColumnKind int

const (
	// Numeric columns hold float64 values (ratings, votes, indicators).
	Numeric ColumnKind = iota
	// Categorical columns hold string labels (certificate, advisories).
	Categorical
)

// Column describes one named column for NewTable. Exactly one of Floats
// or Labels must be set.
type Column struct {
	Name   string
	Floats []float64
	Labels []string
}

// Table is an immutable column store over the cleaned dataset. Each
// pipeline stage derives a new Table (WithFloats, WithoutColumn, Subset)
// rather than mutating a shared one, so earlier snapshots stay valid for
// comparison.
//
// Accessors return the backing slices without copying; callers must not
// modify them.
type Table struct {
	n     int
	order []string
	nums  map[string][]float64
	cats  map[string][]string
}

// NewTable builds a Table from the given columns. All columns must have
// the same length and unique names.
func NewTable(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, regressErrors.Wrap(regressErrors.ErrEmptyData, "dataset.NewTable: no columns")
	}

	t := &Table{
		order: make([]string, 0, len(cols)),
		nums:  make(map[string][]float64),
		cats:  make(map[string][]string),
	}
	t.n = -1

	for _, col := range cols {
		if col.Name == "" {
			return nil, regressErrors.NewValueError("dataset.NewTable", "column with empty name")
		}
		if t.has(col.Name) {
			return nil, regressErrors.NewValueError("dataset.NewTable",
				fmt.Sprintf("duplicate column %q", col.Name))
		}
		switch {
		case col.Floats != nil && col.Labels != nil:
			return nil, regressErrors.NewValueError("dataset.NewTable",
				fmt.Sprintf("column %q sets both Floats and Labels", col.Name))
		case col.Floats != nil:
			if err := t.checkLen(col.Name, len(col.Floats)); err != nil {
				return nil, err
			}
			t.nums[col.Name] = col.Floats
		case col.Labels != nil:
			if err := t.checkLen(col.Name, len(col.Labels)); err != nil {
				return nil, err
			}
			t.cats[col.Name] = col.Labels
		default:
			return nil, regressErrors.NewValueError("dataset.NewTable",
				fmt.Sprintf("column %q sets neither Floats nor Labels", col.Name))
		}
		t.order = append(t.order, col.Name)
	}
	return t, nil
}

func (t *Table) has(name string) bool {
	_, numeric := t.nums[name]
	_, categorical := t.cats[name]
	return numeric || categorical
}

func (t *Table) checkLen(name string, l int) error {
	if t.n == -1 {
		t.n = l
		return nil
	}
	if l != t.n {
		return regressErrors.NewDimensionError("dataset.NewTable: "+name, t.n, l, 0)
	}
	return nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return t.n
}

// Columns returns the column names in their stable order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// HasColumn reports whether name exists in the table.
func (t *Table) HasColumn(name string) bool {
	return t.has(name)
}

// Kind returns the representation of the named column.
func (t *Table) Kind(name string) (ColumnKind, error) {
	if _, ok := t.nums[name]; ok {
		return Numeric, nil
	}
	if _, ok := t.cats[name]; ok {
		return Categorical, nil
	}
	return 0, regressErrors.Wrapf(regressErrors.ErrUnknownColumn, "dataset.Kind: %s", name)
}

// Floats returns the named numeric column.
func (t *Table) Floats(name string) ([]float64, error) {
	col, ok := t.nums[name]
	if !ok {
		if _, cat := t.cats[name]; cat {
			return nil, regressErrors.NewValueError("dataset.Floats",
				fmt.Sprintf("column %q is categorical", name))
		}
		return nil, regressErrors.Wrapf(regressErrors.ErrUnknownColumn, "dataset.Floats: %s", name)
	}
	return col, nil
}

// Labels returns the named categorical column.
func (t *Table) Labels(name string) ([]string, error) {
	col, ok := t.cats[name]
	if !ok {
		if _, num := t.nums[name]; num {
			return nil, regressErrors.NewValueError("dataset.Labels",
				fmt.Sprintf("column %q is numeric", name))
		}
		return nil, regressErrors.Wrapf(regressErrors.ErrUnknownColumn, "dataset.Labels: %s", name)
	}
	return col, nil
}

// Levels returns the distinct values of a categorical column in
// first-seen order. The first level is the dummy-coding baseline, so
// the order must be stable across runs.
func (t *Table) Levels(name string) ([]string, error) {
	col, err := t.Labels(name)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var levels []string
	for _, v := range col {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			levels = append(levels, v)
		}
	}
	return levels, nil
}

// WithFloats returns a new Table with an added numeric column. The
// receiver is unchanged; unchanged columns are shared, not copied.
func (t *Table) WithFloats(name string, values []float64) (*Table, error) {
	if t.has(name) {
		return nil, regressErrors.NewValueError("dataset.WithFloats",
			fmt.Sprintf("column %q already exists", name))
	}
	if len(values) != t.n {
		return nil, regressErrors.NewDimensionError("dataset.WithFloats: "+name, t.n, len(values), 0)
	}
	nt := t.clone()
	nt.nums[name] = values
	nt.order = append(nt.order, name)
	return nt, nil
}

// WithoutColumn returns a new Table lacking the named column.
func (t *Table) WithoutColumn(name string) (*Table, error) {
	if !t.has(name) {
		return nil, regressErrors.Wrapf(regressErrors.ErrUnknownColumn, "dataset.WithoutColumn: %s", name)
	}
	nt := t.clone()
	delete(nt.nums, name)
	delete(nt.cats, name)
	order := make([]string, 0, len(nt.order)-1)
	for _, c := range nt.order {
		if c != name {
			order = append(order, c)
		}
	}
	nt.order = order
	return nt, nil
}

// Subset returns a new Table containing the given rows, in the given
// order. Row data is copied, so the subset is independent of the parent.
func (t *Table) Subset(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.n {
			return nil, regressErrors.NewValueError("dataset.Subset",
				fmt.Sprintf("row index %d out of range [0,%d)", r, t.n))
		}
	}
	nt := &Table{
		n:     len(rows),
		order: append([]string(nil), t.order...),
		nums:  make(map[string][]float64, len(t.nums)),
		cats:  make(map[string][]string, len(t.cats)),
	}
	for name, col := range t.nums {
		sub := make([]float64, len(rows))
		for i, r := range rows {
			sub[i] = col[r]
		}
		nt.nums[name] = sub
	}
	for name, col := range t.cats {
		sub := make([]string, len(rows))
		for i, r := range rows {
			sub[i] = col[r]
		}
		nt.cats[name] = sub
	}
	return nt, nil
}

// clone copies the table's bookkeeping while sharing column data.
func (t *Table) clone() *Table {
	nt := &Table{
		n:     t.n,
		order: append([]string(nil), t.order...),
		nums:  make(map[string][]float64, len(t.nums)+1),
		cats:  make(map[string][]string, len(t.cats)),
	}
	for name, col := range t.nums {
		nt.nums[name] = col
	}
	for name, col := range t.cats {
		nt.cats[name] = col
	}
	return nt
}

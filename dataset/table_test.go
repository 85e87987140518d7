package dataset

import (
	"errors"
	"reflect"
	"sort"
	"testing"

	regressErrors "github.com/sawruhv/Less-Stress-More-Regress/pkg/errors"
)

func testTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable(
		Column{Name: "Rate", Floats: []float64{7.5, 8.1, 6.2, 5.9}},
		Column{Name: "Votes", Floats: []float64{1234, 2000, 450, 90}},
		Column{Name: "Certificate", Labels: []string{"R", "PG-13", "R", "PG"}},
	)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func TestNewTableValidation(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"no columns", nil},
		{"empty name", []Column{{Name: "", Floats: []float64{1}}}},
		{"duplicate name", []Column{
			{Name: "Rate", Floats: []float64{1}},
			{Name: "Rate", Floats: []float64{2}},
		}},
		{"length mismatch", []Column{
			{Name: "Rate", Floats: []float64{1, 2}},
			{Name: "Votes", Floats: []float64{1}},
		}},
		{"both representations", []Column{
			{Name: "Rate", Floats: []float64{1}, Labels: []string{"a"}},
		}},
		{"neither representation", []Column{{Name: "Rate"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable(tt.cols...); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestTableAccessors(t *testing.T) {
	table := testTable(t)

	if table.NumRows() != 4 {
		t.Errorf("NumRows() = %d, want 4", table.NumRows())
	}
	want := []string{"Rate", "Votes", "Certificate"}
	if !reflect.DeepEqual(table.Columns(), want) {
		t.Errorf("Columns() = %v, want %v", table.Columns(), want)
	}

	if kind, err := table.Kind("Rate"); err != nil || kind != Numeric {
		t.Errorf("Kind(Rate) = %v, %v, want Numeric", kind, err)
	}
	if kind, err := table.Kind("Certificate"); err != nil || kind != Categorical {
		t.Errorf("Kind(Certificate) = %v, %v, want Categorical", kind, err)
	}

	if _, err := table.Floats("Certificate"); err == nil {
		t.Error("Floats on categorical column should fail")
	}
	if _, err := table.Labels("Rate"); err == nil {
		t.Error("Labels on numeric column should fail")
	}
	if _, err := table.Floats("Nope"); !errors.Is(err, regressErrors.ErrUnknownColumn) {
		t.Errorf("want ErrUnknownColumn, got %v", err)
	}
}

func TestTableLevelsFirstSeenOrder(t *testing.T) {
	table := testTable(t)
	levels, err := table.Levels("Certificate")
	if err != nil {
		t.Fatalf("Levels() error = %v", err)
	}
	want := []string{"R", "PG-13", "PG"}
	if !reflect.DeepEqual(levels, want) {
		t.Errorf("Levels() = %v, want %v", levels, want)
	}
}

func TestWithFloatsLeavesParentUnchanged(t *testing.T) {
	table := testTable(t)

	derived, err := table.WithFloats("RateLog", []float64{2.01, 2.09, 1.82, 1.77})
	if err != nil {
		t.Fatalf("WithFloats() error = %v", err)
	}

	if table.HasColumn("RateLog") {
		t.Error("parent table gained the derived column")
	}
	if !derived.HasColumn("RateLog") {
		t.Error("derived table is missing the new column")
	}
	if len(derived.Columns()) != len(table.Columns())+1 {
		t.Errorf("derived has %d columns, want %d", len(derived.Columns()), len(table.Columns())+1)
	}

	if _, err := table.WithFloats("Rate", []float64{1, 2, 3, 4}); err == nil {
		t.Error("adding an existing column name should fail")
	}
	if _, err := table.WithFloats("Short", []float64{1}); err == nil {
		t.Error("adding a wrong-length column should fail")
	}
}

func TestWithoutColumn(t *testing.T) {
	table := testTable(t)

	derived, err := table.WithoutColumn("Votes")
	if err != nil {
		t.Fatalf("WithoutColumn() error = %v", err)
	}
	if derived.HasColumn("Votes") {
		t.Error("derived table still has the dropped column")
	}
	if !table.HasColumn("Votes") {
		t.Error("parent table lost the column")
	}
	if _, err := table.WithoutColumn("Nope"); err == nil {
		t.Error("dropping an unknown column should fail")
	}
}

func TestSubset(t *testing.T) {
	table := testTable(t)

	sub, err := table.Subset([]int{2, 0})
	if err != nil {
		t.Fatalf("Subset() error = %v", err)
	}
	if sub.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", sub.NumRows())
	}
	rate, _ := sub.Floats("Rate")
	if rate[0] != 6.2 || rate[1] != 7.5 {
		t.Errorf("subset rate = %v, want [6.2 7.5]", rate)
	}
	cert, _ := sub.Labels("Certificate")
	if cert[0] != "R" || cert[1] != "R" {
		t.Errorf("subset certificate = %v, want [R R]", cert)
	}

	if _, err := table.Subset([]int{4}); err == nil {
		t.Error("out-of-range row index should fail")
	}
	if _, err := table.Subset([]int{-1}); err == nil {
		t.Error("negative row index should fail")
	}
}

func TestSplitDisjointAndExhaustive(t *testing.T) {
	n := 40
	rowID := make([]float64, n)
	for i := range rowID {
		rowID[i] = float64(i)
	}
	table, err := NewTable(Column{Name: "RowID", Floats: rowID})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	train, test, err := Split(table, 0.85, 42)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if train.NumRows() != 34 || test.NumRows() != 6 {
		t.Errorf("split sizes = (%d, %d), want (34, 6)", train.NumRows(), test.NumRows())
	}

	trainIDs, _ := train.Floats("RowID")
	testIDs, _ := test.Floats("RowID")
	all := append(append([]float64(nil), trainIDs...), testIDs...)
	sort.Float64s(all)
	for i, v := range all {
		if v != float64(i) {
			t.Fatalf("partition is not disjoint+exhaustive: sorted ids %v", all)
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	n := 25
	rowID := make([]float64, n)
	for i := range rowID {
		rowID[i] = float64(i)
	}
	table, err := NewTable(Column{Name: "RowID", Floats: rowID})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	train1, _, err := Split(table, 0.8, 7)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	train2, _, err := Split(table, 0.8, 7)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	ids1, _ := train1.Floats("RowID")
	ids2, _ := train2.Floats("RowID")
	if !reflect.DeepEqual(ids1, ids2) {
		t.Error("same seed should reproduce the identical partition")
	}
}

func TestSplitValidation(t *testing.T) {
	table := testTable(t)

	if _, _, err := Split(table, 0, 1); err == nil {
		t.Error("fraction 0 should fail")
	}
	if _, _, err := Split(table, 1, 1); err == nil {
		t.Error("fraction 1 should fail")
	}
	if _, _, err := Split(table, 0.1, 1); err == nil {
		t.Error("fraction leaving an empty train partition should fail")
	}
}

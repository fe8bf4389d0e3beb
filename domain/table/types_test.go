package table

import (
	"math"
	"testing"
)

func TestNew_RejectsUnequalColumnLengths(t *testing.T) {
	_, err := New(map[string]Column{
		"a": NumericColumn([]float64{1, 2, 3}),
		"b": NumericColumn([]float64{1, 2}),
	})
	if err == nil {
		t.Fatal("expected error for unequal column lengths")
	}
}

func TestNew_EmptyTable(t *testing.T) {
	tbl, err := New(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Rows() != 0 {
		t.Errorf("empty table rows = %d, want 0", tbl.Rows())
	}
}

func TestTable_ColumnNamesSorted(t *testing.T) {
	tbl := MustNew(map[string]Column{
		"c": NumericColumn([]float64{1}),
		"a": NumericColumn([]float64{2}),
		"b": NumericColumn([]float64{3}),
	})

	names := tbl.ColumnNames()
	want := []string{"a", "b", "c"}
	for i, name := range names {
		if name != want[i] {
			t.Fatalf("ColumnNames() = %v, want %v", names, want)
		}
	}
}

func TestColumn_MissingCount(t *testing.T) {
	cases := []struct {
		name string
		col  Column
		want int
	}{
		{"numeric with NaN", NumericColumn([]float64{1, math.NaN(), 3, math.NaN()}), 2},
		{"numeric clean", NumericColumn([]float64{1, 2, 3}), 0},
		{"categorical with empties", CategoricalColumn([]string{"x", "", "y", ""}), 2},
		{"categorical clean", CategoricalColumn([]string{"x", "y"}), 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.col.MissingCount(); got != tc.want {
				t.Errorf("MissingCount() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestColumn_ConstructorsCopyInput(t *testing.T) {
	values := []float64{1, 2, 3}
	col := NumericColumn(values)
	values[0] = 99

	if col.Numbers[0] != 1 {
		t.Error("NumericColumn must copy its input, not alias it")
	}
}

func TestColumn_Kind(t *testing.T) {
	if !NumericColumn([]float64{1}).IsNumeric() {
		t.Error("numeric column must report IsNumeric")
	}
	if CategoricalColumn([]string{"x"}).IsNumeric() {
		t.Error("categorical column must not report IsNumeric")
	}
}

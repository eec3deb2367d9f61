package form

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLayout_PacksRowsAndClampsSpans(t *testing.T) {
	f, err := New([]Field{
		{Name: "a", ColSpan: 1},
		{Name: "b", ColSpan: 1},
		{Name: "c", ColSpan: 3},
		{Name: "h", Type: KindHidden},
		{Name: "d"},
		{Name: "e", ColSpan: 2},
	}, WithColumns(2))
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	want := []Row{
		{Cells: []Cell{{Name: "a", Span: 1}, {Name: "b", Span: 1}}},
		{Cells: []Cell{{Name: "c", Span: 2}}},
		{Cells: []Cell{{Name: "d", Span: 1}}},
		{Cells: []Cell{{Name: "e", Span: 2}}},
	}
	if diff := cmp.Diff(want, f.Layout()); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestWithColumns_Clamps(t *testing.T) {
	cases := map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 3: 3, 7: 3}
	for in, want := range cases {
		f, err := New(nil, WithColumns(in))
		if err != nil {
			t.Fatalf("new form: %v", err)
		}
		if got := f.Columns(); got != want {
			t.Fatalf("WithColumns(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestLayout_SingleColumnDefault(t *testing.T) {
	f, err := New([]Field{{Name: "a", ColSpan: 3}, {Name: "b", ColSpan: 2}})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	rows := f.Layout()
	if len(rows) != 2 || rows[0].Cells[0].Span != 1 || rows[1].Cells[0].Span != 1 {
		t.Fatalf("unexpected single column layout %+v", rows)
	}
}

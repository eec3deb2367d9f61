package form

const (
	minColumns = 1
	maxColumns = 3
)

// Cell places one field within a row.
type Cell struct {
	Name string
	Span int
}

// Row is one line of the layout grid.
type Row struct {
	Cells []Cell
}

// Columns returns the active column count.
func (f *Form) Columns() int {
	if f == nil {
		return minColumns
	}
	return f.columns
}

// Layout packs visible fields into rows left to right. A field whose span
// does not fit in the remaining width of the current row starts a new row.
// Hidden fields take no space.
func (f *Form) Layout() []Row {
	if f == nil {
		return nil
	}
	var (
		rows    []Row
		current Row
		used    int
	)
	for _, field := range f.fields {
		if Dispatch(field.Type).Control == ControlHidden {
			continue
		}
		span := f.span(field)
		if used+span > f.columns && len(current.Cells) > 0 {
			rows = append(rows, current)
			current, used = Row{}, 0
		}
		current.Cells = append(current.Cells, Cell{Name: field.Name, Span: span})
		used += span
	}
	if len(current.Cells) > 0 {
		rows = append(rows, current)
	}
	return rows
}

// span clamps the requested column span to 1..Columns().
func (f *Form) span(field Field) int {
	span := field.ColSpan
	if span < minColumns {
		span = minColumns
	}
	if span > f.columns {
		span = f.columns
	}
	return span
}

func clampColumns(columns int) int {
	switch {
	case columns < minColumns:
		return minColumns
	case columns > maxColumns:
		return maxColumns
	default:
		return columns
	}
}

package listview

// Scope selects which rows feed an export.
type Scope string

const (
	ScopeAll      Scope = "all"
	ScopePage     Scope = "page"
	ScopeSelected Scope = "selected"
)

// ParseScope maps a request value onto a scope, defaulting to all.
func ParseScope(raw string) Scope {
	switch Scope(raw) {
	case ScopePage, ScopeSelected:
		return Scope(raw)
	default:
		return ScopeAll
	}
}

// Column describes one export column. Accessor renders the cell for a row.
type Column struct {
	ID       string
	Header   string
	Accessor func(Row) string
}

// SummaryItem is one aggregate line appended under an export.
type SummaryItem struct {
	Label string
	Value string
}

// ExportSpec is built when the user opens the export dialog and consumed
// once. Summary, when set, receives the resolved row source exactly once.
type ExportSpec struct {
	Scope   Scope
	Columns []Column
	Summary func(rows []Row) []SummaryItem
}

// Export is a column-labelled payload ready for a CSV or PDF writer.
type Export struct {
	Header  []string
	Body    [][]string
	Summary []SummaryItem
}

// Project maps the resolved row source through the spec's columns. A cell
// whose accessor panics or yields nothing becomes "-"; one bad cell never
// aborts the rest of the export. An empty source yields a zero-row body.
func Project(filtered, paged []Row, selected map[int64]bool, spec ExportSpec) Export {
	source := resolveScope(filtered, paged, selected, spec.Scope)

	header := make([]string, len(spec.Columns))
	for i, col := range spec.Columns {
		header[i] = col.Header
	}

	body := make([][]string, 0, len(source))
	for _, row := range source {
		record := make([]string, len(spec.Columns))
		for i, col := range spec.Columns {
			record[i] = projectCell(col, row)
		}
		body = append(body, record)
	}

	out := Export{Header: header, Body: body}
	if spec.Summary != nil {
		out.Summary = spec.Summary(source)
	}
	return out
}

func resolveScope(filtered, paged []Row, selected map[int64]bool, scope Scope) []Row {
	switch scope {
	case ScopePage:
		return paged
	case ScopeSelected:
		out := make([]Row, 0, len(selected))
		for _, row := range filtered {
			if selected[row.ID()] {
				out = append(out, row)
			}
		}
		return out
	default:
		return filtered
	}
}

func projectCell(col Column, row Row) (cell string) {
	defer func() {
		if recover() != nil {
			cell = "-"
		}
	}()
	if col.Accessor == nil {
		return "-"
	}
	cell = col.Accessor(row)
	if cell == "" {
		cell = "-"
	}
	return cell
}

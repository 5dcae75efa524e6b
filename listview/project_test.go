package listview

import (
	"fmt"
	"strings"
	"testing"
)

func statusColumn() Column {
	return Column{ID: "status", Header: "Status", Accessor: func(r Row) string {
		return titleCase(r.String("status"))
	}}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func TestProject_ScopeAllUsesFilteredRows(t *testing.T) {
	filtered := sampleRows()
	paged := filtered[:2]
	got := Project(filtered, paged, nil, ExportSpec{Scope: ScopeAll, Columns: []Column{statusColumn()}})
	if len(got.Body) != len(filtered) {
		t.Fatalf("expected %d body rows, got %d", len(filtered), len(got.Body))
	}
	if got.Header[0] != "Status" {
		t.Fatalf("expected header Status, got %v", got.Header)
	}
}

func TestProject_ScopePageNeverExceedsPageSize(t *testing.T) {
	filtered := sampleRows()
	page := Paginate(filtered, 1, 3)
	got := Project(filtered, page.Rows, nil, ExportSpec{Scope: ScopePage, Columns: []Column{statusColumn()}})
	if len(got.Body) != 3 {
		t.Fatalf("expected page-sized body, got %d rows", len(got.Body))
	}
}

func TestProject_ScopeSelectedEmptySetYieldsEmptyBody(t *testing.T) {
	filtered := sampleRows()
	got := Project(filtered, filtered, map[int64]bool{}, ExportSpec{Scope: ScopeSelected, Columns: []Column{statusColumn()}})
	if len(got.Body) != 0 {
		t.Fatalf("expected empty body, got %d rows", len(got.Body))
	}

	got = Project(filtered, filtered, map[int64]bool{2: true, 4: true}, ExportSpec{Scope: ScopeSelected, Columns: []Column{statusColumn()}})
	if len(got.Body) != 2 || got.Body[0][0] != "Done" || got.Body[1][0] != "Cancel" {
		t.Fatalf("expected selected rows 2,4, got %v", got.Body)
	}
}

func TestProject_PanickingAccessorBecomesPlaceholderCell(t *testing.T) {
	boom := Column{ID: "boom", Header: "Boom", Accessor: func(r Row) string {
		panic("accessor failure")
	}}
	got := Project(sampleRows(), nil, nil, ExportSpec{Scope: ScopeAll, Columns: []Column{boom, statusColumn()}})
	for i, record := range got.Body {
		if record[0] != "-" {
			t.Fatalf("row %d: expected placeholder, got %q", i, record[0])
		}
		if record[1] == "-" {
			t.Fatalf("row %d: healthy column clobbered", i)
		}
	}
}

func TestProject_EmptyAccessorValueBecomesPlaceholder(t *testing.T) {
	blank := Column{ID: "ref", Header: "Reference", Accessor: func(r Row) string { return r.String("missing") }}
	got := Project(sampleRows()[:1], nil, nil, ExportSpec{Scope: ScopeAll, Columns: []Column{blank}})
	if got.Body[0][0] != "-" {
		t.Fatalf("expected placeholder, got %q", got.Body[0][0])
	}
}

func TestProject_SummaryComputedOnceOverResolvedSource(t *testing.T) {
	calls := 0
	spec := ExportSpec{
		Scope:   ScopePage,
		Columns: []Column{statusColumn()},
		Summary: func(rows []Row) []SummaryItem {
			calls++
			return []SummaryItem{{Label: "Total", Value: fmt.Sprintf("%d", len(rows))}}
		},
	}
	filtered := sampleRows()
	got := Project(filtered, filtered[:2], nil, spec)
	if calls != 1 {
		t.Fatalf("summary called %d times", calls)
	}
	if len(got.Summary) != 1 || got.Summary[0].Value != "2" {
		t.Fatalf("expected summary over page scope, got %v", got.Summary)
	}
}

// End-to-end pipeline over three raw records: normalize, filter on status,
// paginate, export.
func TestPipelineRoundTrip(t *testing.T) {
	raw := []RawRecord{
		{"id": float64(1), "name": "B1", "state": "draft"},
		{"id": float64(2), "name": "B2", "state": "done"},
		{"id": float64(3), "name": "B3", "state": "done"},
	}
	fields := []FieldSpec{
		{Name: "name", Kind: KindString},
		{Name: "status", Source: "state", Kind: KindString},
	}
	rows := Normalize(raw, fields)

	state := NewFilterState()
	state.SetCategory("status", []string{"done"})
	filtered := Apply(rows, state, []string{"name"})
	if len(filtered) != 2 || filtered[0].ID() != 2 || filtered[1].ID() != 3 {
		t.Fatalf("expected records 2,3 in order, got %v", rowIDs(filtered))
	}

	page := Paginate(filtered, 2, 1)
	if len(page.Rows) != 1 || page.Rows[0].ID() != 3 {
		t.Fatalf("expected record 3 on page 2, got %v", rowIDs(page.Rows))
	}

	export := Project(filtered, page.Rows, nil, ExportSpec{Scope: ScopeAll, Columns: []Column{statusColumn()}})
	if export.Header[0] != "Status" {
		t.Fatalf("unexpected header %v", export.Header)
	}
	if len(export.Body) != 2 || export.Body[0][0] != "Done" || export.Body[1][0] != "Done" {
		t.Fatalf("unexpected body %v", export.Body)
	}
}

// A successful fetch with zero records flows through as a single empty page.
func TestPipelineEmptyState(t *testing.T) {
	rows := Normalize([]RawRecord{}, productFields)
	filtered := Apply(rows, NewFilterState(), []string{"name"})
	page := Paginate(filtered, 1, 25)
	if page.TotalPages != 1 || page.ClampedPage != 1 || len(page.Rows) != 0 {
		t.Fatalf("expected empty page 1/1, got %+v", page)
	}
}

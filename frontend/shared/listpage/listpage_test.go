package listpage

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"stockboard/listview"
)

func testConfig() Config {
	return Config{
		Key:             "batches",
		Title:           "Batches",
		Path:            "/board/batches",
		PredicateFields: []string{"name"},
		Categories: []CategoryFilter{
			{Field: "status", Label: "Status", Options: []Option{{Value: "draft", Label: "Draft"}, {Value: "done", Label: "Done"}}},
		},
		DateField: "scheduledDate",
		Columns: []listview.Column{
			{ID: "name", Header: "Name", Accessor: func(r listview.Row) string { return r.String("name") }},
			{ID: "status", Header: "Status", Accessor: func(r listview.Row) string { return r.String("status") }},
			{ID: "date", Header: "Scheduled", Accessor: func(r listview.Row) string { return r.String("scheduledDate") }},
		},
	}
}

func TestParseState_DecodesFiltersPagerAndSelection(t *testing.T) {
	r := httptest.NewRequest("GET", "/board/batches?q=out&f_status=draft&f_status=done&from=2026-01-01&to=2026-01-31&page=3&page_size=10&sel=1,7,abc", nil)
	state := ParseState(r, testConfig(), 25)

	if state.Filter.Search != "out" {
		t.Fatalf("expected search out, got %q", state.Filter.Search)
	}
	set := state.Filter.Categories["status"]
	if !set["draft"] || !set["done"] || len(set) != 2 {
		t.Fatalf("unexpected category set: %v", set)
	}
	if state.Filter.DateField != "scheduledDate" || state.Filter.DateFrom != "2026-01-01" || state.Filter.DateTo != "2026-01-31" {
		t.Fatalf("unexpected date state: %+v", state.Filter)
	}
	if state.Pager.Page != 3 || state.Pager.PageSize != 10 {
		t.Fatalf("unexpected pager: %+v", state.Pager)
	}
	if !state.Selected[1] || !state.Selected[7] || len(state.Selected) != 2 {
		t.Fatalf("unexpected selection: %v", state.Selected)
	}
}

func TestParseState_RepeatedSelectionParams(t *testing.T) {
	r := httptest.NewRequest("GET", "/board/batches?sel=3&sel=5&sel=0", nil)
	state := ParseState(r, testConfig(), 25)
	if !state.Selected[3] || !state.Selected[5] || len(state.Selected) != 2 {
		t.Fatalf("unexpected selection from repeated params: %v", state.Selected)
	}
}

func TestParseState_DefaultsToFirstPageAndDefaultSize(t *testing.T) {
	r := httptest.NewRequest("GET", "/board/batches", nil)
	state := ParseState(r, testConfig(), 40)
	if state.Pager.Page != 1 || state.Pager.PageSize != 40 {
		t.Fatalf("unexpected pager defaults: %+v", state.Pager)
	}
	if !state.Filter.Empty() {
		t.Fatalf("expected empty filter state: %+v", state.Filter)
	}
}

func TestBuildExportSpec_ColumnSubsetKeepsRequestedOrder(t *testing.T) {
	r := httptest.NewRequest("GET", "/board/batches/export/csv?scope=page&cols=status,name,unknown", nil)
	spec := BuildExportSpec(r, testConfig())

	if spec.Scope != listview.ScopePage {
		t.Fatalf("expected page scope, got %s", spec.Scope)
	}
	if len(spec.Columns) != 2 || spec.Columns[0].ID != "status" || spec.Columns[1].ID != "name" {
		t.Fatalf("unexpected columns: %+v", spec.Columns)
	}
}

func TestBuildExportSpec_NoColsMeansAllColumns(t *testing.T) {
	r := httptest.NewRequest("GET", "/board/batches/export/csv", nil)
	spec := BuildExportSpec(r, testConfig())
	if spec.Scope != listview.ScopeAll || len(spec.Columns) != 3 {
		t.Fatalf("unexpected spec: scope=%s cols=%d", spec.Scope, len(spec.Columns))
	}
}

func TestListSection_RendersSelectionAndScopeControlsForExporters(t *testing.T) {
	cfg := testConfig()
	rows := []listview.Row{
		{"id": int64(1), "name": "A", "status": "draft"},
		{"id": int64(2), "name": "B", "status": "done"},
	}
	state := State{Filter: listview.NewFilterState(), Pager: listview.Pager{Page: 1, PageSize: 25}, Selected: map[int64]bool{2: true}}
	vm := Resolve(rows, state, cfg)

	var b strings.Builder
	if err := ListSection(ViewData{Config: cfg, VM: vm, CanExport: true}).Render(context.Background(), &b); err != nil {
		t.Fatalf("render list section: %v", err)
	}
	html := b.String()

	if !strings.Contains(html, `action="/board/batches/export/csv"`) {
		t.Fatalf("expected export form action in markup")
	}
	if !strings.Contains(html, `formaction="/board/batches/export/pdf"`) {
		t.Fatalf("expected pdf formaction in markup")
	}
	if !strings.Contains(html, `<option value="selected">`) {
		t.Fatalf("expected selected scope option in markup")
	}
	if !strings.Contains(html, `name="sel" value="1" form="export-form"`) {
		t.Fatalf("expected unchecked row checkbox for row 1")
	}
	if !strings.Contains(html, `name="sel" value="2" form="export-form" checked`) {
		t.Fatalf("expected checked row checkbox for selected row 2")
	}
}

func TestListSection_NoSelectionControlsWithoutExportPermission(t *testing.T) {
	cfg := testConfig()
	rows := []listview.Row{{"id": int64(1), "name": "A", "status": "draft"}}
	vm := Resolve(rows, State{Filter: listview.NewFilterState(), Pager: listview.Pager{Page: 1, PageSize: 25}}, cfg)

	var b strings.Builder
	if err := ListSection(ViewData{Config: cfg, VM: vm}).Render(context.Background(), &b); err != nil {
		t.Fatalf("render list section: %v", err)
	}
	html := b.String()

	if strings.Contains(html, "export-form") || strings.Contains(html, `name="sel"`) {
		t.Fatalf("expected no export controls without permission")
	}
}

func TestResolve_ClampsPageWhenFilterShrinksResult(t *testing.T) {
	cfg := testConfig()
	rows := []listview.Row{
		{"id": int64(1), "name": "A", "status": "draft"},
		{"id": int64(2), "name": "B", "status": "done"},
	}
	state := State{Filter: listview.NewFilterState(), Pager: listview.Pager{Page: 9, PageSize: 1}}
	state.Filter.SetCategory("status", []string{"done"})

	vm := Resolve(rows, state, cfg)
	if len(vm.Filtered) != 1 || vm.Page.ClampedPage != 1 || vm.State.Pager.Page != 1 {
		t.Fatalf("expected clamp to page 1 of 1, got %+v", vm.Page)
	}
}

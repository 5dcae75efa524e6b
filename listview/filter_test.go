package listview

import "testing"

func sampleRows() []Row {
	return []Row{
		{"id": int64(1), "name": "Outbound Batch 1", "status": "draft", "warehouse": "Main", "date": "2026-01-05 09:00:00"},
		{"id": int64(2), "name": "Outbound Batch 2", "status": "done", "warehouse": "Main", "date": "2026-01-12 14:30:00"},
		{"id": int64(3), "name": "Inbound Batch 3", "status": "done", "warehouse": "North", "date": "2026-02-01 08:15:00"},
		{"id": int64(4), "name": "Transfer Batch 4", "status": "cancel", "warehouse": "North", "date": "2026-02-20 17:45:00"},
	}
}

func rowIDs(rows []Row) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID())
	}
	return ids
}

func TestApply_EmptyStateMatchesAll(t *testing.T) {
	rows := sampleRows()
	got := Apply(rows, NewFilterState(), []string{"name"})
	if len(got) != len(rows) {
		t.Fatalf("expected all %d rows, got %d", len(rows), len(got))
	}
}

func TestApply_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	state := NewFilterState()
	state.Search = "outbound"
	got := Apply(sampleRows(), state, []string{"name", "warehouse"})
	if len(got) != 2 || got[0].ID() != 1 || got[1].ID() != 2 {
		t.Fatalf("expected rows 1,2, got %v", rowIDs(got))
	}

	state.Search = "NORTH"
	got = Apply(sampleRows(), state, []string{"name", "warehouse"})
	if len(got) != 2 || got[0].ID() != 3 || got[1].ID() != 4 {
		t.Fatalf("expected rows 3,4, got %v", rowIDs(got))
	}
}

func TestApply_CategoryMembershipIsOrWithinAndAcross(t *testing.T) {
	state := NewFilterState()
	state.SetCategory("status", []string{"draft", "done"})
	got := Apply(sampleRows(), state, nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 rows for status OR, got %v", rowIDs(got))
	}

	state.SetCategory("warehouse", []string{"North"})
	got = Apply(sampleRows(), state, nil)
	if len(got) != 1 || got[0].ID() != 3 {
		t.Fatalf("expected row 3 for status AND warehouse, got %v", rowIDs(got))
	}
}

func TestApply_FiltersCompose(t *testing.T) {
	rows := sampleRows()

	status := NewFilterState()
	status.SetCategory("status", []string{"done"})
	warehouse := NewFilterState()
	warehouse.SetCategory("warehouse", []string{"North"})
	both := NewFilterState()
	both.SetCategory("status", []string{"done"})
	both.SetCategory("warehouse", []string{"North"})

	sequential := Apply(Apply(rows, status, nil), warehouse, nil)
	combined := Apply(rows, both, nil)
	if len(sequential) != len(combined) {
		t.Fatalf("composition mismatch: %v vs %v", rowIDs(sequential), rowIDs(combined))
	}
	for i := range combined {
		if combined[i].ID() != sequential[i].ID() {
			t.Fatalf("composition mismatch at %d: %v vs %v", i, rowIDs(sequential), rowIDs(combined))
		}
	}
}

func TestApply_AddingConstraintNeverGrowsResult(t *testing.T) {
	rows := sampleRows()
	state := NewFilterState()
	state.Search = "batch"
	base := Apply(rows, state, []string{"name"})

	narrowed := state
	narrowed.Categories = map[string]map[string]bool{"status": {"done": true}}
	got := Apply(rows, narrowed, []string{"name"})
	if len(got) > len(base) {
		t.Fatalf("narrowing grew result: %d > %d", len(got), len(base))
	}

	dated := narrowed
	dated.DateField = "date"
	dated.DateFrom = "2026-01-01"
	dated.DateTo = "2026-01-31"
	got2 := Apply(rows, dated, []string{"name"})
	if len(got2) > len(got) {
		t.Fatalf("date bound grew result: %d > %d", len(got2), len(got))
	}
}

func TestApply_DateRangeInclusiveOnDayPrefix(t *testing.T) {
	state := NewFilterState()
	state.DateField = "date"
	state.DateFrom = "2026-01-12"
	state.DateTo = "2026-02-01"
	got := Apply(sampleRows(), state, nil)
	if len(got) != 2 || got[0].ID() != 2 || got[1].ID() != 3 {
		t.Fatalf("expected rows 2,3 inside inclusive range, got %v", rowIDs(got))
	}
}

func TestApply_HalfOpenDateRangeIsIgnored(t *testing.T) {
	state := NewFilterState()
	state.DateField = "date"
	state.DateFrom = "2026-02-01"
	got := Apply(sampleRows(), state, nil)
	if len(got) != 4 {
		t.Fatalf("expected unapplied predicate with one bound, got %v", rowIDs(got))
	}
}

func TestApply_MissingFieldFailsPredicateWithoutPanic(t *testing.T) {
	rows := []Row{{"id": int64(1), "name": "No Date"}}
	state := NewFilterState()
	state.DateField = "date"
	state.DateFrom = "2026-01-01"
	state.DateTo = "2026-12-31"
	if got := Apply(rows, state, nil); len(got) != 0 {
		t.Fatalf("row without date field should not match, got %v", rowIDs(got))
	}

	state = NewFilterState()
	state.SetCategory("status", []string{"done"})
	if got := Apply(rows, state, nil); len(got) != 0 {
		t.Fatalf("row without status field should not match, got %v", rowIDs(got))
	}
}

func TestApply_OrderPreserved(t *testing.T) {
	state := NewFilterState()
	state.SetCategory("status", []string{"done", "cancel"})
	got := Apply(sampleRows(), state, nil)
	want := []int64{2, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, rowIDs(got))
	}
	for i, id := range want {
		if got[i].ID() != id {
			t.Fatalf("expected %v, got %v", want, rowIDs(got))
		}
	}
}

package listview

import "testing"

func makeRows(n int) []Row {
	rows := make([]Row, 0, n)
	for i := 1; i <= n; i++ {
		rows = append(rows, Row{"id": int64(i)})
	}
	return rows
}

func TestPaginate_CoverageWithoutGapsOrDuplicates(t *testing.T) {
	for _, tc := range []struct {
		rows     int
		pageSize int
	}{
		{rows: 0, pageSize: 10},
		{rows: 9, pageSize: 3},
		{rows: 10, pageSize: 3},
		{rows: 1, pageSize: 25},
	} {
		rows := makeRows(tc.rows)
		first := Paginate(rows, 1, tc.pageSize)

		var rebuilt []Row
		for p := 1; p <= first.TotalPages; p++ {
			rebuilt = append(rebuilt, Paginate(rows, p, tc.pageSize).Rows...)
		}
		if len(rebuilt) != len(rows) {
			t.Fatalf("rows=%d size=%d: rebuilt %d rows", tc.rows, tc.pageSize, len(rebuilt))
		}
		for i := range rows {
			if rebuilt[i].ID() != rows[i].ID() {
				t.Fatalf("rows=%d size=%d: order broken at %d", tc.rows, tc.pageSize, i)
			}
		}
	}
}

func TestPaginate_ClampsPageIntoRange(t *testing.T) {
	rows := makeRows(25)

	if got := Paginate(rows, 0, 10); got.ClampedPage != 1 {
		t.Fatalf("expected clamp to 1, got %d", got.ClampedPage)
	}
	got := Paginate(rows, 10000, 10)
	if got.TotalPages != 3 || got.ClampedPage != 3 {
		t.Fatalf("expected clamp to last page 3, got %d/%d", got.ClampedPage, got.TotalPages)
	}
	if len(got.Rows) != 5 {
		t.Fatalf("expected 5 rows on last page, got %d", len(got.Rows))
	}
}

func TestPaginate_EmptyInputIsSingleEmptyPage(t *testing.T) {
	got := Paginate(nil, 1, 20)
	if got.TotalPages != 1 || got.ClampedPage != 1 || len(got.Rows) != 0 {
		t.Fatalf("expected empty page 1/1, got %+v", got)
	}
}

func TestPager_NavigationNoOpsAtBounds(t *testing.T) {
	p := Pager{Page: 1, PageSize: 10}
	if p = p.Prev(); p.Page != 1 {
		t.Fatalf("prev at first page moved to %d", p.Page)
	}
	if p = p.Next(3); p.Page != 2 {
		t.Fatalf("next should reach 2, got %d", p.Page)
	}
	p.Page = 3
	if p = p.Next(3); p.Page != 3 {
		t.Fatalf("next at last page moved to %d", p.Page)
	}
	if p = p.WithPage(99, 3); p.Page != 3 {
		t.Fatalf("out-of-range jump moved to %d", p.Page)
	}
	if p = p.WithPage(2, 3); p.Page != 2 {
		t.Fatalf("in-range jump failed, got %d", p.Page)
	}
}

func TestPager_PageSizeChangeResetsToFirstPage(t *testing.T) {
	p := Pager{Page: 4, PageSize: 10}
	p = p.WithPageSize(50)
	if p.Page != 1 || p.PageSize != 50 {
		t.Fatalf("expected page 1 size 50, got %+v", p)
	}
	// Invalid size keeps current state.
	p.Page = 2
	if p = p.WithPageSize(0); p.Page != 2 || p.PageSize != 50 {
		t.Fatalf("invalid size should no-op, got %+v", p)
	}
}

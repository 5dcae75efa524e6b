package listview

// PageResult is one page slice of a filtered row set.
type PageResult struct {
	Rows        []Row
	TotalPages  int
	ClampedPage int
}

// Paginate slices rows into a single page. The requested page is clamped
// to [1, TotalPages] so a shrinking filter result never leaves the caller
// on a page past the end. TotalPages is at least 1 even for empty input.
func Paginate(rows []Row, page, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (len(rows) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	clamped := page
	if clamped < 1 {
		clamped = 1
	}
	if clamped > totalPages {
		clamped = totalPages
	}
	start := (clamped - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return PageResult{Rows: rows[start:end], TotalPages: totalPages, ClampedPage: clamped}
}

// Pager tracks pagination state for one list page.
type Pager struct {
	Page     int
	PageSize int
}

// Next advances one page, staying put at the last page.
func (p Pager) Next(totalPages int) Pager {
	if p.Page < totalPages {
		p.Page++
	}
	return p
}

// Prev steps back one page, staying put at page 1.
func (p Pager) Prev() Pager {
	if p.Page > 1 {
		p.Page--
	}
	return p
}

// WithPage jumps to page n, ignoring jumps outside [1, totalPages].
func (p Pager) WithPage(n, totalPages int) Pager {
	if n >= 1 && n <= totalPages {
		p.Page = n
	}
	return p
}

// WithPageSize changes the page size and returns to page 1; keeping the
// old page number against a new size would silently show the wrong rows.
func (p Pager) WithPageSize(size int) Pager {
	if size > 0 {
		p.PageSize = size
		p.Page = 1
	}
	return p
}

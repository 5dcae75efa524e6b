package listpage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// ViewData drives the shared list section markup.
type ViewData struct {
	Config     Config
	VM         ViewModel
	RowActions func(listview.Row) []rbac.Action
	CanExport  bool
}

// ListSection renders the filter bar, the table and the pagination
// controls. The filter form intentionally omits the page parameter so any
// filter change starts over at page 1.
func ListSection(data ViewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		writeFilterBar(&b, data)
		if data.CanExport {
			writeExportControls(&b, data)
		}
		if len(data.VM.Page.Rows) == 0 {
			b.WriteString(`<div class="panel panel-empty"><p>No records found</p></div>`)
		} else {
			writeTable(&b, data)
		}
		writePagination(&b, data)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeFilterBar(b *strings.Builder, data ViewData) {
	cfg := data.Config
	state := data.VM.State

	fmt.Fprintf(b, `<form method="GET" action="%s" class="filterbar">`, cfg.Path)
	fmt.Fprintf(b, `<input type="search" name="q" value="%s" placeholder="Search">`,
		templ.EscapeString(state.Filter.Search))

	for _, cat := range cfg.Categories {
		selected := state.Filter.Categories[cat.Field]
		fmt.Fprintf(b, `<fieldset><legend>%s</legend>`, templ.EscapeString(cat.Label))
		for _, opt := range cat.Options {
			checked := ""
			if selected[opt.Value] {
				checked = " checked"
			}
			fmt.Fprintf(b, `<label><input type="checkbox" name="f_%s" value="%s"%s> %s</label>`,
				cat.Field, templ.EscapeString(opt.Value), checked, templ.EscapeString(opt.Label))
		}
		b.WriteString(`</fieldset>`)
	}

	if cfg.DateField != "" {
		fmt.Fprintf(b, `<input type="date" name="from" value="%s"><input type="date" name="to" value="%s">`,
			templ.EscapeString(state.Filter.DateFrom), templ.EscapeString(state.Filter.DateTo))
	}

	fmt.Fprintf(b, `<input type="hidden" name="page_size" value="%d">`, state.Pager.PageSize)
	b.WriteString(`<button type="submit">Apply</button>`)
	fmt.Fprintf(b, `<a class="btn" href="%s">Reset</a>`, cfg.Path)

	b.WriteString(`</form>`)
}

// writeExportControls renders the export form. Row checkboxes in the table
// join it through the form attribute, since the table also holds per-row
// action forms and forms cannot nest.
func writeExportControls(b *strings.Builder, data ViewData) {
	cfg := data.Config
	state := data.VM.State

	fmt.Fprintf(b, `<form id="export-form" method="GET" action="%s/export/csv" class="exportbar">`, cfg.Path)
	if state.Filter.Search != "" {
		fmt.Fprintf(b, `<input type="hidden" name="q" value="%s">`, templ.EscapeString(state.Filter.Search))
	}
	for field, set := range state.Filter.Categories {
		for value := range set {
			fmt.Fprintf(b, `<input type="hidden" name="f_%s" value="%s">`, field, templ.EscapeString(value))
		}
	}
	if state.Filter.DateFrom != "" {
		fmt.Fprintf(b, `<input type="hidden" name="from" value="%s">`, templ.EscapeString(state.Filter.DateFrom))
	}
	if state.Filter.DateTo != "" {
		fmt.Fprintf(b, `<input type="hidden" name="to" value="%s">`, templ.EscapeString(state.Filter.DateTo))
	}
	fmt.Fprintf(b, `<input type="hidden" name="page" value="%d">`, state.Pager.Page)
	fmt.Fprintf(b, `<input type="hidden" name="page_size" value="%d">`, state.Pager.PageSize)

	b.WriteString(`<label>Export <select name="scope">`)
	scopes := []Option{
		{Value: "all", Label: "All filtered rows"},
		{Value: "page", Label: "Current page"},
		{Value: "selected", Label: "Selected rows"},
	}
	for _, opt := range scopes {
		fmt.Fprintf(b, `<option value="%s">%s</option>`, opt.Value, opt.Label)
	}
	b.WriteString(`</select></label>`)
	b.WriteString(`<button type="submit">CSV</button>`)
	fmt.Fprintf(b, `<button type="submit" formaction="%s/export/pdf">PDF</button>`, cfg.Path)
	b.WriteString(`</form>`)
}

func writeTable(b *strings.Builder, data ViewData) {
	cfg := data.Config
	b.WriteString(`<table class="records"><thead><tr>`)
	if data.CanExport {
		b.WriteString(`<th></th>`)
	}
	for _, col := range cfg.Columns {
		fmt.Fprintf(b, `<th>%s</th>`, templ.EscapeString(col.Header))
	}
	if data.RowActions != nil {
		b.WriteString(`<th></th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)

	for _, row := range data.VM.Page.Rows {
		b.WriteString(`<tr>`)
		if data.CanExport {
			checked := ""
			if data.VM.State.Selected[row.ID()] {
				checked = " checked"
			}
			fmt.Fprintf(b, `<td><input type="checkbox" name="sel" value="%d" form="export-form"%s></td>`,
				row.ID(), checked)
		}
		for _, col := range cfg.Columns {
			b.WriteString(`<td>`)
			b.WriteString(templ.EscapeString(cellValue(col, row)))
			b.WriteString(`</td>`)
		}
		if data.RowActions != nil {
			b.WriteString(`<td class="actions">`)
			for _, action := range data.RowActions(row) {
				if strings.EqualFold(action.Method, "POST") {
					fmt.Fprintf(b, `<form method="POST" action="%s"><button type="submit">%s</button></form>`,
						action.URL, templ.EscapeString(action.Label))
				} else {
					fmt.Fprintf(b, `<a class="btn" href="%s">%s</a>`, action.URL, templ.EscapeString(action.Label))
				}
			}
			b.WriteString(`</td>`)
		}
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</tbody></table>`)
}

func cellValue(col listview.Column, row listview.Row) (out string) {
	defer func() {
		if recover() != nil {
			out = "-"
		}
	}()
	if col.Accessor == nil {
		return "-"
	}
	return col.Accessor(row)
}

func writePagination(b *strings.Builder, data ViewData) {
	page := data.VM.Page
	current := page.ClampedPage

	b.WriteString(`<div class="pagination">`)
	if current > 1 {
		fmt.Fprintf(b, `<a class="btn" href="%s?%s">Previous</a>`, data.Config.Path, stateQuery(data, current-1))
	}
	fmt.Fprintf(b, `<span>Page %d of %d (%d records)</span>`, current, page.TotalPages, len(data.VM.Filtered))
	if current < page.TotalPages {
		fmt.Fprintf(b, `<a class="btn" href="%s?%s">Next</a>`, data.Config.Path, stateQuery(data, current+1))
	}
	b.WriteString(`</div>`)
}

// stateQuery rebuilds the query string for links that must preserve the
// current filter state.
func stateQuery(data ViewData, page int) string {
	state := data.VM.State
	q := url.Values{}
	if state.Filter.Search != "" {
		q.Set("q", state.Filter.Search)
	}
	for field, set := range state.Filter.Categories {
		for value := range set {
			q.Add("f_"+field, value)
		}
	}
	if state.Filter.DateFrom != "" {
		q.Set("from", state.Filter.DateFrom)
	}
	if state.Filter.DateTo != "" {
		q.Set("to", state.Filter.DateTo)
	}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(state.Pager.PageSize))
	return q.Encode()
}

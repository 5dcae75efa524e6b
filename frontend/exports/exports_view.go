package exports

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockboard/frontend/shared/html"
	"stockboard/frontend/shared/nav"
	"stockboard/models"
)

// ExportHistoryPage composes the export history screen.
func ExportHistoryPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Export History</h1>`); err != nil {
			return err
		}
		if len(data.Runs) == 0 {
			return html.EmptyPanel("No exports recorded yet.").Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<table class="listtable"><thead><tr><th>When</th><th>User</th><th>Page</th><th>Format</th><th>Scope</th><th>Rows</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, run := range data.Runs {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%d</td></tr>`,
				templ.EscapeString(run.CreatedAt),
				templ.EscapeString(run.Username),
				templ.EscapeString(run.PageKey),
				templ.EscapeString(run.ExportType),
				templ.EscapeString(run.Scope),
				run.RowCount); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
	return html.Layout("Export History - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "exports")), body)
}

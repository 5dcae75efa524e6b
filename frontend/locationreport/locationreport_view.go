package locationreport

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockboard/frontend/shared/html"
	"stockboard/frontend/shared/listpage"
	"stockboard/frontend/shared/nav"
	"stockboard/models"
)

// LocationReportPage composes the per-location stock screen.
func LocationReportPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if data.FetchedAt != "" {
			if _, err := fmt.Fprintf(w, `<p class="meta">Snapshot taken at %s
<form method="POST" action="/board/api/locationreport/refresh" class="inline"><button type="submit">Refresh</button></form></p>`,
				templ.EscapeString(data.FetchedAt)); err != nil {
				return err
			}
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "locationreport")), body)
}

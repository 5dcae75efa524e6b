package moves

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

// MovesPage composes the moves history screen.
func MovesPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "moves")), body)
}

package operations

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

// OperationsPage composes the operation types screen.
func OperationsPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if err := html.Banners(data.Message, data.Error).Render(ctx, w); err != nil {
			return err
		}
		if data.CanEdit && data.EditID > 0 {
			if err := renameForm(data).Render(ctx, w); err != nil {
				return err
			}
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "operations")), body)
}

func renameForm(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form method="POST" action="/board/api/operations/%d/rename" class="editform">
<label>Name <input type="text" name="name" value="%s" required></label>
<button type="submit">Save</button>
<a class="btn" href="/board/operations">Cancel</a>
</form>`, data.EditID, templ.EscapeString(data.EditName))
		return err
	})
}

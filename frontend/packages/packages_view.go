package packages

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

// PackagesPage composes the packages screen.
func PackagesPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if err := html.Banners(data.Message, data.Error).Render(ctx, w); err != nil {
			return err
		}
		if data.CanEdit {
			if data.ShowForm {
				if err := createForm(data.FormName).Render(ctx, w); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, `<p><a class="btn" href="/board/packages?form=1">New Package</a></p>`); err != nil {
				return err
			}
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "packages")), body)
}

func createForm(name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form method="POST" action="/board/api/packages" class="editform">
<h2>New Package</h2>
<label>Name <input type="text" name="name" value="%s" required></label>
<button type="submit">Create</button>
<a class="btn" href="/board/packages">Cancel</a>
</form>`, templ.EscapeString(name))
		return err
	})
}

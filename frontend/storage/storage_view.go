package storage

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

// StoragePage composes the storage categories screen.
func StoragePage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if err := html.Banners(data.Message, data.Error).Render(ctx, w); err != nil {
			return err
		}
		if data.CanEdit {
			if data.ShowForm {
				if err := categoryForm(data.Form).Render(ctx, w); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, `<p><a class="btn" href="/board/storage?form=1">New Storage Category</a></p>`); err != nil {
				return err
			}
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "storage")), body)
}

func categoryForm(form FormValues) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "New Storage Category"
		if form.ID > 0 {
			heading = "Edit Storage Category"
		}
		if _, err := fmt.Fprintf(w, `<form method="POST" action="/board/api/storage" class="editform">
<h2>%s</h2>
<input type="hidden" name="edit_id" value="%d">
<label>Name <input type="text" name="name" value="%s" required></label>
<label>Max Weight (kg) <input type="text" name="max_weight" value="%s" inputmode="decimal"></label>
<label>New Product Policy <select name="allow_new_product">`,
			templ.EscapeString(heading), form.ID,
			templ.EscapeString(form.Name), templ.EscapeString(form.MaxWeight)); err != nil {
			return err
		}
		for _, value := range []string{"empty", "same", "mixed"} {
			selected := ""
			if value == form.AllowNewProduct {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, value, selected, templ.EscapeString(allowLabel(value))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>
<button type="submit">Save</button>
<a class="btn" href="/board/storage">Cancel</a>
</form>`)
		return err
	})
}

package products

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

// ProductsPage composes the products screen.
func ProductsPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<h1>%s</h1>`, templ.EscapeString(data.Title)); err != nil {
			return err
		}
		if err := html.Banners(data.Message, data.Error).Render(ctx, w); err != nil {
			return err
		}
		if data.CanEdit {
			if data.ShowForm {
				if err := productForm(data.Form).Render(ctx, w); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, `<p><a class="btn" href="/board/products?form=1">New Product</a></p>`); err != nil {
				return err
			}
		}
		if data.FetchErr != "" {
			return html.ErrorPanel(data.FetchErr, data.List.Config.Path).Render(ctx, w)
		}
		return listpage.ListSection(data.List).Render(ctx, w)
	})
	return html.Layout(data.Title+" - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "products")), body)
}

func productForm(form FormValues) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		heading := "New Product"
		if form.ID > 0 {
			heading = "Edit Product"
		}
		_, err := fmt.Fprintf(w, `<form method="POST" action="/board/api/products" class="editform">
<h2>%s</h2>
<input type="hidden" name="edit_id" value="%d">
<label>Reference <input type="text" name="reference" value="%s"></label>
<label>Name <input type="text" name="name" value="%s" required></label>
<label>Price <input type="text" name="price" value="%s" inputmode="decimal"></label>
<label>Barcode <input type="text" name="barcode" value="%s"></label>
<button type="submit">Save</button>
<a class="btn" href="/board/products">Cancel</a>
</form>`,
			templ.EscapeString(heading),
			form.ID,
			templ.EscapeString(form.Reference),
			templ.EscapeString(form.Name),
			templ.EscapeString(form.Price),
			templ.EscapeString(form.Barcode))
		return err
	})
}

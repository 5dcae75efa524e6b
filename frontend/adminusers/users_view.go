package adminusers

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"stockboard/frontend/shared/html"
	"stockboard/frontend/shared/nav"
	"stockboard/infrastructure/rbac"
	"stockboard/models"
)

// UsersListPage composes the admin users screen.
func UsersListPage(session models.Session, data PageData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<h1>Users</h1>`); err != nil {
			return err
		}
		if err := html.Banners(data.Status, data.ErrorMessage).Render(ctx, w); err != nil {
			return err
		}
		if err := createUserForm(data).Render(ctx, w); err != nil {
			return err
		}
		if len(data.Users) == 0 {
			return html.EmptyPanel("No users yet.").Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<table class="listtable"><thead><tr><th>ID</th><th>Username</th><th>Role</th></tr></thead><tbody>`); err != nil {
			return err
		}
		for _, u := range data.Users {
			if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td></tr>`,
				u.ID, templ.EscapeString(u.Username), templ.EscapeString(u.Role)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
	return html.Layout("Users - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "users")), body)
}

func createUserForm(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<form method="POST" action="/board/admin/users" class="editform">
<h2>New User</h2>
<label>Username <input type="text" name="username" value="%s" required></label>
<label>Password <input type="password" name="password" required></label>
<label>Role <select name="role">`, templ.EscapeString(data.FormUsername)); err != nil {
			return err
		}
		for _, role := range []string{rbac.RoleViewer, rbac.RoleManager, rbac.RoleAdmin} {
			selected := ""
			if role == data.FormRole {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, role, selected, role); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</select></label>
<button type="submit">Create</button>
</form>`)
		return err
	})
}

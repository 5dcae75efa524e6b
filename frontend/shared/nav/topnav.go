package nav

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"stockboard/models"
)

// TopNavData is shared with page renderers.
type TopNavData struct {
	Username    string
	Role        string
	ActivePage  string
	Permissions map[string]int
}

func BuildTopNavData(session models.Session, activePage string) TopNavData {
	return TopNavData{
		Username:    session.User.Username,
		Role:        session.User.Role,
		ActivePage:  activePage,
		Permissions: session.ScreenPermissions,
	}
}

type navLink struct {
	key   string
	perm  string
	label string
	href  string
}

var navLinks = []navLink{
	{key: "batches", perm: "BATCHES_LIST_VIEW", label: "Batches", href: "/board/batches"},
	{key: "moves", perm: "MOVES_LIST_VIEW", label: "Moves History", href: "/board/moves"},
	{key: "operations", perm: "OPERATIONS_LIST_VIEW", label: "Operations", href: "/board/operations"},
	{key: "packages", perm: "PACKAGES_LIST_VIEW", label: "Packages", href: "/board/packages"},
	{key: "products", perm: "PRODUCTS_LIST_VIEW", label: "Products", href: "/board/products"},
	{key: "storage", perm: "STORAGE_LIST_VIEW", label: "Storage Categories", href: "/board/storage"},
	{key: "locationreport", perm: "LOCATION_REPORT_VIEW", label: "By Location", href: "/board/locationreport"},
	{key: "exports", perm: "EXPORT_HISTORY_VIEW", label: "Exports", href: "/board/exports"},
	{key: "users", perm: "ADMIN_USERS_LIST_VIEW", label: "Users", href: "/board/admin/users"},
	{key: "settings", perm: "SETTINGS_VIEW", label: "Settings", href: "/board/settings"},
}

// TopNav renders the shared navigation bar; links the session cannot reach
// are omitted rather than disabled.
func TopNav(data TopNavData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<nav class="topnav"><span class="brand">Stockboard</span><ul>`)
		for _, link := range navLinks {
			if data.Permissions[link.perm] == 0 {
				continue
			}
			class := ""
			if link.key == data.ActivePage {
				class = ` class="active"`
			}
			fmt.Fprintf(&b, `<li%s><a href="%s">%s</a></li>`, class, link.href, templ.EscapeString(link.label))
		}
		b.WriteString(`</ul><form method="POST" action="/logout" class="logout">`)
		fmt.Fprintf(&b, `<span>%s (%s)</span><button type="submit">Log out</button>`,
			templ.EscapeString(data.Username), templ.EscapeString(data.Role))
		b.WriteString(`</form></nav>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

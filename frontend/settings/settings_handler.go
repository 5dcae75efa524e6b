package settings

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/html"
	"stockboard/frontend/shared/nav"
	"stockboard/infrastructure/sqlite"
)

// DisplaySettingsPageHandler shows the dashboard display preferences.
func DisplaySettingsPageHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		pageSize := DefaultPageSize(r.Context(), db)
		message := strings.TrimSpace(r.URL.Query().Get("status"))
		errMsg := strings.TrimSpace(r.URL.Query().Get("error"))

		body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<h1>Display Settings</h1>`); err != nil {
				return err
			}
			if err := html.Banners(message, errMsg).Render(ctx, w); err != nil {
				return err
			}
			_, err := fmt.Fprintf(w, `<form method="POST" action="/board/settings">
<label>Rows per page <input type="number" name="page_size" min="1" max="500" value="%d"></label>
<button type="submit">Save</button>
</form>`, pageSize)
			return err
		})

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := html.Layout("Settings - Stockboard", nav.TopNav(nav.BuildTopNavData(session, "settings")), body)
		if err := page.Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render settings page", http.StatusInternalServerError)
		}
	}
}

// DisplaySettingsUpdateHandler persists the rows-per-page preference.
func DisplaySettingsUpdateHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/settings?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}
		size, err := strconv.Atoi(strings.TrimSpace(r.FormValue("page_size")))
		if err != nil || size < 1 || size > 500 {
			http.Redirect(w, r, "/board/settings?error="+url.QueryEscape("page size must be between 1 and 500"), http.StatusSeeOther)
			return
		}
		if err := SavePageSize(r.Context(), db, size); err != nil {
			http.Redirect(w, r, "/board/settings?error="+url.QueryEscape("failed to save settings"), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/board/settings?status="+url.QueryEscape("settings saved"), http.StatusSeeOther)
	}
}

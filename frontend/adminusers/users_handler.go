package adminusers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/infrastructure/cache"
	"stockboard/infrastructure/sqlite"
)

// UsersPageQueryHandler renders the admin users list page.
func UsersPageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		users, err := LoadUsers(r.Context(), db)
		if err != nil {
			slog.Error("admin users load failed", slog.Any("err", err))
			http.Error(w, "failed to load users", http.StatusInternalServerError)
			return
		}

		q := r.URL.Query()
		data := PageData{
			Users:        users,
			Status:       q.Get("status"),
			ErrorMessage: q.Get("error"),
			FormUsername: strings.TrimSpace(q.Get("username")),
			FormRole:     strings.TrimSpace(q.Get("role")),
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := UsersListPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render users page", http.StatusInternalServerError)
		}
	}
}

// CreateUserCommandHandler provisions a dashboard user. The user cache is
// invalidated so a re-created username cannot resurrect a stale entry.
func CreateUserCommandHandler(db *sqlite.DB, userCache *cache.UserCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := sessioncontext.GetSessionFromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/admin/users?error="+url.QueryEscape("invalid form data"), http.StatusSeeOther)
			return
		}

		username := strings.TrimSpace(r.FormValue("username"))
		password := strings.TrimSpace(r.FormValue("password"))
		role := strings.TrimSpace(r.FormValue("role"))

		if err := CreateUser(r.Context(), db, username, password, role); err != nil {
			redirect := "/board/admin/users?error=" + url.QueryEscape(err.Error()) +
				"&username=" + url.QueryEscape(username) + "&role=" + url.QueryEscape(role)
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}
		if userCache != nil {
			userCache.Delete(username)
		}

		http.Redirect(w, r, "/board/admin/users?status="+url.QueryEscape("user created"), http.StatusSeeOther)
	}
}

package moves

import (
	"log/slog"
	"net/http"

	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// PageQueryHandler renders the moves history list.
func PageQueryHandler(deps Deps) http.HandlerFunc {
	cfg := Config()
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		pageSize := settings.DefaultPageSize(r.Context(), deps.DB)
		state := listpage.ParseState(r, cfg, pageSize)

		data := PageData{
			Title:     cfg.Title,
			CanExport: rbac.Allowed(session.ScreenPermissions, "MOVES_EXPORT"),
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("moves fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load move history from the warehouse backend."
			rows = []listview.Row{}
		}

		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        listpage.Resolve(rows, state, cfg),
			CanExport: data.CanExport,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := MovesPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render moves page", http.StatusInternalServerError)
		}
	}
}

package exports

import (
	"log/slog"
	"net/http"

	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/infrastructure/sqlite"
)

// PageData drives the export history renderer.
type PageData struct {
	Runs []RunView
}

// PageQueryHandler renders the export history list.
func PageQueryHandler(db *sqlite.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		runs, err := LoadRecentRuns(r.Context(), db, 200)
		if err != nil {
			slog.Error("export history load failed", slog.Any("err", err))
			http.Error(w, "failed to load export history", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ExportHistoryPage(session, PageData{Runs: runs}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render export history", http.StatusInternalServerError)
		}
	}
}

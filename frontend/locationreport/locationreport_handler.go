package locationreport

import (
	"log/slog"
	"net/http"

	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// PageQueryHandler renders the per-location stock aggregate.
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
			CanExport: rbac.Allowed(session.ScreenPermissions, "LOCATION_REPORT_EXPORT"),
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, fetchedAt, err := deps.Snapshot.Rows(r.Context(), rc)
		if err != nil {
			slog.Error("location report fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load stock levels from the warehouse backend."
			rows = []listview.Row{}
		} else {
			data.FetchedAt = fetchedAt.Format("15:04:05")
		}

		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        listpage.Resolve(rows, state, cfg),
			CanExport: data.CanExport,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := LocationReportPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render location report", http.StatusInternalServerError)
		}
	}
}

// RefreshCommandHandler forces a snapshot refetch before redirecting back.
func RefreshCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		rc := listpage.RequestContextFor(session, deps.Tenant)
		if err := deps.Snapshot.Refresh(r.Context(), rc); err != nil {
			slog.Error("location report refresh failed", slog.Any("err", err))
		}
		http.Redirect(w, r, "/board/locationreport", http.StatusSeeOther)
	}
}

// CSVExportHandler exports the aggregate honoring the live filter state.
func CSVExportHandler(deps Deps) http.HandlerFunc {
	return snapshotExportHandler(deps, "csv")
}

// PDFExportHandler is CSVExportHandler's PDF twin.
func PDFExportHandler(deps Deps) http.HandlerFunc {
	return snapshotExportHandler(deps, "pdf")
}

func snapshotExportHandler(deps Deps, format string) http.HandlerFunc {
	cfg := Config()
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		state := listpage.ParseState(r, cfg, listpage.DefaultPageSize)
		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, _, err := deps.Snapshot.Rows(r.Context(), rc)
		if err != nil {
			slog.Error("location report export fetch failed", slog.Any("err", err))
			http.Error(w, "failed to load stock levels", http.StatusBadGateway)
			return
		}

		vm := listpage.Resolve(rows, state, cfg)
		spec := listpage.BuildExportSpec(r, cfg)
		export := listview.Project(vm.Filtered, vm.Page.Rows, state.Selected, spec)

		if format == "pdf" {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename="+cfg.Key+".pdf")
			if err := listpage.WritePDF(w, cfg.Title, export); err != nil {
				slog.Error("location report pdf failed", slog.Any("err", err))
				return
			}
		} else {
			if err := listpage.WriteCSV(w, cfg.Key+".csv", export); err != nil {
				slog.Error("location report csv failed", slog.Any("err", err))
				return
			}
		}

		listpage.RecordExportRun(r.Context(), deps.DB, session.UserID, cfg, format, spec.Scope, len(export.Body))
	}
}

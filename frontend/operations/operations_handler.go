package operations

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// PageQueryHandler renders the operation types list.
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
		q := r.URL.Query()

		data := PageData{
			Title:     cfg.Title,
			Message:   strings.TrimSpace(q.Get("status")),
			Error:     strings.TrimSpace(q.Get("error")),
			CanExport: rbac.Allowed(session.ScreenPermissions, "OPERATIONS_EXPORT"),
			CanEdit:   rbac.Allowed(session.ScreenPermissions, "OPERATIONS_EDIT"),
		}
		// A failed rename round-trips the submitted values so the form
		// reopens with them intact.
		if id, err := strconv.ParseInt(q.Get("edit_id"), 10, 64); err == nil && id > 0 {
			data.EditID = id
			data.EditName = strings.TrimSpace(q.Get("edit_name"))
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("operations fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load operation types from the warehouse backend."
			rows = []listview.Row{}
		}

		perms := session.ScreenPermissions
		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        listpage.Resolve(rows, state, cfg),
			CanExport: data.CanExport,
			RowActions: func(row listview.Row) []rbac.Action {
				id := strconv.FormatInt(row.ID(), 10)
				return rbac.Gate([]rbac.Action{
					{Key: "OPERATIONS_EDIT", Label: "Rename", Method: "GET", URL: cfg.Path + "?edit_id=" + id + "&edit_name=" + url.QueryEscape(row.String("name"))},
				}, perms)
			},
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := OperationsPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render operations page", http.StatusInternalServerError)
		}
	}
}

// RenameCommandHandler updates one operation type's name on the backend.
func RenameCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/operations?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Redirect(w, r, "/board/operations?error="+url.QueryEscape("invalid operation type id"), http.StatusSeeOther)
			return
		}
		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, "/board/operations?error="+url.QueryEscape("name is required")+"&edit_id="+strconv.FormatInt(id, 10), http.StatusSeeOther)
			return
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		_, err = deps.ERP.Mutate(r.Context(), rc, erpModel, id, "update", map[string]any{"name": name})
		if err != nil {
			slog.Error("operation type rename failed", slog.Int64("id", id), slog.Any("err", err))
			redirect := "/board/operations?error=" + url.QueryEscape(err.Error()) +
				"&edit_id=" + strconv.FormatInt(id, 10) + "&edit_name=" + url.QueryEscape(name)
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}

		auditErr := deps.DB.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return deps.Audit.Write(ctx, tx, session.UserID, "operation_type_rename", "operations", strconv.FormatInt(id, 10), nil, map[string]any{"name": name})
		})
		if auditErr != nil {
			slog.Error("operation audit write failed", slog.Int64("id", id), slog.Any("err", auditErr))
		}

		http.Redirect(w, r, "/board/operations?status="+url.QueryEscape("operation type renamed"), http.StatusSeeOther)
	}
}

package batches

import (
	"context"
	"fmt"
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

// PageQueryHandler renders the batch transfers list.
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
			Message:   strings.TrimSpace(r.URL.Query().Get("status")),
			Error:     strings.TrimSpace(r.URL.Query().Get("error")),
			CanExport: rbac.Allowed(session.ScreenPermissions, "BATCHES_EXPORT"),
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("batches fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load batch transfers from the warehouse backend."
			rows = []listview.Row{}
		}

		vm := listpage.Resolve(rows, state, cfg)
		perms := session.ScreenPermissions
		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        vm,
			CanExport: data.CanExport,
			RowActions: func(row listview.Row) []rbac.Action {
				return rbac.Gate(rowActions(row), perms)
			},
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := BatchesPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render batches page", http.StatusInternalServerError)
		}
	}
}

// rowActions lists every state transition the row's status allows; Gate
// trims them to what the session may do.
func rowActions(row listview.Row) []rbac.Action {
	base := "/board/api/batches/" + strconv.FormatInt(row.ID(), 10)
	switch row.String("status") {
	case "draft":
		return []rbac.Action{
			{Key: "BATCHES_CONFIRM", Label: "Confirm", Method: "POST", URL: base + "/confirm"},
			{Key: "BATCHES_CANCEL", Label: "Cancel", Method: "POST", URL: base + "/cancel"},
		}
	case "in_progress":
		return []rbac.Action{
			{Key: "BATCHES_DONE", Label: "Mark Done", Method: "POST", URL: base + "/done"},
			{Key: "BATCHES_CANCEL", Label: "Cancel", Method: "POST", URL: base + "/cancel"},
		}
	default:
		return nil
	}
}

// StateCommandHandler advances one batch to the given target state and
// refetches on the follow-up GET; no local record state is kept.
func StateCommandHandler(deps Deps, target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Redirect(w, r, "/board/batches?error="+url.QueryEscape("invalid batch id"), http.StatusSeeOther)
			return
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		_, err = deps.ERP.Mutate(r.Context(), rc, erpModel, id, "update", map[string]any{"state": target})
		if err != nil {
			slog.Error("batch state change failed", slog.Int64("id", id), slog.String("target", target), slog.Any("err", err))
			http.Redirect(w, r, "/board/batches?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		writeStateAudit(r, deps, session.UserID, id, target)
		msg := fmt.Sprintf("batch %d set to %s", id, statusLabel(target))
		http.Redirect(w, r, "/board/batches?status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}

func writeStateAudit(r *http.Request, deps Deps, userID, batchID int64, target string) {
	err := deps.DB.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
		return deps.Audit.Write(ctx, tx, userID, "batch_state_"+target, "batches", strconv.FormatInt(batchID, 10), nil, map[string]any{"state": target})
	})
	if err != nil {
		slog.Error("batch audit write failed", slog.Int64("id", batchID), slog.Any("err", err))
	}
}

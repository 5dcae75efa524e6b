package packages

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"

	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// PageQueryHandler renders the packages list.
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
			CanExport: rbac.Allowed(session.ScreenPermissions, "PACKAGES_EXPORT"),
			CanEdit:   rbac.Allowed(session.ScreenPermissions, "PACKAGES_EDIT"),
			FormName:  strings.TrimSpace(q.Get("name")),
		}
		data.ShowForm = data.CanEdit && (q.Get("form") == "1" || data.Error != "")

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("packages fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load packages from the warehouse backend."
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
					{Key: "PACKAGES_LABEL", Label: "Label", Method: "GET", URL: "/board/api/packages/" + id + "/label"},
				}, perms)
			},
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := PackagesPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render packages page", http.StatusInternalServerError)
		}
	}
}

// CreateCommandHandler registers a new package on the backend.
func CreateCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/packages?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		name := strings.TrimSpace(r.FormValue("name"))
		if name == "" {
			http.Redirect(w, r, "/board/packages?form=1&error="+url.QueryEscape("package name is required"), http.StatusSeeOther)
			return
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		id, err := deps.ERP.Mutate(r.Context(), rc, erpModel, 0, "create", map[string]any{"name": name})
		if err != nil {
			slog.Error("package create failed", slog.Any("err", err))
			redirect := "/board/packages?form=1&name=" + url.QueryEscape(name) + "&error=" + url.QueryEscape(err.Error())
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}

		auditErr := deps.DB.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return deps.Audit.Write(ctx, tx, session.UserID, "package_create", "packages", strconv.FormatInt(id, 10), nil, map[string]any{"name": name})
		})
		if auditErr != nil {
			slog.Error("package audit write failed", slog.Int64("id", id), slog.Any("err", auditErr))
		}

		http.Redirect(w, r, "/board/packages?status="+url.QueryEscape("package created"), http.StatusSeeOther)
	}
}

// LabelQueryHandler streams a printable barcode label for one package.
func LabelQueryHandler(deps Deps) http.HandlerFunc {
	cfg := Config()
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid package id", http.StatusBadRequest)
			return
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		records, err := deps.ERP.SearchRead(r.Context(), rc, erpModel, erp.Query{
			Domain: []erp.Condition{{Field: "id", Op: "=", Value: id}},
			Fields: cfg.ERPFields,
			Limit:  1,
		})
		if err != nil {
			slog.Error("package label fetch failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "could not load package", http.StatusBadGateway)
			return
		}
		if len(records) == 0 {
			http.Error(w, "package not found", http.StatusNotFound)
			return
		}

		row := listview.Normalize(records[:1], cfg.Fields)[0]
		pdfBytes, code, err := renderPackageLabelPDF(LabelData{
			PackageID:   row.ID(),
			Name:        row.String("name"),
			PackageType: row.String("packageType"),
			Location:    row.String("location"),
		}, time.Now())
		if err != nil {
			slog.Error("package label render failed", slog.Int64("id", id), slog.Any("err", err))
			http.Error(w, "could not render label", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "label-"+code+".pdf"))
		if _, err := w.Write(pdfBytes); err != nil {
			slog.Error("package label write failed", slog.Int64("id", id), slog.Any("err", err))
		}
	}
}

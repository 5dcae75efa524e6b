package storage

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/rbac"
	"stockboard/listview"
)

// PageQueryHandler renders the storage categories list.
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
			CanExport: rbac.Allowed(session.ScreenPermissions, "STORAGE_EXPORT"),
			CanEdit:   rbac.Allowed(session.ScreenPermissions, "STORAGE_EDIT"),
		}
		data.Form = formValuesFromQuery(q)
		data.ShowForm = data.CanEdit && (q.Get("form") == "1" || data.Form.ID > 0 || data.Error != "")

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("storage categories fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load storage categories from the warehouse backend."
			rows = []listview.Row{}
		}

		perms := session.ScreenPermissions
		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        listpage.Resolve(rows, state, cfg),
			CanExport: data.CanExport,
			RowActions: func(row listview.Row) []rbac.Action {
				editQ := url.Values{}
				editQ.Set("edit_id", strconv.FormatInt(row.ID(), 10))
				editQ.Set("name", row.String("name"))
				if w, ok := row["maxWeight"].(float64); ok && w > 0 {
					editQ.Set("max_weight", strconv.FormatFloat(w, 'f', -1, 64))
				}
				editQ.Set("allow_new_product", row.String("allowNewProduct"))
				return rbac.Gate([]rbac.Action{
					{Key: "STORAGE_EDIT", Label: "Edit", Method: "GET", URL: cfg.Path + "?" + editQ.Encode()},
				}, perms)
			},
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := StoragePage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render storage categories page", http.StatusInternalServerError)
		}
	}
}

func formValuesFromQuery(q url.Values) FormValues {
	form := FormValues{
		Name:            strings.TrimSpace(q.Get("name")),
		MaxWeight:       strings.TrimSpace(q.Get("max_weight")),
		AllowNewProduct: strings.TrimSpace(q.Get("allow_new_product")),
	}
	if id, err := strconv.ParseInt(q.Get("edit_id"), 10, 64); err == nil && id > 0 {
		form.ID = id
	}
	return form
}

// SaveCommandHandler creates or updates a storage category on the backend.
func SaveCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/storage?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		form := FormValues{
			Name:            strings.TrimSpace(r.FormValue("name")),
			MaxWeight:       strings.TrimSpace(r.FormValue("max_weight")),
			AllowNewProduct: strings.TrimSpace(r.FormValue("allow_new_product")),
		}
		if id, err := strconv.ParseInt(r.FormValue("edit_id"), 10, 64); err == nil && id > 0 {
			form.ID = id
		}

		if form.Name == "" {
			http.Redirect(w, r, formRedirect(form, "storage category name is required"), http.StatusSeeOther)
			return
		}
		if _, ok := allowLabels[form.AllowNewProduct]; form.AllowNewProduct != "" && !ok {
			http.Redirect(w, r, formRedirect(form, "unknown new product policy"), http.StatusSeeOther)
			return
		}

		payload := map[string]any{"name": form.Name}
		if form.AllowNewProduct != "" {
			payload["allow_new_product"] = form.AllowNewProduct
		}
		if form.MaxWeight != "" {
			weight, err := strconv.ParseFloat(form.MaxWeight, 64)
			if err != nil || weight < 0 {
				http.Redirect(w, r, formRedirect(form, "max weight must be a non-negative number"), http.StatusSeeOther)
				return
			}
			payload["max_weight"] = weight
		}

		method := "create"
		if form.ID > 0 {
			method = "update"
		}
		rc := listpage.RequestContextFor(session, deps.Tenant)
		id, err := deps.ERP.Mutate(r.Context(), rc, erpModel, form.ID, method, payload)
		if err != nil {
			slog.Error("storage category save failed", slog.Int64("id", form.ID), slog.Any("err", err))
			http.Redirect(w, r, formRedirect(form, err.Error()), http.StatusSeeOther)
			return
		}

		auditErr := deps.DB.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
			return deps.Audit.Write(ctx, tx, session.UserID, "storage_category_"+method, "storage", strconv.FormatInt(id, 10), nil, payload)
		})
		if auditErr != nil {
			slog.Error("storage audit write failed", slog.Int64("id", id), slog.Any("err", auditErr))
		}

		http.Redirect(w, r, "/board/storage?status="+url.QueryEscape("storage category saved"), http.StatusSeeOther)
	}
}

func formRedirect(form FormValues, errMsg string) string {
	q := url.Values{}
	q.Set("form", "1")
	if form.ID > 0 {
		q.Set("edit_id", strconv.FormatInt(form.ID, 10))
	}
	q.Set("name", form.Name)
	q.Set("max_weight", form.MaxWeight)
	q.Set("allow_new_product", form.AllowNewProduct)
	q.Set("error", errMsg)
	return "/board/storage?" + q.Encode()
}

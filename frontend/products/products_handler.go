package products

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

// PageQueryHandler renders the products list.
func PageQueryHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := Config()
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
			CanExport: rbac.Allowed(session.ScreenPermissions, "PRODUCTS_EXPORT"),
			CanEdit:   rbac.Allowed(session.ScreenPermissions, "PRODUCTS_EDIT"),
		}
		data.Form = formValuesFromQuery(q)
		data.ShowForm = data.CanEdit && (q.Get("form") == "1" || data.Form.ID > 0 || data.Error != "")

		rc := listpage.RequestContextFor(session, deps.Tenant)
		rows, err := listpage.Fetch(r.Context(), deps.ERP, rc, cfg)
		if err != nil {
			slog.Error("products fetch failed", slog.Any("err", err))
			data.FetchErr = "Could not load products from the warehouse backend."
			rows = []listview.Row{}
		}
		cfg.Categories = []listpage.CategoryFilter{categoryFilterFromRows(rows)}

		perms := session.ScreenPermissions
		data.List = listpage.ViewData{
			Config:    cfg,
			VM:        listpage.Resolve(rows, state, cfg),
			CanExport: data.CanExport,
			RowActions: func(row listview.Row) []rbac.Action {
				return rbac.Gate(rowActions(row), perms)
			},
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ProductsPage(session, data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render products page", http.StatusInternalServerError)
		}
	}
}

func rowActions(row listview.Row) []rbac.Action {
	q := url.Values{}
	q.Set("edit_id", strconv.FormatInt(row.ID(), 10))
	q.Set("reference", row.String("reference"))
	q.Set("name", row.String("name"))
	q.Set("barcode", row.String("barcode"))
	return []rbac.Action{
		{Key: "PRODUCTS_EDIT", Label: "Edit", Method: "GET", URL: "/board/products?" + q.Encode()},
		{Key: "PRODUCTS_DELETE", Label: "Archive", Method: "POST", URL: "/board/api/products/" + strconv.FormatInt(row.ID(), 10) + "/archive"},
	}
}

func formValuesFromQuery(q url.Values) FormValues {
	form := FormValues{
		Reference: strings.TrimSpace(q.Get("reference")),
		Name:      strings.TrimSpace(q.Get("name")),
		Price:     strings.TrimSpace(q.Get("price")),
		Barcode:   strings.TrimSpace(q.Get("barcode")),
	}
	if id, err := strconv.ParseInt(q.Get("edit_id"), 10, 64); err == nil && id > 0 {
		form.ID = id
	}
	return form
}

// SaveCommandHandler creates or updates a product. On failure the form
// values ride the redirect so the dialog reopens populated; local state is
// never touched — the follow-up GET refetches from the backend.
func SaveCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, "/board/products?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}

		form := FormValues{
			Reference: strings.TrimSpace(r.FormValue("reference")),
			Name:      strings.TrimSpace(r.FormValue("name")),
			Price:     strings.TrimSpace(r.FormValue("price")),
			Barcode:   strings.TrimSpace(r.FormValue("barcode")),
		}
		if id, err := strconv.ParseInt(r.FormValue("edit_id"), 10, 64); err == nil && id > 0 {
			form.ID = id
		}

		if form.Name == "" {
			http.Redirect(w, r, formRedirect(form, "", "product name is required"), http.StatusSeeOther)
			return
		}
		payload := map[string]any{
			"default_code": form.Reference,
			"name":         form.Name,
			"barcode":      form.Barcode,
		}
		if form.Price != "" {
			price, err := strconv.ParseFloat(form.Price, 64)
			if err != nil || price < 0 {
				http.Redirect(w, r, formRedirect(form, "", "price must be a non-negative number"), http.StatusSeeOther)
				return
			}
			payload["list_price"] = price
		}

		method := erpMethodFor(form)
		rc := listpage.RequestContextFor(session, deps.Tenant)
		id, err := deps.ERP.Mutate(r.Context(), rc, erpModel, form.ID, method, payload)
		if err != nil {
			slog.Error("product save failed", slog.Int64("id", form.ID), slog.Any("err", err))
			http.Redirect(w, r, formRedirect(form, "", err.Error()), http.StatusSeeOther)
			return
		}

		writeProductAudit(r, deps, session.UserID, id, "product_"+method, payload)
		http.Redirect(w, r, "/board/products?status="+url.QueryEscape("product saved"), http.StatusSeeOther)
	}
}

func erpMethodFor(form FormValues) string {
	if form.ID > 0 {
		return "update"
	}
	return "create"
}

// ArchiveCommandHandler soft-deletes a product on the backend.
func ArchiveCommandHandler(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessioncontext.GetSessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Redirect(w, r, "/board/products?error="+url.QueryEscape("invalid product id"), http.StatusSeeOther)
			return
		}

		rc := listpage.RequestContextFor(session, deps.Tenant)
		if _, err := deps.ERP.Mutate(r.Context(), rc, erpModel, id, "update", map[string]any{"active": false}); err != nil {
			slog.Error("product archive failed", slog.Int64("id", id), slog.Any("err", err))
			http.Redirect(w, r, "/board/products?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
			return
		}

		writeProductAudit(r, deps, session.UserID, id, "product_archive", map[string]any{"active": false})
		http.Redirect(w, r, "/board/products?status="+url.QueryEscape("product archived"), http.StatusSeeOther)
	}
}

func formRedirect(form FormValues, status, errMsg string) string {
	q := url.Values{}
	q.Set("form", "1")
	if form.ID > 0 {
		q.Set("edit_id", strconv.FormatInt(form.ID, 10))
	}
	q.Set("reference", form.Reference)
	q.Set("name", form.Name)
	q.Set("price", form.Price)
	q.Set("barcode", form.Barcode)
	if status != "" {
		q.Set("status", status)
	}
	if errMsg != "" {
		q.Set("error", errMsg)
	}
	return "/board/products?" + q.Encode()
}

func writeProductAudit(r *http.Request, deps Deps, userID, productID int64, action string, after map[string]any) {
	err := deps.DB.WithWriteTx(r.Context(), func(ctx context.Context, tx bun.Tx) error {
		return deps.Audit.Write(ctx, tx, userID, action, "products", strconv.FormatInt(productID, 10), nil, after)
	})
	if err != nil {
		slog.Error("product audit write failed", slog.Int64("id", productID), slog.Any("err", err))
	}
}

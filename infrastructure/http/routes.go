package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	adminusers "stockboard/frontend/adminusers"
	"stockboard/frontend/batches"
	exportspage "stockboard/frontend/exports"
	"stockboard/frontend/locationreport"
	"stockboard/frontend/login"
	"stockboard/frontend/moves"
	"stockboard/frontend/operations"
	"stockboard/frontend/packages"
	"stockboard/frontend/products"
	"stockboard/frontend/settings"
	sessioncontext "stockboard/frontend/shared/context"
	"stockboard/frontend/shared/listpage"
	"stockboard/frontend/storage"
	"stockboard/infrastructure/rbac"
	"stockboard/models"
)

// RegisterLoginRoutes registers login/logout routes.
func (s *Server) RegisterLoginRoutes() {
	s.router.Get("/login", login.GetLoginScreenHandler)
	s.router.Post("/login", login.CreateLoginHandler(s.DB, s.SessionCache, s.UserCache))
	s.router.Post("/logout", login.LogoutHandler(s.DB, s.SessionCache))
}

// RegisterAdminRoutes registers admin-only routes.
func (s *Server) RegisterAdminRoutes(r chi.Router) chi.Router {
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_LIST_VIEW", http.MethodGet, "/board/admin/users")
	r.Get("/admin/users", adminusers.UsersPageQueryHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "ADMIN_USERS_CREATE", http.MethodPost, "/board/admin/users")
	r.Post("/admin/users", adminusers.CreateUserCommandHandler(s.DB, s.UserCache))

	s.Rbac.Add(rbac.RoleAdmin, "SETTINGS_VIEW", http.MethodGet, "/board/settings")
	r.Get("/settings", settings.DisplaySettingsPageHandler(s.DB))
	s.Rbac.Add(rbac.RoleAdmin, "SETTINGS_EDIT", http.MethodPost, "/board/settings")
	r.Post("/settings", settings.DisplaySettingsUpdateHandler(s.DB))
	return r
}

// RegisterBoardRoutes registers the authenticated list pages.
func (s *Server) RegisterBoardRoutes(r chi.Router) chi.Router {
	exportDeps := listpage.ExportDeps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant}
	sessionFrom := func(r *http.Request) (models.Session, bool) {
		return sessioncontext.GetSessionFromContext(r.Context())
	}
	readers := []string{rbac.RoleViewer, rbac.RoleManager}

	addRead := func(code, method, path string) {
		for _, role := range readers {
			s.Rbac.Add(role, code, method, path)
		}
	}
	addWrite := func(code, method, path string) {
		s.Rbac.Add(rbac.RoleManager, code, method, path)
	}

	// Batches.
	batchDeps := batches.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Audit: s.Audit}
	batchCfg := batches.Config()
	addRead("BATCHES_LIST_VIEW", http.MethodGet, "/board/batches")
	r.Get("/batches", batches.PageQueryHandler(batchDeps))
	addRead("BATCHES_EXPORT", http.MethodGet, "/board/batches/export/csv")
	r.Get("/batches/export/csv", listpage.CSVHandler(batchCfg, exportDeps, sessionFrom))
	addRead("BATCHES_EXPORT", http.MethodGet, "/board/batches/export/pdf")
	r.Get("/batches/export/pdf", listpage.PDFHandler(batchCfg, exportDeps, sessionFrom))
	addWrite("BATCHES_CONFIRM", http.MethodPost, "/board/api/batches/*/confirm")
	r.Post("/api/batches/{id}/confirm", batches.StateCommandHandler(batchDeps, "in_progress"))
	addWrite("BATCHES_DONE", http.MethodPost, "/board/api/batches/*/done")
	r.Post("/api/batches/{id}/done", batches.StateCommandHandler(batchDeps, "done"))
	addWrite("BATCHES_CANCEL", http.MethodPost, "/board/api/batches/*/cancel")
	r.Post("/api/batches/{id}/cancel", batches.StateCommandHandler(batchDeps, "cancel"))

	// Moves history.
	moveDeps := moves.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant}
	moveCfg := moves.Config()
	addRead("MOVES_LIST_VIEW", http.MethodGet, "/board/moves")
	r.Get("/moves", moves.PageQueryHandler(moveDeps))
	addRead("MOVES_EXPORT", http.MethodGet, "/board/moves/export/csv")
	r.Get("/moves/export/csv", listpage.CSVHandler(moveCfg, exportDeps, sessionFrom))
	addRead("MOVES_EXPORT", http.MethodGet, "/board/moves/export/pdf")
	r.Get("/moves/export/pdf", listpage.PDFHandler(moveCfg, exportDeps, sessionFrom))

	// Operation types.
	opDeps := operations.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Audit: s.Audit}
	opCfg := operations.Config()
	addRead("OPERATIONS_LIST_VIEW", http.MethodGet, "/board/operations")
	r.Get("/operations", operations.PageQueryHandler(opDeps))
	addRead("OPERATIONS_EXPORT", http.MethodGet, "/board/operations/export/csv")
	r.Get("/operations/export/csv", listpage.CSVHandler(opCfg, exportDeps, sessionFrom))
	addRead("OPERATIONS_EXPORT", http.MethodGet, "/board/operations/export/pdf")
	r.Get("/operations/export/pdf", listpage.PDFHandler(opCfg, exportDeps, sessionFrom))
	addWrite("OPERATIONS_EDIT", http.MethodPost, "/board/api/operations/*/rename")
	r.Post("/api/operations/{id}/rename", operations.RenameCommandHandler(opDeps))

	// Packages.
	packDeps := packages.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Audit: s.Audit}
	packCfg := packages.Config()
	addRead("PACKAGES_LIST_VIEW", http.MethodGet, "/board/packages")
	r.Get("/packages", packages.PageQueryHandler(packDeps))
	addRead("PACKAGES_EXPORT", http.MethodGet, "/board/packages/export/csv")
	r.Get("/packages/export/csv", listpage.CSVHandler(packCfg, exportDeps, sessionFrom))
	addRead("PACKAGES_EXPORT", http.MethodGet, "/board/packages/export/pdf")
	r.Get("/packages/export/pdf", listpage.PDFHandler(packCfg, exportDeps, sessionFrom))
	addRead("PACKAGES_LABEL", http.MethodGet, "/board/api/packages/*/label")
	r.Get("/api/packages/{id}/label", packages.LabelQueryHandler(packDeps))
	addWrite("PACKAGES_EDIT", http.MethodPost, "/board/api/packages")
	r.Post("/api/packages", packages.CreateCommandHandler(packDeps))

	// Products.
	prodDeps := products.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Audit: s.Audit}
	prodCfg := products.Config()
	addRead("PRODUCTS_LIST_VIEW", http.MethodGet, "/board/products")
	r.Get("/products", products.PageQueryHandler(prodDeps))
	addRead("PRODUCTS_EXPORT", http.MethodGet, "/board/products/export/csv")
	r.Get("/products/export/csv", listpage.CSVHandler(prodCfg, exportDeps, sessionFrom))
	addRead("PRODUCTS_EXPORT", http.MethodGet, "/board/products/export/pdf")
	r.Get("/products/export/pdf", listpage.PDFHandler(prodCfg, exportDeps, sessionFrom))
	addWrite("PRODUCTS_EDIT", http.MethodPost, "/board/api/products")
	r.Post("/api/products", products.SaveCommandHandler(prodDeps))
	addWrite("PRODUCTS_DELETE", http.MethodPost, "/board/api/products/*/archive")
	r.Post("/api/products/{id}/archive", products.ArchiveCommandHandler(prodDeps))

	// Storage categories.
	storDeps := storage.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Audit: s.Audit}
	storCfg := storage.Config()
	addRead("STORAGE_LIST_VIEW", http.MethodGet, "/board/storage")
	r.Get("/storage", storage.PageQueryHandler(storDeps))
	addRead("STORAGE_EXPORT", http.MethodGet, "/board/storage/export/csv")
	r.Get("/storage/export/csv", listpage.CSVHandler(storCfg, exportDeps, sessionFrom))
	addRead("STORAGE_EXPORT", http.MethodGet, "/board/storage/export/pdf")
	r.Get("/storage/export/pdf", listpage.PDFHandler(storCfg, exportDeps, sessionFrom))
	addWrite("STORAGE_EDIT", http.MethodPost, "/board/api/storage")
	r.Post("/api/storage", storage.SaveCommandHandler(storDeps))

	// Location report.
	locDeps := locationreport.Deps{DB: s.DB, ERP: s.ERP, Tenant: s.Tenant, Snapshot: s.Snapshot}
	addRead("LOCATION_REPORT_VIEW", http.MethodGet, "/board/locationreport")
	r.Get("/locationreport", locationreport.PageQueryHandler(locDeps))
	addRead("LOCATION_REPORT_EXPORT", http.MethodGet, "/board/locationreport/export/csv")
	r.Get("/locationreport/export/csv", locationreport.CSVExportHandler(locDeps))
	addRead("LOCATION_REPORT_EXPORT", http.MethodGet, "/board/locationreport/export/pdf")
	r.Get("/locationreport/export/pdf", locationreport.PDFExportHandler(locDeps))
	addRead("LOCATION_REPORT_REFRESH", http.MethodPost, "/board/api/locationreport/refresh")
	r.Post("/api/locationreport/refresh", locationreport.RefreshCommandHandler(locDeps))

	// Export history.
	addRead("EXPORT_HISTORY_VIEW", http.MethodGet, "/board/exports")
	r.Get("/exports", exportspage.PageQueryHandler(s.DB))

	return r
}

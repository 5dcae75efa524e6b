package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/cache"
	"stockboard/infrastructure/erp"
	httpserver "stockboard/infrastructure/http"
	"stockboard/infrastructure/rbac"
	"stockboard/infrastructure/sqlite"
	"stockboard/infrastructure/tenant"
	"stockboard/models"
)

func main() {
	addr := getenv("APP_ADDR", ":8080")
	dbPath := getenv("SQLITE_PATH", "stockboard.db")

	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(context.Background(), db, "infrastructure/sqlite/migrations"); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	link, err := resolveTenantLink(context.Background(), db)
	if err != nil {
		log.Fatalf("resolve tenant link: %v", err)
	}

	sessionCache := cache.NewUserSessionCache()
	userCache := cache.NewUserCache()
	rbacCache := cache.NewRbacRolesCache()
	rbacSvc := rbac.New(rbacCache)
	auditSvc := audit.NewService()
	erpClient := erp.NewClient(link.BaseURL)

	server := httpserver.NewServer(addr, db, sessionCache, userCache, rbacSvc, rbacCache, auditSvc, erpClient, link)
	if err := server.Start(); err != nil {
		log.Fatalf("start server: %v", err)
	}
	log.Printf("stockboard listening on %s", addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	if err := server.Stop(); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// resolveTenantLink prefers the stored active link; environment variables
// seed or replace it so a fresh install needs no manual row.
func resolveTenantLink(ctx context.Context, db *sqlite.DB) (models.TenantLink, error) {
	if baseURL := os.Getenv("ERP_BASE_URL"); baseURL != "" {
		link := models.TenantLink{
			TenantID:    getenv("ERP_TENANT_ID", "default"),
			ErpDatabase: getenv("ERP_DATABASE", "odoo"),
			CompanyID:   getenv("ERP_COMPANY_ID", "1"),
			BaseURL:     baseURL,
		}
		if err := tenant.UpsertLink(ctx, db, link); err != nil {
			return models.TenantLink{}, err
		}
	}

	link, err := tenant.LoadActiveLink(ctx, db)
	if errors.Is(err, tenant.ErrNoActiveLink) {
		return models.TenantLink{}, errors.New("set ERP_BASE_URL (and ERP_TENANT_ID, ERP_DATABASE, ERP_COMPANY_ID) to configure the backend connection")
	}
	return link, err
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

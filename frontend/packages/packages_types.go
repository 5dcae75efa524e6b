package packages

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the packages handlers need.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
	Audit  *audit.Service
}

// PageData drives the packages renderer.
type PageData struct {
	Title     string
	Message   string
	Error     string
	FetchErr  string
	CanExport bool
	CanEdit   bool
	ShowForm  bool
	FormName  string
	List      listpage.ViewData
}

const erpModel = "stock.quant.package"

// Config declares the packages list.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "packages",
		Title: "Packages",
		Path:  "/board/packages",
		Model: erpModel,
		ERPFields: []string{
			"name", "package_type_id", "location_id", "pack_date", "shipping_weight",
		},
		Fields: []listview.FieldSpec{
			{Name: "name", Kind: listview.KindString},
			{Name: "packageType", Source: "package_type_id", Kind: listview.KindRelation},
			{Name: "location", Source: "location_id", Kind: listview.KindRelation},
			{Name: "packDate", Source: "pack_date", Kind: listview.KindString},
			{Name: "weight", Source: "shipping_weight", Kind: listview.KindNumber},
		},
		PredicateFields: []string{"name", "packageType", "location"},
		DateField:       "packDate",
		Order:           "name asc",
		Columns: []listview.Column{
			{ID: "name", Header: "Package", Accessor: func(r listview.Row) string { return r.String("name") }},
			{ID: "packageType", Header: "Type", Accessor: func(r listview.Row) string { return r.String("packageType") }},
			{ID: "location", Header: "Location", Accessor: func(r listview.Row) string { return r.String("location") }},
			{ID: "packDate", Header: "Pack Date", Accessor: func(r listview.Row) string { return r.String("packDate") }},
			{ID: "weight", Header: "Weight (kg)", Accessor: func(r listview.Row) string {
				w, _ := r["weight"].(float64)
				return fmt.Sprintf("%.2f", w)
			}},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var weight float64
			for _, r := range rows {
				if w, ok := r["weight"].(float64); ok {
					weight += w
				}
			}
			return []listview.SummaryItem{
				{Label: "Packages", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Total weight", Value: fmt.Sprintf("%.2f kg", weight)},
			}
		},
	}
}

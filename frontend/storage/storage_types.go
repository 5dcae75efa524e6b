package storage

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the storage category handlers need.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
	Audit  *audit.Service
}

// FormValues carries a submitted storage category form across the failure
// redirect.
type FormValues struct {
	ID              int64
	Name            string
	MaxWeight       string
	AllowNewProduct string
}

// PageData drives the storage categories renderer.
type PageData struct {
	Title     string
	Message   string
	Error     string
	FetchErr  string
	CanExport bool
	CanEdit   bool
	ShowForm  bool
	Form      FormValues
	List      listpage.ViewData
}

const erpModel = "stock.storage.category"

var allowLabels = map[string]string{
	"empty": "If location is empty",
	"same":  "If all products are same",
	"mixed": "Allow mixed products",
}

func allowLabel(value string) string {
	if label, ok := allowLabels[value]; ok {
		return label
	}
	return value
}

// Config declares the storage categories list.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "storage",
		Title: "Storage Categories",
		Path:  "/board/storage",
		Model: erpModel,
		ERPFields: []string{
			"name", "max_weight", "allow_new_product", "location_count",
		},
		Fields: []listview.FieldSpec{
			{Name: "name", Kind: listview.KindString},
			{Name: "maxWeight", Source: "max_weight", Kind: listview.KindNumber},
			{Name: "allowNewProduct", Source: "allow_new_product", Kind: listview.KindString},
			{Name: "locationCount", Source: "location_count", Kind: listview.KindNumber},
		},
		PredicateFields: []string{"name"},
		Categories: []listpage.CategoryFilter{
			{
				Field: "allowNewProduct",
				Label: "New Product Policy",
				Options: []listpage.Option{
					{Value: "empty", Label: "If location is empty"},
					{Value: "same", Label: "If all products are same"},
					{Value: "mixed", Label: "Allow mixed products"},
				},
			},
		},
		Order: "name asc",
		Columns: []listview.Column{
			{ID: "name", Header: "Storage Category", Accessor: func(r listview.Row) string { return r.String("name") }},
			{ID: "maxWeight", Header: "Max Weight (kg)", Accessor: func(r listview.Row) string {
				w, _ := r["maxWeight"].(float64)
				return fmt.Sprintf("%.2f", w)
			}},
			{ID: "allowNewProduct", Header: "New Product Policy", Accessor: func(r listview.Row) string {
				return allowLabel(r.String("allowNewProduct"))
			}},
			{ID: "locationCount", Header: "Locations", Accessor: func(r listview.Row) string {
				n, _ := r["locationCount"].(float64)
				return fmt.Sprintf("%.0f", n)
			}},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var locations float64
			for _, r := range rows {
				if n, ok := r["locationCount"].(float64); ok {
					locations += n
				}
			}
			return []listview.SummaryItem{
				{Label: "Storage categories", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Locations covered", Value: fmt.Sprintf("%.0f", locations)},
			}
		},
	}
}

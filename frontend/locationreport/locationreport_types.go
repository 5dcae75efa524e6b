package locationreport

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the location report handlers need.
type Deps struct {
	DB       *sqlite.DB
	ERP      *erp.Client
	Tenant   models.TenantLink
	Snapshot *Snapshot
}

// PageData drives the location report renderer.
type PageData struct {
	Title     string
	FetchErr  string
	CanExport bool
	FetchedAt string
	List      listpage.ViewData
}

const erpModel = "stock.quant"

// quantFields is what we pull per quant before grouping by location.
var quantFields = []string{"location_id", "product_id", "quantity", "reserved_quantity"}

// Config declares the location report list. The rows are aggregates built
// by the snapshot, not raw backend records, so there is no Model fetch here.
func Config() listpage.Config {
	return listpage.Config{
		Key:             "locationreport",
		Title:           "Location Report",
		Path:            "/board/locationreport",
		PredicateFields: []string{"location"},
		Order:           "location asc",
		Columns: []listview.Column{
			{ID: "location", Header: "Location", Accessor: func(r listview.Row) string { return r.String("location") }},
			{ID: "products", Header: "Products", Accessor: func(r listview.Row) string {
				n, _ := r["products"].(float64)
				return fmt.Sprintf("%.0f", n)
			}},
			{ID: "totalQty", Header: "On Hand", Accessor: func(r listview.Row) string {
				qty, _ := r["totalQty"].(float64)
				return fmt.Sprintf("%g", qty)
			}},
			{ID: "reservedQty", Header: "Reserved", Accessor: func(r listview.Row) string {
				qty, _ := r["reservedQty"].(float64)
				return fmt.Sprintf("%g", qty)
			}},
			{ID: "availableQty", Header: "Available", Accessor: func(r listview.Row) string {
				qty, _ := r["availableQty"].(float64)
				return fmt.Sprintf("%g", qty)
			}},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var total, reserved float64
			for _, r := range rows {
				if qty, ok := r["totalQty"].(float64); ok {
					total += qty
				}
				if qty, ok := r["reservedQty"].(float64); ok {
					reserved += qty
				}
			}
			return []listview.SummaryItem{
				{Label: "Locations", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Units on hand", Value: fmt.Sprintf("%g", total)},
				{Label: "Units reserved", Value: fmt.Sprintf("%g", reserved)},
			}
		},
	}
}

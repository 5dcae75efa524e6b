package moves

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the moves handlers need.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
}

// PageData drives the moves history renderer.
type PageData struct {
	Title     string
	FetchErr  string
	CanExport bool
	List      listpage.ViewData
}

const erpModel = "stock.move.line"

// Config declares the moves history list. The page is read-only; its
// interesting filter is the date range over the move date.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "moves",
		Title: "Moves History",
		Path:  "/board/moves",
		Model: erpModel,
		ERPFields: []string{
			"date", "reference", "product_id", "location_id", "location_dest_id", "qty_done", "state",
		},
		Fields: []listview.FieldSpec{
			{Name: "date", Kind: listview.KindString},
			{Name: "reference", Kind: listview.KindString},
			{Name: "product", Source: "product_id", Kind: listview.KindRelation},
			{Name: "fromLocation", Source: "location_id", Kind: listview.KindRelation},
			{Name: "toLocation", Source: "location_dest_id", Kind: listview.KindRelation},
			{Name: "quantity", Source: "qty_done", Kind: listview.KindNumber},
			{Name: "status", Source: "state", Kind: listview.KindString},
		},
		PredicateFields: []string{"reference", "product", "fromLocation", "toLocation"},
		Categories: []listpage.CategoryFilter{
			{
				Field: "status",
				Label: "Status",
				Options: []listpage.Option{
					{Value: "assigned", Label: "Ready"},
					{Value: "done", Label: "Done"},
					{Value: "cancel", Label: "Cancelled"},
				},
			},
		},
		DateField: "date",
		Order:     "date desc",
		Columns: []listview.Column{
			{ID: "date", Header: "Date", Accessor: func(r listview.Row) string { return r.String("date") }},
			{ID: "reference", Header: "Reference", Accessor: func(r listview.Row) string { return r.String("reference") }},
			{ID: "product", Header: "Product", Accessor: func(r listview.Row) string { return r.String("product") }},
			{ID: "fromLocation", Header: "From", Accessor: func(r listview.Row) string { return r.String("fromLocation") }},
			{ID: "toLocation", Header: "To", Accessor: func(r listview.Row) string { return r.String("toLocation") }},
			{ID: "quantity", Header: "Quantity", Accessor: func(r listview.Row) string {
				qty, _ := r["quantity"].(float64)
				return fmt.Sprintf("%g", qty)
			}},
			{ID: "status", Header: "Status", Accessor: func(r listview.Row) string { return r.String("status") }},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var total float64
			for _, r := range rows {
				if qty, ok := r["quantity"].(float64); ok {
					total += qty
				}
			}
			return []listview.SummaryItem{
				{Label: "Move lines", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Total quantity", Value: fmt.Sprintf("%g", total)},
			}
		},
	}
}

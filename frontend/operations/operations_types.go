package operations

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the operations handlers need.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
	Audit  *audit.Service
}

// PageData drives the operation types renderer.
type PageData struct {
	Title     string
	Message   string
	Error     string
	FetchErr  string
	CanExport bool
	CanEdit   bool
	EditID    int64
	EditName  string
	List      listpage.ViewData
}

const erpModel = "stock.picking.type"

var codeLabels = map[string]string{
	"incoming": "Receipt",
	"outgoing": "Delivery",
	"internal": "Internal Transfer",
}

func codeLabel(code string) string {
	if label, ok := codeLabels[code]; ok {
		return label
	}
	return code
}

// Config declares the operation types list.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "operations",
		Title: "Operation Types",
		Path:  "/board/operations",
		Model: erpModel,
		ERPFields: []string{
			"name", "code", "warehouse_id", "sequence_code", "count_picking_ready",
		},
		Fields: []listview.FieldSpec{
			{Name: "name", Kind: listview.KindString},
			{Name: "kind", Source: "code", Kind: listview.KindString},
			{Name: "warehouse", Source: "warehouse_id", Kind: listview.KindRelation},
			{Name: "sequenceCode", Source: "sequence_code", Kind: listview.KindString},
			{Name: "readyCount", Source: "count_picking_ready", Kind: listview.KindNumber},
		},
		PredicateFields: []string{"name", "warehouse", "sequenceCode"},
		Categories: []listpage.CategoryFilter{
			{
				Field: "kind",
				Label: "Kind",
				Options: []listpage.Option{
					{Value: "incoming", Label: "Receipt"},
					{Value: "outgoing", Label: "Delivery"},
					{Value: "internal", Label: "Internal Transfer"},
				},
			},
		},
		Order: "sequence_code asc",
		Columns: []listview.Column{
			{ID: "name", Header: "Operation Type", Accessor: func(r listview.Row) string { return r.String("name") }},
			{ID: "kind", Header: "Kind", Accessor: func(r listview.Row) string { return codeLabel(r.String("kind")) }},
			{ID: "warehouse", Header: "Warehouse", Accessor: func(r listview.Row) string { return r.String("warehouse") }},
			{ID: "sequenceCode", Header: "Sequence", Accessor: func(r listview.Row) string { return r.String("sequenceCode") }},
			{ID: "readyCount", Header: "Ready", Accessor: func(r listview.Row) string {
				n, _ := r["readyCount"].(float64)
				return fmt.Sprintf("%.0f", n)
			}},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var ready float64
			for _, r := range rows {
				if n, ok := r["readyCount"].(float64); ok {
					ready += n
				}
			}
			return []listview.SummaryItem{
				{Label: "Operation types", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Pickings ready", Value: fmt.Sprintf("%.0f", ready)},
			}
		},
	}
}

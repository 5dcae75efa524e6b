package batches

import (
	"fmt"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators every batches handler needs.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
	Audit  *audit.Service
}

// PageData drives the batches page renderer.
type PageData struct {
	Title     string
	Message   string
	Error     string
	FetchErr  string
	CanExport bool
	List      listpage.ViewData
}

const erpModel = "stock.picking.batch"

var statusLabels = map[string]string{
	"draft":       "Draft",
	"in_progress": "In Progress",
	"done":        "Done",
	"cancel":      "Cancelled",
}

func statusLabel(code string) string {
	if label, ok := statusLabels[code]; ok {
		return label
	}
	return code
}

// Config declares the batch transfers list. Everything page-specific about
// filtering, pagination and export lives in this value.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "batches",
		Title: "Batch Transfers",
		Path:  "/board/batches",
		Model: erpModel,
		ERPFields: []string{
			"name", "user_id", "picking_type_id", "state", "scheduled_date", "move_line_count",
		},
		Fields: []listview.FieldSpec{
			{Name: "batchTransfer", Source: "name", Kind: listview.KindString},
			{Name: "responsible", Source: "user_id", Kind: listview.KindRelation},
			{Name: "operationType", Source: "picking_type_id", Kind: listview.KindRelation},
			{Name: "status", Source: "state", Kind: listview.KindString},
			{Name: "scheduledDate", Source: "scheduled_date", Kind: listview.KindString},
			{Name: "moveCount", Source: "move_line_count", Kind: listview.KindNumber},
		},
		PredicateFields: []string{"batchTransfer", "responsible", "operationType"},
		Categories: []listpage.CategoryFilter{
			{
				Field: "status",
				Label: "Status",
				Options: []listpage.Option{
					{Value: "draft", Label: "Draft"},
					{Value: "in_progress", Label: "In Progress"},
					{Value: "done", Label: "Done"},
					{Value: "cancel", Label: "Cancelled"},
				},
			},
		},
		DateField: "scheduledDate",
		Order:     "scheduled_date desc",
		Columns: []listview.Column{
			{ID: "batchTransfer", Header: "Batch Transfer", Accessor: func(r listview.Row) string { return r.String("batchTransfer") }},
			{ID: "responsible", Header: "Responsible", Accessor: func(r listview.Row) string { return r.String("responsible") }},
			{ID: "operationType", Header: "Operation Type", Accessor: func(r listview.Row) string { return r.String("operationType") }},
			{ID: "status", Header: "Status", Accessor: func(r listview.Row) string { return statusLabel(r.String("status")) }},
			{ID: "scheduledDate", Header: "Scheduled Date", Accessor: func(r listview.Row) string { return r.String("scheduledDate") }},
			{ID: "moveCount", Header: "Moves", Accessor: func(r listview.Row) string {
				qty, _ := r["moveCount"].(float64)
				return fmt.Sprintf("%.0f", qty)
			}},
		},
		Summary: summarize,
	}
}

func summarize(rows []listview.Row) []listview.SummaryItem {
	done := 0
	for _, r := range rows {
		if r.String("status") == "done" {
			done++
		}
	}
	return []listview.SummaryItem{
		{Label: "Total batches", Value: fmt.Sprintf("%d", len(rows))},
		{Label: "Done", Value: fmt.Sprintf("%d", done)},
	}
}

package products

import (
	"fmt"
	"sort"

	"stockboard/frontend/shared/listpage"
	"stockboard/infrastructure/audit"
	"stockboard/infrastructure/erp"
	"stockboard/infrastructure/sqlite"
	"stockboard/listview"
	"stockboard/models"
)

// Deps bundles the collaborators the products handlers need.
type Deps struct {
	DB     *sqlite.DB
	ERP    *erp.Client
	Tenant models.TenantLink
	Audit  *audit.Service
}

// FormValues carries a submitted product form across the failure redirect
// so the user never loses what they typed.
type FormValues struct {
	ID        int64
	Reference string
	Name      string
	Price     string
	Barcode   string
}

// PageData drives the products renderer.
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

const erpModel = "product.product"

// Config declares the products list.
func Config() listpage.Config {
	return listpage.Config{
		Key:   "products",
		Title: "Products",
		Path:  "/board/products",
		Model: erpModel,
		ERPFields: []string{
			"default_code", "name", "categ_id", "list_price", "qty_available", "uom_id", "barcode",
		},
		Fields: []listview.FieldSpec{
			{Name: "reference", Source: "default_code", Kind: listview.KindString},
			{Name: "name", Kind: listview.KindString},
			{Name: "category", Source: "categ_id", Kind: listview.KindRelation},
			{Name: "price", Source: "list_price", Kind: listview.KindNumber},
			{Name: "onHand", Source: "qty_available", Kind: listview.KindNumber},
			{Name: "uom", Source: "uom_id", Kind: listview.KindRelation},
			{Name: "barcode", Kind: listview.KindString},
		},
		PredicateFields: []string{"reference", "name", "category", "barcode"},
		// Options are filled per request from the fetched rows; categories
		// are tenant data, not a fixed enum.
		Categories: []listpage.CategoryFilter{{Field: "category", Label: "Category"}},
		Order:      "default_code asc",
		Columns: []listview.Column{
			{ID: "reference", Header: "Reference", Accessor: func(r listview.Row) string { return r.String("reference") }},
			{ID: "name", Header: "Product", Accessor: func(r listview.Row) string { return r.String("name") }},
			{ID: "category", Header: "Category", Accessor: func(r listview.Row) string { return r.String("category") }},
			{ID: "price", Header: "Price", Accessor: func(r listview.Row) string {
				price, _ := r["price"].(float64)
				return fmt.Sprintf("%.2f", price)
			}},
			{ID: "onHand", Header: "On Hand", Accessor: func(r listview.Row) string {
				qty, _ := r["onHand"].(float64)
				return fmt.Sprintf("%g", qty)
			}},
			{ID: "uom", Header: "Unit", Accessor: func(r listview.Row) string { return r.String("uom") }},
			{ID: "barcode", Header: "Barcode", Accessor: func(r listview.Row) string { return r.String("barcode") }},
		},
		Summary: func(rows []listview.Row) []listview.SummaryItem {
			var onHand float64
			outOfStock := 0
			for _, r := range rows {
				qty, _ := r["onHand"].(float64)
				onHand += qty
				if qty <= 0 {
					outOfStock++
				}
			}
			return []listview.SummaryItem{
				{Label: "Products", Value: fmt.Sprintf("%d", len(rows))},
				{Label: "Units on hand", Value: fmt.Sprintf("%g", onHand)},
				{Label: "Out of stock", Value: fmt.Sprintf("%d", outOfStock)},
			}
		},
	}
}

// categoryFilterFromRows builds the category filter options from the rows
// actually fetched; product categories are tenant data, not a fixed enum.
func categoryFilterFromRows(rows []listview.Row) listpage.CategoryFilter {
	seen := make(map[string]bool)
	for _, r := range rows {
		if name := r.String("category"); name != "" && name != listview.FallbackText {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	options := make([]listpage.Option, 0, len(names))
	for _, name := range names {
		options = append(options, listpage.Option{Value: name, Label: name})
	}
	return listpage.CategoryFilter{Field: "category", Label: "Category", Options: options}
}

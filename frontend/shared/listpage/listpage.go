// Package listpage wires the listview pipeline into HTTP list pages.
// A page supplies a Config (field specs, predicate fields, categorical
// filters, export columns); parsing, fetching, filtering, pagination and
// export handling are shared here.
package listpage

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"stockboard/infrastructure/erp"
	"stockboard/listview"
	"stockboard/models"
)

// Option is one selectable value of a categorical filter.
type Option struct {
	Value string
	Label string
}

// CategoryFilter declares one include-if-in-set filter.
type CategoryFilter struct {
	Field   string
	Label   string
	Options []Option
}

// Config is the full declarative description of a list page. Pages differ
// only in this data; the pipeline logic is identical for all of them.
type Config struct {
	Key             string
	Title           string
	Path            string
	Model           string
	ERPFields       []string
	Fields          []listview.FieldSpec
	PredicateFields []string
	Categories      []CategoryFilter
	DateField       string
	Order           string
	FetchLimit      int
	Columns         []listview.Column
	Summary         func([]listview.Row) []listview.SummaryItem
}

// DefaultPageSize applies when the settings store has no override.
const DefaultPageSize = 25

// State is the decoded query-string state of one list page request.
type State struct {
	Filter   listview.FilterState
	Pager    listview.Pager
	Selected map[int64]bool
}

// ParseState decodes filter, pagination and selection state from the
// request. Filter inputs never carry a page parameter, so any filter
// change lands back on page 1; explicit page values are clamped later by
// the paginator.
func ParseState(r *http.Request, cfg Config, defaultPageSize int) State {
	q := r.URL.Query()

	filter := listview.NewFilterState()
	filter.Search = strings.TrimSpace(q.Get("q"))
	for _, cat := range cfg.Categories {
		if values, ok := q["f_"+cat.Field]; ok {
			filter.SetCategory(cat.Field, values)
		}
	}
	if cfg.DateField != "" {
		filter.DateField = cfg.DateField
		filter.DateFrom = strings.TrimSpace(q.Get("from"))
		filter.DateTo = strings.TrimSpace(q.Get("to"))
	}

	if defaultPageSize < 1 {
		defaultPageSize = DefaultPageSize
	}
	pager := listview.Pager{Page: 1, PageSize: defaultPageSize}
	if size, err := strconv.Atoi(q.Get("page_size")); err == nil && size > 0 {
		pager.PageSize = size
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		pager.Page = page
	}

	// Checkbox submits repeat the parameter; hand-built links may pass a
	// comma list. Both decode to the same set.
	selected := make(map[int64]bool)
	for _, raw := range q["sel"] {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil && id > 0 {
				selected[id] = true
			}
		}
	}

	return State{Filter: filter, Pager: pager, Selected: selected}
}

// Fetch pulls the page's records from the ERP and normalizes them.
func Fetch(ctx context.Context, client *erp.Client, rc erp.RequestContext, cfg Config) ([]listview.Row, error) {
	limit := cfg.FetchLimit
	if limit <= 0 {
		limit = 1000
	}
	records, err := client.SearchRead(ctx, rc, cfg.Model, erp.Query{
		Fields: cfg.ERPFields,
		Limit:  limit,
		Order:  cfg.Order,
	})
	if err != nil {
		return nil, err
	}
	return listview.Normalize(records, cfg.Fields), nil
}

// ViewModel is everything a list view needs to render its table.
type ViewModel struct {
	Filtered []listview.Row
	Page     listview.PageResult
	State    State
}

// Resolve runs filter and pagination over fetched rows.
func Resolve(rows []listview.Row, state State, cfg Config) ViewModel {
	filtered := listview.Apply(rows, state.Filter, cfg.PredicateFields)
	page := listview.Paginate(filtered, state.Pager.Page, state.Pager.PageSize)
	state.Pager.Page = page.ClampedPage
	return ViewModel{Filtered: filtered, Page: page, State: state}
}

// RequestContextFor builds the ERP routing context from the signed-in
// session and the tenant link chosen at startup. Handlers call this once
// per request instead of assembling headers ad hoc.
func RequestContextFor(session models.Session, link models.TenantLink) erp.RequestContext {
	return erp.RequestContext{
		TenantID:     link.TenantID,
		SessionToken: session.ID,
		Database:     link.ErpDatabase,
		CompanyID:    link.CompanyID,
	}
}

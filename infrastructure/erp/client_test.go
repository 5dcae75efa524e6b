package erp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchRead_SendsRoutingHeadersAndDomain(t *testing.T) {
	var gotBody map[string]any
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(SearchResult{
			Success: true,
			Result:  []map[string]any{{"id": 1, "name": "Batch 1"}},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rc := RequestContext{TenantID: "t-9", SessionToken: "s-abc", Database: "wh_prod", CompanyID: "2"}
	records, err := client.SearchRead(context.Background(), rc, "stock.picking.batch", Query{
		Domain: []Condition{{Field: "state", Op: "=", Value: "draft"}},
		Fields: []string{"name", "state"},
		Limit:  80,
		Order:  "id desc",
	})
	if err != nil {
		t.Fatalf("search_read: %v", err)
	}
	if len(records) != 1 || records[0]["name"] != "Batch 1" {
		t.Fatalf("unexpected records: %v", records)
	}

	for header, want := range map[string]string{
		"X-Tenant-Id":     "t-9",
		"X-Session-Token": "s-abc",
		"X-Erp-Database":  "wh_prod",
		"X-Company-Id":    "2",
	} {
		if got := gotHeaders.Get(header); got != want {
			t.Fatalf("header %s: expected %q, got %q", header, want, got)
		}
	}

	if gotBody["model"] != "stock.picking.batch" {
		t.Fatalf("expected model in body, got %v", gotBody["model"])
	}
	domain, _ := gotBody["domain"].([]any)
	if len(domain) != 1 {
		t.Fatalf("expected one domain triple, got %v", gotBody["domain"])
	}
	triple, _ := domain[0].([]any)
	if len(triple) != 3 || triple[0] != "state" || triple[1] != "=" || triple[2] != "draft" {
		t.Fatalf("expected [state,=,draft], got %v", triple)
	}
}

func TestSearchRead_BackendFailureCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(SearchResult{Success: false, Error: "access denied on stock.move.line"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SearchRead(context.Background(), RequestContext{}, "stock.move.line", Query{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "backend: access denied on stock.move.line" {
		t.Fatalf("expected structured message, got %q", got)
	}
}

func TestSearchRead_NonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).SearchRead(context.Background(), RequestContext{}, "product.product", Query{}); err == nil {
		t.Fatalf("expected error for 502")
	}
}

func TestMutate_CreateReturnsNewID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["method"] != MethodCreate {
			t.Errorf("expected create, got %v", body["method"])
		}
		_ = json.NewEncoder(w).Encode(MutateResult{Success: true, Result: 42})
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).Mutate(context.Background(), RequestContext{}, "product.product", 0, MethodCreate, map[string]any{"name": "Crate"})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected created id 42, got %d", id)
	}
}

func TestMutate_UpdateKeepsGivenID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(MutateResult{Success: true})
	}))
	defer srv.Close()

	id, err := NewClient(srv.URL).Mutate(context.Background(), RequestContext{}, "product.product", 7, MethodUpdate, map[string]any{"name": "Crate"})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
}

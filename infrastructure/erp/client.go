// Package erp talks to the warehouse ERP through its REST proxy. The
// dashboard never owns record state; every list page fetches fresh rows
// through this client and every mutation is followed by a refetch.
package erp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// RequestContext carries the routing identity forwarded verbatim on every
// proxy call. It is built once per request from the signed-in session;
// page logic never assembles headers itself.
type RequestContext struct {
	TenantID     string
	SessionToken string
	Database     string
	CompanyID    string
}

// Condition is one [field, operator, value] triple of a search domain.
type Condition struct {
	Field string
	Op    string
	Value any
}

// MarshalJSON renders the triple in the ERP's array form.
func (c Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.Field, c.Op, c.Value})
}

// Query shapes a search_read call.
type Query struct {
	Domain []Condition `json:"domain,omitempty"`
	Fields []string    `json:"fields,omitempty"`
	Limit  int         `json:"limit,omitempty"`
	Order  string      `json:"order,omitempty"`
}

// SearchResult is the proxy's fetch envelope.
type SearchResult struct {
	Success bool             `json:"success"`
	Result  []map[string]any `json:"result"`
	Error   string           `json:"error"`
}

// MutateResult is the proxy's write envelope.
type MutateResult struct {
	Success bool   `json:"success"`
	Result  int64  `json:"result"`
	Error   string `json:"error"`
}

const (
	MethodCreate = "create"
	MethodUpdate = "update"
	MethodDelete = "delete"
)

// Client issues search_read and mutation calls against the REST proxy.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient builds a client with a bounded request timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchRead fetches records of one model. A transport failure or a
// success=false envelope both surface as errors carrying the backend's
// message where one exists.
func (c *Client) SearchRead(ctx context.Context, rc RequestContext, model string, q Query) ([]map[string]any, error) {
	body := struct {
		Model string `json:"model"`
		Query
	}{Model: model, Query: q}

	var result SearchResult
	if err := c.post(ctx, rc, "/api/search_read", body, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, backendError(result.Error)
	}
	return result.Result, nil
}

// Mutate runs create/update/delete on one record. The returned id is the
// created record's id for create calls, otherwise the id passed in.
func (c *Client) Mutate(ctx context.Context, rc RequestContext, model string, id int64, method string, payload map[string]any) (int64, error) {
	body := struct {
		Model   string         `json:"model"`
		ID      int64          `json:"id,omitempty"`
		Method  string         `json:"method"`
		Payload map[string]any `json:"payload,omitempty"`
	}{Model: model, ID: id, Method: method, Payload: payload}

	var result MutateResult
	if err := c.post(ctx, rc, "/api/mutate", body, &result); err != nil {
		return 0, err
	}
	if !result.Success {
		return 0, backendError(result.Error)
	}
	if result.Result != 0 {
		return result.Result, nil
	}
	return id, nil
}

func (c *Client) post(ctx context.Context, rc RequestContext, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", rc.TenantID)
	req.Header.Set("X-Session-Token", rc.SessionToken)
	req.Header.Set("X-Erp-Database", rc.Database)
	req.Header.Set("X-Company-ID", rc.CompanyID)

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call proxy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// backendError prefers the proxy's structured message over a generic one.
func backendError(msg string) error {
	if msg == "" {
		return fmt.Errorf("backend request failed")
	}
	return fmt.Errorf("backend: %s", msg)
}

// Package client talks to a migrateplan server over its JSON API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/martinsuchenak/migrateplan/internal/model"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client is an authenticated API client
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions narrows list calls. Zero values mean no filter.
type ListOptions struct {
	Limit    int
	Strategy string
	Query    string
	Type     string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Limit > 0 {
		v.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Strategy != "" {
		v.Set("strategy", o.Strategy)
	}
	if o.Query != "" {
		v.Set("q", o.Query)
	}
	if o.Type != "" {
		v.Set("type", o.Type)
	}
	return v
}

func (c *Client) CreateWorkload(ctx context.Context, w *model.Workload) error {
	return c.do(ctx, http.MethodPost, "/api/workloads", nil, w, w)
}

func (c *Client) ListWorkloads(ctx context.Context, opts ListOptions) ([]model.Workload, error) {
	var out []model.Workload
	err := c.do(ctx, http.MethodGet, "/api/workloads", opts.values(), nil, &out)
	return out, err
}

func (c *Client) CreateDataCenter(ctx context.Context, dc *model.DataCenter) error {
	return c.do(ctx, http.MethodPost, "/api/datacenters", nil, dc, dc)
}

func (c *Client) ListDataCenters(ctx context.Context, opts ListOptions) ([]model.DataCenter, error) {
	var out []model.DataCenter
	err := c.do(ctx, http.MethodGet, "/api/datacenters", opts.values(), nil, &out)
	return out, err
}

func (c *Client) CreatePlan(ctx context.Context, p *model.MigrationPlan) error {
	return c.do(ctx, http.MethodPost, "/api/plans", nil, p, p)
}

func (c *Client) ListPlans(ctx context.Context, opts ListOptions) ([]model.MigrationPlan, error) {
	var out []model.MigrationPlan
	err := c.do(ctx, http.MethodGet, "/api/plans", opts.values(), nil, &out)
	return out, err
}

// View fetches /api/views/<name> into out, which should be a pointer to the
// matching views type or a map.
func (c *Client) View(ctx context.Context, name string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, "/api/views/"+url.PathEscape(name), query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
	}
	msg := resp.Status
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

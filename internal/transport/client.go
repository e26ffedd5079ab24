package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/druryyl/btrade/internal/model"
)

// Client talks to the remote sales service over HTTP with JSON bodies.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the service at baseURL. token, when
// non-empty, is sent as a bearer credential. timeout bounds each call;
// zero means 30 seconds.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// PushOrder delivers one order with its lines.
func (c *Client) PushOrder(ctx context.Context, order WireOrder) (Response, error) {
	return c.post(ctx, "/api/order", order)
}

// PushCheckIn delivers one customer visit.
func (c *Client) PushCheckIn(ctx context.Context, checkIn WireCheckIn) (Response, error) {
	return c.post(ctx, "/api/checkin", checkIn)
}

// PushCustomerLocation delivers one re-pinned customer coordinate.
func (c *Client) PushCustomerLocation(ctx context.Context, update LocationUpdate) (Response, error) {
	return c.post(ctx, "/api/customer/location", update)
}

// PullItems fetches the full catalog mirror.
func (c *Client) PullItems(ctx context.Context) ([]model.Item, error) {
	return pull[model.Item](ctx, c, "/api/barang")
}

// PullCustomers fetches the full customer mirror.
func (c *Client) PullCustomers(ctx context.Context) ([]model.Customer, error) {
	return pull[model.Customer](ctx, c, "/api/customer")
}

// PullSalesPersons fetches the full salesperson mirror.
func (c *Client) PullSalesPersons(ctx context.Context) ([]model.SalesPerson, error) {
	return pull[model.SalesPerson](ctx, c, "/api/salesperson")
}

func (c *Client) post(ctx context.Context, path string, payload any) (Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("encode %s payload: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build %s request: %w", path, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Response{}, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var envelope Response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Response{}, fmt.Errorf("decode %s response: %w", path, err)
	}
	return envelope, nil
}

// pull fetches a master-data list endpoint and unwraps its data envelope.
func pull[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var envelope struct {
		Status  string `json:"status"`
		Message string `json:"message"`
		Data    []T    `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	if envelope.Status != BodyStatusSuccess {
		return nil, fmt.Errorf("%s rejected: %s", path, envelope.Message)
	}
	return envelope.Data, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

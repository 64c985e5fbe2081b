// Package backend is the typed client for the inventory backend's REST
// contract. The backend owns all stock truth, pricing rules and
// persistence; this client only moves validated payloads back and forth.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) doJSON(ctx context.Context, method, path string, body interface{}) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "read response body")
	}
	return data, resp.StatusCode, nil
}

func (c *Client) doForm(ctx context.Context, path string, form url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "POST %s", path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, errors.Wrap(err, "read response body")
	}
	return data, resp.StatusCode, nil
}

// decode parses a response that must succeed. Business failures
// (success:false, error field, non-2xx) come back as *APIError.
func decode(data []byte, status int, out interface{}) error {
	var env errorEnvelope
	if err := json.Unmarshal(data, &env); err == nil {
		if env.failed() || (status >= 300 && env.text() != "") {
			return &APIError{Status: status, Message: env.text()}
		}
	}
	if status >= 300 {
		return &APIError{Status: status}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrap(err, "decode response")
	}
	return nil
}

// --- Stock reservation ---

type stockRequest struct {
	ItemCode string `json:"item_code"`
	Quantity int    `json:"quantity"`
}

// ReserveStock places a temporary hold on qty units of an item. A
// business rejection ("Not enough stock. Only N units available.") is
// returned as a StockResult with Success=false, not as an error; only
// transport and decode failures produce an error.
func (c *Client) ReserveStock(ctx context.Context, itemCode string, qty int) (*StockResult, error) {
	return c.stockCall(ctx, "/api/reserve-stock", itemCode, qty)
}

// ReleaseStock returns previously reserved units to the backend ledger.
func (c *Client) ReleaseStock(ctx context.Context, itemCode string, qty int) (*StockResult, error) {
	return c.stockCall(ctx, "/api/release-stock", itemCode, qty)
}

func (c *Client) stockCall(ctx context.Context, path, itemCode string, qty int) (*StockResult, error) {
	data, status, err := c.doJSON(ctx, http.MethodPost, path, stockRequest{ItemCode: itemCode, Quantity: qty})
	if err != nil {
		return nil, err
	}

	var result StockResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrapf(err, "decode stock response (status %d)", status)
	}
	return &result, nil
}

// --- Inventory ---

func (c *Client) GetProduct(ctx context.Context, itemCode string) (*Product, error) {
	data, status, err := c.doJSON(ctx, http.MethodGet, "/api/inventory/item/"+url.PathEscape(itemCode), nil)
	if err != nil {
		return nil, err
	}

	var product Product
	if err := decode(data, status, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) GetService(ctx context.Context, serviceID string) (*Service, error) {
	data, status, err := c.doJSON(ctx, http.MethodGet, "/api/services/item/"+url.PathEscape(serviceID), nil)
	if err != nil {
		return nil, err
	}

	var service Service
	if err := decode(data, status, &service); err != nil {
		return nil, err
	}
	return &service, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemCode string, update ItemUpdate) error {
	data, status, err := c.doJSON(ctx, http.MethodPost, "/api/inventory/update-item/"+url.PathEscape(itemCode), update)
	if err != nil {
		return err
	}
	return decode(data, status, nil)
}

func (c *Client) DeleteItem(ctx context.Context, itemCode string) error {
	data, status, err := c.doJSON(ctx, http.MethodDelete, "/api/inventory/delete/"+url.PathEscape(itemCode), nil)
	if err != nil {
		return err
	}
	return decode(data, status, nil)
}

// --- Users ---

type userEnvelope struct {
	User User `json:"user"`
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	data, status, err := c.doJSON(ctx, http.MethodGet, "/api/users", nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := decode(data, status, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	data, status, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decode(data, status, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) CreateUser(ctx context.Context, u NewUser) (*User, error) {
	form := url.Values{}
	form.Set("name", u.Name)
	form.Set("email", u.Email)
	form.Set("phone", u.Phone)
	form.Set("role", u.Role)
	form.Set("password", u.Password)

	data, status, err := c.doForm(ctx, "/api/users/create", form)
	if err != nil {
		return nil, err
	}

	var env userEnvelope
	if err := decode(data, status, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *Client) UpdateUser(ctx context.Context, id int64, u UserUpdate) (*User, error) {
	form := url.Values{}
	form.Set("name", u.Name)
	form.Set("email", u.Email)
	form.Set("phone", u.Phone)
	form.Set("role", u.Role)

	data, status, err := c.doForm(ctx, fmt.Sprintf("/api/users/update/%d", id), form)
	if err != nil {
		return nil, err
	}

	var env userEnvelope
	if err := decode(data, status, &env); err != nil {
		return nil, err
	}
	return &env.User, nil
}

func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	data, status, err := c.doForm(ctx, fmt.Sprintf("/api/users/delete/%d", id), url.Values{})
	if err != nil {
		return err
	}
	return decode(data, status, nil)
}

func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	data, status, err := c.doForm(ctx, "/api/users/login", form)
	if err != nil {
		return nil, err
	}

	var user User
	if err := decode(data, status, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// InvoiceDownloadURL is the browser navigation target for a generated
// invoice. It is never fetched by this client.
func (c *Client) InvoiceDownloadURL(invoiceNumber string) string {
	return c.baseURL + "/api/invoices/download/" + url.PathEscape(invoiceNumber)
}

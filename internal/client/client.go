package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/laptop_store/internal/models"
	"github.com/Skotchmaster/laptop_store/internal/transport"
)

var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response carrying the server's detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("request failed with status: %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, p string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var d transport.DetailResponse
		if err := json.NewDecoder(resp.Body).Decode(&d); err == nil {
			apiErr.Detail = d.Detail
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, p string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	req, err := c.newRequest(ctx, method, p, body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.doJSON(ctx, http.MethodPost, "/register", transport.RegisterRequest{Username: username, Password: password}, nil)
}

// Login checks the client's credentials and returns the caller's role.
func (c *Client) Login(ctx context.Context) (string, error) {
	var out transport.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", nil, &out); err != nil {
		return "", err
	}
	return out.Role, nil
}

func laptopPath(id string) string {
	return "/laptops/" + url.PathEscape(id)
}

func (c *Client) ListLaptops(ctx context.Context) ([]models.Laptop, error) {
	var out []models.Laptop
	if err := c.doJSON(ctx, http.MethodGet, "/laptops", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetLaptop(ctx context.Context, id string) (*models.Laptop, error) {
	var out models.Laptop
	if err := c.doJSON(ctx, http.MethodGet, laptopPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateLaptop(ctx context.Context, l models.Laptop) (*models.Laptop, error) {
	var out models.Laptop
	if err := c.doJSON(ctx, http.MethodPost, "/laptops", transport.FromModel(l), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLaptop(ctx context.Context, id string, l models.Laptop) (*models.Laptop, error) {
	var out models.Laptop
	if err := c.doJSON(ctx, http.MethodPut, laptopPath(id), transport.FromModel(l), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPrice fetches the laptop and writes it back with the new price.
func (c *Client) SetPrice(ctx context.Context, id string, price float64) (*models.Laptop, error) {
	l, err := c.GetLaptop(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Price = price
	return c.UpdateLaptop(ctx, id, *l)
}

func (c *Client) DeleteLaptop(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, laptopPath(id), nil, nil)
}

func (c *Client) ImportLaptops(ctx context.Context, items []models.Laptop) (int, error) {
	reqs := make([]transport.LaptopRequest, 0, len(items))
	for _, l := range items {
		reqs = append(reqs, transport.FromModel(l))
	}
	var out transport.ImportResponse
	if err := c.doJSON(ctx, http.MethodPost, "/import_laptops", reqs, &out); err != nil {
		return 0, err
	}
	return out.InsertedCount, nil
}

// ImportCSV streams a CSV document to the server as is.
func (c *Client) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/import_laptops", r, "text/csv")
	if err != nil {
		return 0, err
	}
	var out transport.ImportResponse
	if err := c.do(req, &out); err != nil {
		return 0, err
	}
	return out.InsertedCount, nil
}

func (c *Client) SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	q := url.Values{}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	for name, v := range map[string]*float64{"min_price": f.MinPrice, "max_price": f.MaxPrice, "min_rating": f.MinRating} {
		if v != nil {
			q.Set(name, strconv.FormatFloat(*v, 'f', -1, 64))
		}
	}
	p := "/search_laptops"
	if len(q) > 0 {
		p += "?" + q.Encode()
	}

	var out []models.Laptop
	if err := c.doJSON(ctx, http.MethodGet, p, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SetLaptopImage(ctx context.Context, id, filename string, r io.Reader) (*models.Laptop, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", path.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build form: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, laptopPath(id)+"/image", &buf, w.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var out models.Laptop
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateOrder(ctx context.Context, laptopID string, quantity int) (*models.Order, error) {
	var out models.Order
	in := transport.CreateOrderRequest{LaptopID: laptopID, Quantity: transport.Int(quantity)}
	if err := c.doJSON(ctx, http.MethodPost, "/orders", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id), nil, nil)
}

// ABOUTME: HTTP client for the contacts API
// ABOUTME: Implements ContactsService and CategoriesService over JSON/REST
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/harperreed/rolodex/models"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds every request when no client is supplied.
const DefaultTimeout = 10 * time.Second

// Client talks to the contacts API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	token      string
	timeout    time.Duration
	logger     *zap.Logger
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithToken sends the token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(o *clientOptions) { o.token = token }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// WithLogger attaches a logger for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(o *clientOptions) { o.logger = l }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid api url %q: scheme must be http or https", baseURL)
	}

	o := clientOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := &http.Client{}
	if o.httpClient != nil {
		// Copy so the timeout below never touches the caller's client.
		c := *o.httpClient
		httpClient = &c
	}
	if o.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: o.token,
			TokenType:   "Bearer",
		}))
	}
	if o.timeout > 0 && httpClient.Timeout == 0 {
		httpClient.Timeout = o.timeout
	}

	logger := o.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{baseURL: u, http: httpClient, logger: logger}, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func (c *Client) ListContacts(ctx context.Context, order models.SortOrder) ([]models.Contact, error) {
	var contacts []models.Contact
	q := url.Values{"orderBy": {string(order)}}
	if err := c.do(ctx, http.MethodGet, "/contacts", q, nil, &contacts); err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []models.Contact{}
	}
	return contacts, nil
}

func (c *Client) GetContactByID(ctx context.Context, id string) (*models.Contact, error) {
	path, err := contactPath(id)
	if err != nil {
		return nil, err
	}
	var contact models.Contact
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) CreateContact(ctx context.Context, payload models.ContactPayload) (*models.Contact, error) {
	var contact models.Contact
	if err := c.do(ctx, http.MethodPost, "/contacts", nil, payload, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) UpdateContact(ctx context.Context, id string, payload models.ContactPayload) (*models.Contact, error) {
	path, err := contactPath(id)
	if err != nil {
		return nil, err
	}
	var contact models.Contact
	if err := c.do(ctx, http.MethodPut, path, nil, payload, &contact); err != nil {
		return nil, err
	}
	return &contact, nil
}

func (c *Client) DeleteContact(ctx context.Context, id string) error {
	path, err := contactPath(id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// contactPath returns the escaped path of one contact. Ids that are empty or
// dot segments would resolve to another route and are refused.
func contactPath(id string) (string, error) {
	if id == "" || id == "." || id == ".." {
		return "", fmt.Errorf("invalid contact id %q", id)
	}
	return "/contacts/" + url.PathEscape(id), nil
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.baseURL
	// path arrives escaped; keep both forms so String() does not escape it twice.
	u.RawPath = c.baseURL.EscapedPath() + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return fmt.Errorf("invalid request path %q: %w", path, err)
	}
	u.Path = unescaped
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("api request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(data) == 0 {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(data))
	}
	return apiErr
}

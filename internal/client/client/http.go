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
	"strings"
	"time"

	"github.com/dmitrijs2005/diary/internal/client/models"
	"github.com/dmitrijs2005/diary/internal/common"
)

// Client is the server API used by the CLI services.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) (*models.Token, error)
	Me(ctx context.Context, token string) (*models.User, error)
	ListEntries(ctx context.Context, token string) ([]models.Entry, error)
	CreateEntry(ctx context.Context, token string, in models.EntryInput) (*models.Entry, error)
	UpdateEntry(ctx context.Context, token, id string, in models.EntryInput) (*models.Entry, error)
	DeleteEntry(ctx context.Context, token, id string) error
	NewImageUpload(ctx context.Context, token string) (*models.ImageUpload, error)
	ImageURL(ctx context.Context, token, key string) (string, error)
}

// HTTPClient implements Client over the diary REST API.
type HTTPClient struct {
	baseURL string
	hc      *http.Client
}

// NewHTTPClient returns a client for the server at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

type errorBody struct {
	Detail string `json:"detail"`
}

// do sends the request and decodes a 2xx body into out (if non-nil).
func (c *HTTPClient) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.NewDecoder(resp.Body).Decode(&eb)
		return &APIError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, body, contentType, out)
}

// Ping checks /healthz. A 503 there means the server is up but its store is
// not, which the CLI treats the same as an unreachable server.
func (c *HTTPClient) Ping(ctx context.Context) error {
	err := c.doJSON(ctx, http.MethodGet, "/healthz", "", nil, nil)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusServiceUnavailable {
		return ErrUnavailable
	}
	return err
}

func (c *HTTPClient) Register(ctx context.Context, username string, password []byte) error {
	in := map[string]string{"username": username, "password": string(password)}
	return c.doJSON(ctx, http.MethodPost, "/register", "", in, nil)
}

// Login posts the credentials as a form, the way OAuth2 password clients do.
func (c *HTTPClient) Login(ctx context.Context, username string, password []byte) (*models.Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", string(password))

	var t models.Token
	err := c.do(ctx, http.MethodPost, "/token", "", strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &t)
	if err != nil {
		return nil, err
	}
	if t.AccessToken == "" {
		return nil, errors.New("server returned an empty token")
	}
	return &t, nil
}

func (c *HTTPClient) Me(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, "/users/me", token, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, token string) ([]models.Entry, error) {
	var entries []models.Entry
	if err := c.doJSON(ctx, http.MethodGet, "/api/diary", token, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, token string, in models.EntryInput) (*models.Entry, error) {
	var e models.Entry
	if err := c.doJSON(ctx, http.MethodPost, "/api/diary", token, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, token, id string, in models.EntryInput) (*models.Entry, error) {
	var e models.Entry
	if err := c.doJSON(ctx, http.MethodPut, "/api/diary/"+url.PathEscape(id), token, in, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, token, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/diary/"+url.PathEscape(id), token, nil, nil)
}

func (c *HTTPClient) NewImageUpload(ctx context.Context, token string) (*models.ImageUpload, error) {
	var up models.ImageUpload
	if err := c.doJSON(ctx, http.MethodPost, "/api/diary/images", token, nil, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

func (c *HTTPClient) ImageURL(ctx context.Context, token, key string) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	path := "/api/diary/images/url?key=" + url.QueryEscape(key)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

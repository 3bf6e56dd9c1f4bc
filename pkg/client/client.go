package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"immichclient/internal/config"
	"immichclient/internal/logging"
	"immichclient/internal/models"
	"immichclient/pkg/uploader"
)

// ErrInvalidURL marks a server URL that is not plain http(s).
var ErrInvalidURL = errors.New("url must start with http or https")

// Client is an authenticated handle to one Immich server. It is immutable
// after construction and safe to share across concurrent upload workers;
// all of them reuse the same connection pool.
type Client struct {
	baseURL    string
	authHeader string
	authValue  string
	httpClient *http.Client
}

// WithEmail logs in with email and password and returns a session carrying
// the access token. Credential rejection is fatal here, not deferred to the
// first call.
func WithEmail(rawURL, email, password string) (*Client, error) {
	base, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	c := &Client{baseURL: base, httpClient: newHTTPClient()}

	payload, err := json.Marshal(models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	resp, err := c.Post("/auth/login", jsonHeader(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", uploader.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(resp.Body)
		logging.GlobalLogger.Error().Int("status", resp.StatusCode).Str("body", string(detail)).Msg("login rejected")
		return nil, uploader.ErrAuth
	}

	var login models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("%w: %v", uploader.ErrInvalidResponse, err)
	}

	c.authHeader = "Cookie"
	c.authValue = "immich_access_token=" + login.AccessToken
	logging.GlobalLogger.Info().Str("server", base).Msg("authenticated with email")
	return c, nil
}

// WithKey builds a session from an API key and validates it against the
// server before returning.
func WithKey(rawURL, key string) (*Client, error) {
	base, err := normalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL:    base,
		authHeader: "x-api-key",
		authValue:  key,
		httpClient: newHTTPClient(),
	}
	if !c.validToken() {
		return nil, uploader.ErrAuth
	}
	logging.GlobalLogger.Info().Str("server", base).Msg("authenticated with api key")
	return c, nil
}

// BaseURL returns the normalized server URL the session talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) validToken() bool {
	resp, err := c.Get("/auth/validateToken")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// Get issues an authenticated GET to path (relative to the server URL).
func (c *Client) Get(path string) (*http.Response, error) {
	return c.do(http.MethodGet, path, nil, nil)
}

// Post issues an authenticated POST to path. The header may carry a
// Content-Type and extra fields; body may be nil.
func (c *Client) Post(path string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.do(http.MethodPost, path, header, body)
}

// Put issues an authenticated PUT to path.
func (c *Client) Put(path string, header http.Header, body io.Reader) (*http.Response, error) {
	return c.do(http.MethodPut, path, header, body)
}

func (c *Client) do(method, path string, header http.Header, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.Config.ClientName)
	if c.authHeader != "" {
		req.Header.Set(c.authHeader, c.authValue)
	}
	return c.httpClient.Do(req)
}

// getJSON fetches path and decodes the body into out, mapping unexpected
// statuses to StatusError.
func (c *Client) getJSON(path string, out any) error {
	resp, err := c.Get(path)
	if err != nil {
		return fmt.Errorf("%w: %v", uploader.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body)
		return &uploader.StatusError{Code: resp.StatusCode, Body: string(detail)}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", uploader.ErrInvalidResponse, err)
	}
	return nil
}

func (c *Client) sendJSON(method, path string, in any, wantStatus int, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	resp, err := c.do(method, path, jsonHeader(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", uploader.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		detail, _ := io.ReadAll(resp.Body)
		return &uploader.StatusError{Code: resp.StatusCode, Body: string(detail)}
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", uploader.ErrInvalidResponse, err)
	}
	return nil
}

func jsonHeader() http.Header {
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	return header
}

func normalizeURL(rawURL string) (string, error) {
	trimmed := strings.TrimRight(rawURL, "/")
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%w: got %q", ErrInvalidURL, rawURL)
	}
	return trimmed, nil
}

func newHTTPClient() *http.Client {
	threadCount := config.Config.ConcurrentUploads
	transport := &http.Transport{
		MaxIdleConns:        config.Config.MaxIdleConns,
		MaxIdleConnsPerHost: threadCount * 2,
		MaxConnsPerHost:     threadCount * 2,
		IdleConnTimeout:     config.Config.IdleConnTimeout,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   config.Config.HTTPTimeout,
	}
}

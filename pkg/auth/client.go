package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/workbitai/oopsworld/pkg/log"
)

const (
	DefaultAuthServerURL = "http://localhost:8080"
	DefaultTimeout       = 10 * time.Second
	// maxResponseSize bounds how much of a login response is read.
	maxResponseSize = 1 << 20
)

// Client fetches login payloads from the backend. It does not interpret
// them; the raw body is handed to session.Session.TryApplyLoginResponse.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type NewClientOptions struct {
	BaseURL string
	// HTTPClient defaults to a client with DefaultTimeout.
	HTTPClient *http.Client
}

func NewClient(opts NewClientOptions) *Client {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultAuthServerURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Login signs in with email and password.
func (c *Client) Login(ctx context.Context, email, password string) ([]byte, error) {
	values := url.Values{}
	values.Set("email", email)
	values.Set("password", password)
	return c.post(ctx, "/login", values)
}

// GuestLogin signs in anonymously, keyed by the install's device id.
func (c *Client) GuestLogin(ctx context.Context, deviceID string) ([]byte, error) {
	values := url.Values{}
	values.Set("device_id", deviceID)
	return c.post(ctx, "/guest", values)
}

func (c *Client) post(ctx context.Context, path string, values url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s request: %w", path, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ErrUnexpectedStatus{Path: path, Status: resp.Status, Body: string(b)}
	}

	log.Debug("Received %d byte response from %s", len(b), path)
	return b, nil
}

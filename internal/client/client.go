// Package client talks to the remote storefront REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aaravmahajanofficial/invitation-storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/config"
	"github.com/aaravmahajanofficial/invitation-storefront/internal/metrics"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	LocalBaseURL    = "http://localhost:5001"
	DeployedBaseURL = "https://beyondinviteb.onrender.com"
)

// MaxResponseSize bounds the response bodies read from the API.
const MaxResponseSize = 10 << 20

var ErrResponseTooLarge = errors.New("API response is too large")

// ResolveBaseURL picks the API host from the hostname the storefront is
// served on.
func ResolveBaseURL(hostname string) string {
	switch strings.ToLower(strings.TrimSpace(hostname)) {
	case "localhost", "127.0.0.1":
		return LocalBaseURL
	default:
		return DeployedBaseURL
	}
}

// APIError is a non-2xx answer from the remote API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

type tokenContextKey struct{}

// WithToken attaches a bearer token to every request made with ctx.
func WithToken(ctx context.Context, token string) context.Context {
	if token == "" {
		return ctx
	}

	return context.WithValue(ctx, tokenContextKey{}, token)
}

func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey{}).(string)
	return token
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// New returns a client for the API rooted at baseURL (".../api").
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

// NewFromConfig builds an instrumented client. An explicit base URL wins
// over the hostname rule.
func NewFromConfig(cfg *config.API) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ResolveBaseURL(cfg.Hostname) + "/api"
	}

	httpClient := &http.Client{
		Transport: metrics.InstrumentTransport(otelhttp.NewTransport(http.DefaultTransport)),
		Timeout:   cfg.Timeout,
	}

	return New(baseURL, httpClient)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the API answers at all.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/categories", nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("storefront API unhealthy: status %d", resp.StatusCode)
	}

	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {

	logger := middleware.LoggerFromContext(req.Context())

	if token := TokenFromContext(req.Context()); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("API request failed", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Any("error", err))
		return fmt.Errorf("request %s %s failed: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if len(data) > MaxResponseSize {
		logger.Error("API response exceeds size limit", slog.String("method", req.Method), slog.String("path", req.URL.Path))
		return fmt.Errorf("%w: %s %s", ErrResponseTooLarge, req.Method, req.URL.Path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, data)}
		logger.Warn("API returned an error", slog.String("method", req.Method), slog.String("path", req.URL.Path), slog.Int("status", resp.StatusCode))
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("invalid JSON from %s: %w", req.URL.Path, err)
	}

	return nil
}

func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}

	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}

	return fmt.Sprintf("HTTP error! status: %d", status)
}

// list fetches a JSON array and decodes it row by row. Rows that do not
// decode or fail validation are dropped; the remote API is not trusted to
// return well-formed rows.
func list[T any](ctx context.Context, c *Client, kind, path string) ([]T, error) {
	var rows []json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}

	logger := middleware.LoggerFromContext(ctx)
	valid := make([]T, 0, len(rows))

	for idx, row := range rows {
		var item T
		if err := json.Unmarshal(row, &item); err != nil {
			logger.Warn("Dropping undecodable record from API",
				slog.String("kind", kind), slog.Int("index", idx), slog.String("error", err.Error()))
			continue
		}

		if err := c.validate.Struct(item); err != nil {
			logger.Warn("Dropping malformed record from API",
				slog.String("kind", kind), slog.Int("index", idx), slog.String("error", err.Error()))
			continue
		}

		valid = append(valid, item)
	}

	return valid, nil
}

func (c *Client) validOne(kind string, item any) error {
	if err := c.validate.Struct(item); err != nil {
		return fmt.Errorf("malformed %s from API: %w", kind, err)
	}

	return nil
}

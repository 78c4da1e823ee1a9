package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BaSui01/runwayflow"
	"github.com/BaSui01/runwayflow/internal/metrics"
	"github.com/BaSui01/runwayflow/internal/tlsutil"
)

const (
	// DefaultBaseURL is the production Runway API endpoint.
	DefaultBaseURL = "https://api.runwayml.com/v1"

	// DefaultAPIVersion is the Runway API version sent on every request.
	DefaultAPIVersion = "2024-11-06"

	// EnvAPISecret is the environment variable consulted when no API key is
	// passed explicitly.
	EnvAPISecret = "RUNWAYML_API_SECRET"
)

// Config holds the configuration for the Runway request client.
type Config struct {
	// APIKey is the authentication key. Falls back to EnvAPISecret when empty.
	APIKey string

	// BaseURL is the API base URL. Defaults to DefaultBaseURL.
	BaseURL string

	// APIVersion is sent as the X-Runway-Version header. Defaults to
	// DefaultAPIVersion.
	APIVersion string

	// Timeout is the per-request HTTP timeout. Defaults to 60s if zero.
	Timeout time.Duration

	// RateLimit caps outbound requests per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the limiter burst size. Defaults to 1 when RateLimit is set.
	RateBurst int
}

// Client is the single point of outbound communication with the Runway API.
// The credential is resolved once at construction and never mutated, so a
// single instance is safe for concurrent use.
type Client struct {
	cfg       Config
	client    *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
	collector *metrics.Collector
}

// New creates a Runway request client. The API key is taken from cfg.APIKey,
// falling back to the RUNWAYML_API_SECRET environment variable; construction
// fails when neither yields a non-empty value.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(EnvAPISecret))
	}
	if apiKey == "" {
		return nil, &runwayflow.Error{
			Code: runwayflow.ErrConfiguration,
			Message: fmt.Sprintf(
				"no API key provided: pass Config.APIKey or set %s", EnvAPISecret),
		}
	}
	cfg.APIKey = apiKey

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	c := &Client{
		cfg:       cfg,
		client:    tlsutil.SecureHTTPClient(cfg.Timeout),
		limiter:   limiter,
		logger:    logger,
		collector: metrics.Default(),
	}
	c.logger.Info("runway client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("api_version", cfg.APIVersion),
	)
	return c, nil
}

// BuildHeaders returns the headers attached to every API request. Pure, no
// failure mode.
func (c *Client) BuildHeaders() http.Header {
	return c.headersFor(c.cfg.APIKey)
}

func (c *Client) headersFor(apiKey string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("X-Runway-Version", c.cfg.APIVersion)
	return h
}

// resolveAPIKey returns the API key, checking for a context override first.
func (c *Client) resolveAPIKey(ctx context.Context) string {
	if o, ok := runwayflow.CredentialOverrideFromContext(ctx); ok {
		if key := strings.TrimSpace(o.APIKey); key != "" {
			return key
		}
	}
	return c.cfg.APIKey
}

// endpoint builds the full URL for a given path. A leading slash on the
// endpoint is stripped to avoid double slashes.
func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// Execute dispatches an HTTP request against the Runway API and returns the
// parsed JSON body. GET payloads are sent as query parameters, all other
// verbs as a JSON request body. Only GET/POST/PUT/DELETE are accepted; the
// check runs before any network I/O. Non-2xx responses are mapped to a
// *runwayflow.Error carrying the original status code and body text.
func (c *Client) Execute(ctx context.Context, method, endpoint string, payload map[string]any) (json.RawMessage, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, &runwayflow.Error{
			Code:    runwayflow.ErrUnsupportedMethod,
			Message: fmt.Sprintf("unsupported HTTP method: %s", method),
		}
	}

	requestID := uuid.NewString()
	log := c.logger.With(
		zap.String("request_id", requestID),
		zap.String("method", method),
		zap.String("endpoint", endpoint),
	)
	log.Info("executing runway API request")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &runwayflow.Error{
				Code:    runwayflow.ErrUpstreamTimeout,
				Message: fmt.Sprintf("rate limiter wait aborted: %v", err),
			}
		}
	}

	reqURL := c.endpoint(endpoint)
	var body io.Reader
	if method == http.MethodGet {
		if len(payload) > 0 {
			q := url.Values{}
			for k, v := range payload {
				q.Set(k, fmt.Sprint(v))
			}
			reqURL += "?" + q.Encode()
		}
	} else if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header = c.headersFor(c.resolveAPIKey(ctx))

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.collector.RecordAPIRequest(method, endpoint, 0, time.Since(start))
		log.Error("runway API request failed", zap.Error(err))
		return nil, &runwayflow.Error{
			Code:      runwayflow.ErrUpstreamError,
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	c.collector.RecordAPIRequest(method, endpoint, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, &runwayflow.Error{
			Code:       runwayflow.ErrUpstreamError,
			Message:    fmt.Sprintf("reading response: %v", err),
			HTTPStatus: resp.StatusCode,
			Retryable:  true,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := MapHTTPError(resp.StatusCode, ReadErrorMessage(respBody), string(respBody))
		log.Error("runway API returned error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(respBody)),
		)
		return nil, appErr
	}

	if len(respBody) == 0 {
		// 204 等无响应体的成功
		return nil, nil
	}
	if !json.Valid(respBody) {
		return nil, &runwayflow.Error{
			Code:       runwayflow.ErrUpstreamError,
			Message:    "response body is not valid JSON",
			HTTPStatus: resp.StatusCode,
			Body:       string(respBody),
		}
	}
	return json.RawMessage(respBody), nil
}

// CheckStatus 尽力而为地探测 API 可达性与密钥有效性。任何失败（包括传输
// 与解析错误）都归约为 false，从不向调用方传播错误。
func (c *Client) CheckStatus(ctx context.Context) bool {
	if _, err := c.Execute(ctx, http.MethodGet, "/organization", nil); err != nil {
		c.logger.Warn("API status check failed", zap.Error(err))
		return false
	}
	return true
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BaSui01/runwayflow"
)

// ---------------------------------------------------------------------------
// New() constructor
// ---------------------------------------------------------------------------

func TestNew_Defaults(t *testing.T) {
	c, err := New(Config{APIKey: "test-key"}, nil)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, DefaultBaseURL, c.cfg.BaseURL)
	assert.Equal(t, DefaultAPIVersion, c.cfg.APIVersion)
	assert.Equal(t, 60*time.Second, c.cfg.Timeout)
	assert.Nil(t, c.limiter)
	assert.NotNil(t, c.logger)
}

func TestNew_ExplicitKeyWinsOverEnv(t *testing.T) {
	t.Setenv(EnvAPISecret, "env-key")
	c, err := New(Config{APIKey: "explicit-key"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Bearer explicit-key", c.BuildHeaders().Get("Authorization"))
}

func TestNew_EnvFallback(t *testing.T) {
	t.Setenv(EnvAPISecret, "env-key")
	c, err := New(Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Bearer env-key", c.BuildHeaders().Get("Authorization"))
}

func TestNew_MissingCredential(t *testing.T) {
	t.Setenv(EnvAPISecret, "")
	c, err := New(Config{}, zap.NewNop())
	assert.Nil(t, c)
	require.Error(t, err)
	assert.True(t, runwayflow.IsCode(err, runwayflow.ErrConfiguration))
}

func TestNew_RateLimiter(t *testing.T) {
	c, err := New(Config{APIKey: "k", RateLimit: 2}, nil)
	require.NoError(t, err)
	assert.NotNil(t, c.limiter)
}

// ---------------------------------------------------------------------------
// BuildHeaders
// ---------------------------------------------------------------------------

func TestBuildHeaders(t *testing.T) {
	c, err := New(Config{APIKey: "test-key"}, nil)
	require.NoError(t, err)

	h := c.BuildHeaders()
	assert.Equal(t, "Bearer test-key", h.Get("Authorization"))
	assert.Equal(t, "application/json", h.Get("Content-Type"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.Equal(t, DefaultAPIVersion, h.Get("X-Runway-Version"))
}

// ---------------------------------------------------------------------------
// Execute
// ---------------------------------------------------------------------------

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{APIKey: "test-key", BaseURL: server.URL}, zap.NewNop())
	require.NoError(t, err)
	return c, server
}

func TestExecute_UnsupportedMethod(t *testing.T) {
	var hits atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	for _, method := range []string{"PATCH", "HEAD", "OPTIONS", "TRACE", ""} {
		raw, err := c.Execute(context.Background(), method, "/tasks/abc", nil)
		assert.Nil(t, raw)
		assert.True(t, runwayflow.IsCode(err, runwayflow.ErrUnsupportedMethod), method)
	}
	// 方法检查先于任何网络调用
	assert.Equal(t, int32(0), hits.Load())
}

func TestExecute_Post(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/image-to-video", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, DefaultAPIVersion, r.Header.Get("X-Runway-Version"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gen4_turbo", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"task_123"}`))
	}))

	raw, err := c.Execute(context.Background(), "POST", "/image-to-video",
		map[string]any{"model": "gen4_turbo"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"task_123"}`, string(raw))
}

func TestExecute_GetSendsPayloadAsQuery(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "running", r.URL.Query().Get("status"))
		w.Write([]byte(`{"tasks":[]}`))
	}))

	_, err := c.Execute(context.Background(), "get", "tasks",
		map[string]any{"limit": 10, "status": "running"})
	require.NoError(t, err)
}

func TestExecute_LeadingSlashStripped(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))

	_, err := c.Execute(context.Background(), "GET", "/organization", nil)
	require.NoError(t, err)
	assert.Equal(t, "/organization", gotPath)
}

func TestExecute_NonSuccessCarriesStatusAndBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limit exceeded"}`))
	}))

	raw, err := c.Execute(context.Background(), "GET", "/tasks/abc", nil)
	assert.Nil(t, raw)
	require.Error(t, err)

	appErr, ok := err.(*runwayflow.Error)
	require.True(t, ok)
	assert.Equal(t, runwayflow.ErrRateLimited, appErr.Code)
	assert.Equal(t, http.StatusTooManyRequests, appErr.HTTPStatus)
	assert.Contains(t, appErr.Body, "rate limit exceeded")
	assert.True(t, appErr.Retryable)
}

func TestExecute_InvalidJSONResponse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))

	raw, err := c.Execute(context.Background(), "GET", "/tasks/abc", nil)
	assert.Nil(t, raw)
	assert.True(t, runwayflow.IsCode(err, runwayflow.ErrUpstreamError))
}

func TestExecute_EmptySuccessBody(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	raw, err := c.Execute(context.Background(), "DELETE", "/tasks/abc", nil)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestExecute_CredentialOverride(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer override-key", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))

	ctx := runwayflow.WithCredentialOverride(context.Background(),
		runwayflow.CredentialOverride{APIKey: "override-key"})
	_, err := c.Execute(ctx, "GET", "/organization", nil)
	require.NoError(t, err)
}

func TestExecute_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c, err := New(Config{APIKey: "k", BaseURL: server.URL}, zap.NewNop())
	require.NoError(t, err)
	server.Close()

	raw, err := c.Execute(context.Background(), "GET", "/organization", nil)
	assert.Nil(t, raw)
	require.Error(t, err)
	appErr, ok := err.(*runwayflow.Error)
	require.True(t, ok)
	assert.Equal(t, runwayflow.ErrUpstreamError, appErr.Code)
	assert.True(t, appErr.Retryable)
}

// ---------------------------------------------------------------------------
// CheckStatus
// ---------------------------------------------------------------------------

func TestCheckStatus_Healthy(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/organization", r.URL.Path)
		w.Write([]byte(`{"id":"org_1"}`))
	}))
	assert.True(t, c.CheckStatus(context.Background()))
}

func TestCheckStatus_NeverPropagatesErrors(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("boom"))
	}))
	assert.False(t, c.CheckStatus(context.Background()))

	// 连接失败同样归约为 false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead, err := New(Config{APIKey: "k", BaseURL: server.URL}, zap.NewNop())
	require.NoError(t, err)
	server.Close()
	assert.False(t, dead.CheckStatus(context.Background()))
}

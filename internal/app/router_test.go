package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpserver "github.com/fairyhunter13/cv-feedback/internal/adapter/httpserver"
	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	"github.com/fairyhunter13/cv-feedback/internal/usecase"
)

func TestParseOrigins(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"", []string{"*"}},
		{"*", []string{"*"}},
		{"https://a.com, https://b.com", []string{"https://a.com", "https://b.com"}},
		{"  ,  ", []string{"*"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ParseOrigins(c.in), c.in)
	}
}

func newRouter(t *testing.T, cfg config.Config, rdb *redis.Client) http.Handler {
	t.Helper()
	observability.InitMetrics()
	an, err := BuildAnalyzer(cfg)
	require.NoError(t, err)
	srv := httpserver.NewServer(cfg, usecase.NewAnalyzeService(an), nil, an.Registry(), an.Tuning(), nil, nil)
	return BuildRouter(cfg, srv, NewLimiter(cfg, rdb))
}

func testConfig() config.Config {
	return config.Config{AppEnv: "test", MaxUploadMB: 1, LowTextChars: 10, RateLimitPerMin: 100, CORSAllowOrigins: "*"}
}

func analyzeRequest(t *testing.T) *http.Request {
	t.Helper()
	b, err := json.Marshal(map[string]string{"text": "Jane Doe\njane@example.com\nExperience\n- Built Go services", "role": "nodejs"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestBuildRouter_Routes(t *testing.T) {
	h := newRouter(t, testConfig(), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, analyzeRequest(t))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "backend_node", out["meta"].(map[string]any)["role"])

	for path, want := range map[string]int{
		"/v1/roles":          http.StatusOK,
		"/healthz":           http.StatusOK,
		"/readyz":            http.StatusOK,
		"/metrics":           http.StatusOK,
		"/v1/admin/tuning":   http.StatusNotFound,
		"/v1/does-not-exist": http.StatusNotFound,
	} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Code, path)
	}
}

func TestBuildRouter_AdminMountedWhenConfigured(t *testing.T) {
	hash, err := httpserver.HashPassword("pw", httpserver.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32})
	require.NoError(t, err)
	cfg := testConfig()
	cfg.AdminUsername = "admin"
	cfg.AdminPasswordHash = hash
	h := newRouter(t, cfg, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/tuning", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/tuning", nil)
	req.SetBasicAuth("admin", "pw")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildRouter_InProcessRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitPerMin = 1
	h := newRouter(t, cfg, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, analyzeRequest(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, analyzeRequest(t))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestBuildRouter_RedisRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	cfg.RateLimitPerMin = 1
	h := newRouter(t, cfg, rdb)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, analyzeRequest(t))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, analyzeRequest(t))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "RATE_LIMITED", out["error"]["code"])
}

package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"credpool/internal/config"
	"credpool/internal/credential"
	"credpool/internal/orchestrator"
	"credpool/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBuild(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		CORSOrigin:      "*",
		BodySizeLimit:   10 << 20,
		HealthCheckPath: "/health",
		StatsPath:       "/stats",
		MetricsEnabled:  true,
		UpstreamBaseURL: "example.com",
		UpstreamAPIVer:  "v1beta",
		UpstreamTimeout: 2 * time.Second,
		RetryCount:      1,
		RetryDelay:      10 * time.Millisecond,
		AdminKey:        "s3cret",
	}
	reg := credential.NewRegistry()
	sel := credential.NewSelector(reg, credential.RoundRobin)
	client := upstream.New(cfg)
	healthCfg := credential.HealthConfig{FailureThreshold: 3, CooldownDuration: 100 * time.Millisecond, ProbesRequiredToClose: 3}
	o := orchestrator.New(reg, sel, client, healthCfg)
	return Build(cfg, reg, o)
}

func TestRootReturnsServiceDescriptor(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "endpoints")
}

func TestHealthReturnsOK(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsReturnsCredentialSnapshot(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "credentials")
}

func TestUnknownRouteReturns404JSON(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestChatCompletionsWithoutCredentialsReturnsAuthMissing(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	body := strings.NewReader(`{"model":"gpt-4o","messages":[{"role":"user","content":"hi"}]}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", body)
	engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth_missing")
}

func TestAdminResetAcceptsKeyButReportsUnknownCredential(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/credentials/some-id/reset", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code) // unknown id, but the key was accepted
}

func TestAdminResetRejectsWrongKey(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/credentials/some-id/reset", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "admin_auth_failed")
}

func TestAdminResetRouteAbsentWhenKeyUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{CORSOrigin: "*", BodySizeLimit: 10 << 20, HealthCheckPath: "/health", StatsPath: "/stats"}
	reg := credential.NewRegistry()
	sel := credential.NewSelector(reg, credential.RoundRobin)
	client := upstream.New(cfg)
	healthCfg := credential.HealthConfig{FailureThreshold: 3, CooldownDuration: 100 * time.Millisecond, ProbesRequiredToClose: 3}
	o := orchestrator.New(reg, sel, client, healthCfg)
	engine := Build(cfg, reg, o)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/credentials/some-id/reset", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	engine := testBuild(t)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

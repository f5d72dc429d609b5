package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHTTPErrorClassifiesCredentialRejected(t *testing.T) {
	for _, code := range []int{401, 403} {
		e := MapHTTPError(code, nil)
		assert.Equal(t, KindCredentialRejected, e.Kind)
		assert.True(t, e.IsFailoverEligible())
	}
}

func TestMapHTTPErrorUpstreamStatus(t *testing.T) {
	e := MapHTTPError(500, []byte(`{"error":{"message":"boom"}}`))
	assert.Equal(t, KindUpstreamStatus, e.Kind)
	assert.Equal(t, "boom", e.Message)
	assert.True(t, e.IsFailoverEligible())
}

func TestMapHTTPErrorRateLimited(t *testing.T) {
	e := MapHTTPError(429, nil)
	assert.Equal(t, KindRateLimited, e.Kind)
	assert.False(t, e.IsFailoverEligible())
}

func TestIsRetryableUpstreamStatus(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404} {
		assert.False(t, IsRetryableUpstreamStatus(code), "status %d must not be retryable", code)
	}
	for _, code := range []int{429, 500, 502, 503} {
		assert.True(t, IsRetryableUpstreamStatus(code), "status %d should be retryable", code)
	}
}

func TestMapNetworkErrorTimeout(t *testing.T) {
	e := MapNetworkError(errors.New("context deadline exceeded"))
	assert.Equal(t, KindTimeout, e.Kind)
}

func TestMapNetworkErrorConnection(t *testing.T) {
	e := MapNetworkError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, KindNetwork, e.Kind)
}

func TestToJSONOpenAIEnvelope(t *testing.T) {
	e := ValidationErr("messages must be a non-empty list")
	body, err := e.ToJSON(FormatOpenAI)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"messages must be a non-empty list","type":"invalid_request_error","code":"invalid_request_error"}}`, string(body))
}

func TestToJSONGeminiEnvelope(t *testing.T) {
	e := NoCredentialAvailable()
	body, err := e.ToJSON(FormatGemini)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":503,"message":"every credential is currently cooling down; retry shortly","status":"UNAVAILABLE"}}`, string(body))
}

package errors

import (
	"encoding/json"
	"net/http"
)

// nonRetryableUpstreamStatus are the upstream statuses C5 must not retry.
var nonRetryableUpstreamStatus = map[int]bool{
	http.StatusBadRequest:   true,
	http.StatusUnauthorized: true,
	http.StatusForbidden:    true,
	http.StatusNotFound:     true,
}

// MapHTTPError classifies an upstream HTTP response. 401 and 403 are
// classified CredentialRejected rather than plain UpstreamStatus, because
// the orchestrator treats that case specially: it still counts as a
// failure, but failover to another credential should still be attempted.
func MapHTTPError(statusCode int, upstreamBody []byte) *APIError {
	msg := extractUpstreamMessage(upstreamBody)

	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return New(KindCredentialRejected, statusCode, "credential_rejected", "authentication_error",
			firstNonEmpty(msg, "upstream rejected the credential")).withUpstreamCode(statusCode)
	}

	httpStatus := statusCode
	if httpStatus < 400 {
		httpStatus = http.StatusBadGateway
	}

	switch statusCode {
	case http.StatusTooManyRequests:
		return New(KindRateLimited, statusCode, "rate_limit_exceeded", "rate_limit_error",
			firstNonEmpty(msg, "rate limit exceeded")).withUpstreamCode(statusCode)
	default:
		return New(KindUpstreamStatus, httpStatus, "upstream_error", "server_error",
			firstNonEmpty(msg, "upstream returned an error")).withUpstreamCode(statusCode)
	}
}

// IsRetryableUpstreamStatus reports whether C5's unary retry loop should
// retry a given raw upstream status code.
func IsRetryableUpstreamStatus(statusCode int) bool {
	return !nonRetryableUpstreamStatus[statusCode]
}

func (e *APIError) withUpstreamCode(code int) *APIError {
	e.UpstreamCode = code
	return e
}

func extractUpstreamMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if errObj, ok := parsed["error"].(map[string]interface{}); ok {
			if msg, ok := errObj["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	msg := string(body)
	if len(msg) > 200 {
		return msg[:200] + "..."
	}
	return msg
}

func firstNonEmpty(strs ...string) string {
	for _, s := range strs {
		if s != "" {
			return s
		}
	}
	return ""
}

package errors

import "net/http"

// ValidationErr reports a malformed inbound body or missing fields.
func ValidationErr(message string) *APIError {
	return New(KindValidation, http.StatusBadRequest, "invalid_request_error", "invalid_request_error", message)
}

// AuthMissing reports that no credential header was present.
func AuthMissing() *APIError {
	return New(KindAuthMissing, http.StatusUnauthorized, "auth_missing", "authentication_error",
		"no credential supplied via Authorization or x-goog-api-key")
}

// AdminAuthFailed reports a missing or incorrect admin credential on an
// operator-only route.
func AdminAuthFailed() *APIError {
	return New(KindAdminAuth, http.StatusUnauthorized, "admin_auth_failed", "authentication_error",
		"missing or incorrect admin credential")
}

// NotFound reports an unknown path.
func NotFound() *APIError {
	return New(KindNotFound, http.StatusNotFound, "not_found", "invalid_request_error", "resource not found")
}

// MethodNotAllowed reports a recognized path called with the wrong verb.
func MethodNotAllowed() *APIError {
	return New(KindMethodNotAllowed, http.StatusMethodNotAllowed, "method_not_allowed", "invalid_request_error", "method not allowed")
}

// NoCredentialAvailable reports that every known credential is currently
// TRIPPED, with an advisory message for the caller.
func NoCredentialAvailable() *APIError {
	return New(KindNoCredentialAvailable, http.StatusServiceUnavailable, "no_credential_available", "server_error",
		"every credential is currently cooling down; retry shortly")
}

// ServiceUnavailableErr reports that the orchestrator exhausted its
// failover budget without a successful attempt.
func ServiceUnavailableErr(message string) *APIError {
	return New(KindServiceUnavailable, http.StatusServiceUnavailable, "service_unavailable", "server_error", message)
}

// TimeoutErr reports that the upstream call's overall budget expired.
func TimeoutErr(message string) *APIError {
	return New(KindTimeout, http.StatusGatewayTimeout, "timeout", "timeout_error", message)
}

// ParseErr reports a malformed upstream response body.
func ParseErr(message string) *APIError {
	return New(KindParse, http.StatusInternalServerError, "parse_error", "server_error", message)
}

// FormatConversionErr reports a translator invariant violation: a bug, not
// a caller or upstream fault.
func FormatConversionErr(message string) *APIError {
	return New(KindFormatConversion, http.StatusInternalServerError, "format_conversion_error", "server_error", message)
}

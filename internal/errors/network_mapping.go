package errors

import "strings"

// MapNetworkError classifies a transport-level error returned by the
// upstream client into either Timeout or Network, using the same
// substring heuristics a net/http round tripper's errors actually produce.
func MapNetworkError(err error) *APIError {
	if err == nil {
		return nil
	}
	msg := err.Error()

	switch {
	case strings.Contains(msg, "context deadline exceeded"), strings.Contains(msg, "timeout"):
		return TimeoutErr("upstream call timed out: " + msg)
	case strings.Contains(msg, "context canceled"):
		return New(KindNetwork, 499, "request_canceled", "timeout_error", "request was canceled: "+msg)
	case strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "EOF"),
		strings.Contains(msg, "connection reset"),
		strings.Contains(msg, "no such host"),
		strings.Contains(msg, "name resolution"),
		strings.Contains(msg, "certificate"),
		strings.Contains(msg, "tls"):
		return New(KindNetwork, 500, "network_error", "server_error", "network error: "+msg)
	default:
		return New(KindNetwork, 500, "network_error", "server_error", "network error: "+msg)
	}
}

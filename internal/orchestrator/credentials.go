// Package orchestrator implements C7, the request orchestrator: credential
// extraction, registration, format translation, and the selection/failover
// loop that drives C3 and C5 for a single inbound chat request.
package orchestrator

import (
	"strings"

	"credpool/internal/errors"
)

// ExtractCredentials pulls credentials out of the Authorization or
// x-goog-api-key header, per §6: comma-separated, trimmed, de-duplicated
// preserving order, Authorization tried first.
func ExtractCredentials(authHeader, googHeader string) ([]string, *errors.APIError) {
	raw := authHeader
	if strings.HasPrefix(raw, "Bearer ") {
		raw = strings.TrimPrefix(raw, "Bearer ")
	} else {
		raw = ""
	}
	if raw == "" {
		raw = googHeader
	}

	var creds []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		creds = append(creds, part)
	}

	if len(creds) == 0 {
		return nil, errors.AuthMissing()
	}
	return creds, nil
}

// Package translator implements bidirectional translation between the
// OpenAI Chat Completions wire schema and the Google Generative Language
// generateContent schema, including SSE streaming chunks.
package translator

import (
	"encoding/json"

	"credpool/internal/errors"
)

// ToUpstream translates an inbound OpenAI-style chat request body into the
// upstream generateContent request body, per §4.6.
func ToUpstream(rawJSON []byte) ([]byte, error) {
	contents := buildContents(rawJSON)
	if len(contents) == 0 {
		return nil, errors.ValidationErr("messages must be a non-empty list")
	}

	upstream := map[string]interface{}{
		"contents":         contents,
		"safetySettings":   safetySettings(),
		"generationConfig": buildGenerationConfig(rawJSON),
	}
	if tools := buildTools(rawJSON); tools != nil {
		upstream["tools"] = tools
	}

	body, err := json.Marshal(upstream)
	if err != nil {
		return nil, errors.FormatConversionErr("marshaling upstream request: " + err.Error())
	}
	return body, nil
}

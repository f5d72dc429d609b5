package translator

import (
	"encoding/json"
	"strings"
	"time"

	"credpool/internal/models"

	"github.com/tidwall/gjson"
)

// apologyText is emitted as the sole choice's content when an upstream
// response carries no candidates at all (e.g. a hard safety block).
const apologyText = "I'm unable to provide a response to that request."

// FromUpstreamUnary translates a fully-buffered upstream generateContent
// response into an OpenAI chat.completion response, per §4.6.
func FromUpstreamUnary(requestedModel string, upstreamBody []byte) ([]byte, error) {
	result := gjson.ParseBytes(upstreamBody)
	candidates := result.Get("candidates")

	var choices []map[string]interface{}
	if !candidates.Exists() || len(candidates.Array()) == 0 {
		choices = append(choices, map[string]interface{}{
			"index": 0,
			"message": map[string]interface{}{
				"role":    "assistant",
				"content": apologyText,
			},
			"finish_reason": "content_filter",
		})
	} else {
		for idx, candidate := range candidates.Array() {
			choices = append(choices, buildChoice(idx, candidate))
		}
	}

	usage := map[string]interface{}{
		"prompt_tokens":     0,
		"completion_tokens": 0,
		"total_tokens":      0,
	}
	if u := result.Get("usageMetadata"); u.Exists() {
		prompt := u.Get("promptTokenCount").Int()
		completion := u.Get("candidatesTokenCount").Int()
		usage["prompt_tokens"] = prompt
		usage["completion_tokens"] = completion
		usage["total_tokens"] = prompt + completion
	}

	response := map[string]interface{}{
		"id":      chatCompletionID(),
		"object":  "chat.completion",
		"created": time.Now().Unix(),
		"model":   models.ToInbound(requestedModel),
		"choices": choices,
		"usage":   usage,
	}
	return json.Marshal(response)
}

func buildChoice(idx int, candidate gjson.Result) map[string]interface{} {
	var text strings.Builder
	var toolCalls []map[string]interface{}

	for _, part := range candidate.Get("content.parts").Array() {
		if t := part.Get("text"); t.Exists() {
			text.WriteString(t.String())
		}
		if fc := part.Get("functionCall"); fc.Exists() {
			name := fc.Get("name").String()
			var argsJSON []byte
			if args := fc.Get("args"); args.Exists() {
				argsJSON, _ = json.Marshal(args.Value())
			} else {
				argsJSON = []byte("{}")
			}
			toolCalls = append(toolCalls, map[string]interface{}{
				"id":   toolCallID(),
				"type": "function",
				"function": map[string]interface{}{
					"name":      name,
					"arguments": string(argsJSON),
				},
			})
		}
	}

	message := map[string]interface{}{
		"role":    "assistant",
		"content": text.String(),
	}
	if len(toolCalls) > 0 {
		message["tool_calls"] = toolCalls
	}

	index := idx
	if ci := candidate.Get("index"); ci.Exists() {
		index = int(ci.Int())
	}

	return map[string]interface{}{
		"index":         index,
		"message":       message,
		"finish_reason": mapFinishReason(candidate.Get("finishReason").String()),
	}
}

// mapFinishReason applies the table from §4.6. An absent finishReason
// yields nil so the field renders as JSON null.
func mapFinishReason(reason string) interface{} {
	switch reason {
	case "":
		return nil
	case "STOP":
		return "stop"
	case "MAX_TOKENS":
		return "length"
	case "SAFETY", "RECITATION":
		return "content_filter"
	case "OTHER":
		return "stop"
	default:
		return "stop"
	}
}

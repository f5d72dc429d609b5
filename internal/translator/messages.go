package translator

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// buildContents folds system messages into the first user message and maps
// every remaining message to one Gemini `contents` entry, per §4.6.
func buildContents(rawJSON []byte) []interface{} {
	messages := gjson.GetBytes(rawJSON, "messages")

	var systemChunks []string
	var contents []interface{}
	firstUserIdx := -1

	for _, msg := range messages.Array() {
		role := msg.Get("role").String()
		content := msg.Get("content").String()

		switch role {
		case "system":
			if content != "" {
				systemChunks = append(systemChunks, content)
			}
			continue
		case "assistant":
			contents = append(contents, map[string]interface{}{"role": "model", "parts": assistantParts(msg, content)})
		case "tool":
			contents = append(contents, map[string]interface{}{"role": "function", "parts": toolParts(msg, content)})
		default:
			// "user" and any unrecognized role map to user, per §4.6.
			entry := map[string]interface{}{"role": "user", "parts": userParts(content)}
			if firstUserIdx == -1 {
				firstUserIdx = len(contents)
			}
			contents = append(contents, entry)
		}
	}

	foldSystemIntoFirstUser(contents, firstUserIdx, strings.Join(systemChunks, "\n"))
	if firstUserIdx == -1 && len(systemChunks) > 0 {
		folded := strings.Join(systemChunks, "\n")
		contents = append([]interface{}{map[string]interface{}{
			"role":  "user",
			"parts": []interface{}{map[string]interface{}{"text": folded}},
		}}, contents...)
	}

	return contents
}

// foldSystemIntoFirstUser prepends folded (if non-empty) to the first user
// message's leading text part, with a blank-line separator. No-op if
// there is no first user message or nothing to fold.
func foldSystemIntoFirstUser(contents []interface{}, firstUserIdx int, folded string) {
	if folded == "" || firstUserIdx == -1 {
		return
	}
	entry := contents[firstUserIdx].(map[string]interface{})
	parts := entry["parts"].([]interface{})
	textPart := parts[0].(map[string]interface{})
	textPart["text"] = folded + "\n\n" + textPart["text"].(string)
}

func userParts(content string) []interface{} {
	return []interface{}{map[string]interface{}{"text": content}}
}

func assistantParts(msg gjson.Result, content string) []interface{} {
	var parts []interface{}
	if content != "" {
		parts = append(parts, map[string]interface{}{"text": content})
	}

	toolCalls := msg.Get("tool_calls")
	if toolCalls.Exists() && toolCalls.IsArray() {
		for _, tc := range toolCalls.Array() {
			name := tc.Get("function.name").String()
			argsRaw := tc.Get("function.arguments").String()
			var args interface{}
			if argsRaw == "" {
				args = map[string]interface{}{}
			} else if err := json.Unmarshal([]byte(argsRaw), &args); err != nil {
				args = map[string]interface{}{}
			}
			parts = append(parts, map[string]interface{}{
				"functionCall": map[string]interface{}{"name": name, "args": args},
			})
		}
	}

	if len(parts) == 0 {
		parts = append(parts, map[string]interface{}{"text": ""})
	}
	return parts
}

func toolParts(msg gjson.Result, content string) []interface{} {
	name := msg.Get("name").String()
	if name == "" {
		name = "unknown_function"
	}
	var response interface{}
	if content == "" {
		response = map[string]interface{}{}
	} else if err := json.Unmarshal([]byte(content), &response); err != nil {
		response = map[string]interface{}{"result": content}
	}
	return []interface{}{map[string]interface{}{
		"functionResponse": map[string]interface{}{"name": name, "response": response},
	}}
}

package translator

// safetySettings returns the four harm categories at BLOCK_NONE, as §4.6
// requires on every translated request.
func safetySettings() []interface{} {
	categories := []string{
		"HARM_CATEGORY_HATE_SPEECH",
		"HARM_CATEGORY_SEXUALLY_EXPLICIT",
		"HARM_CATEGORY_DANGEROUS_CONTENT",
		"HARM_CATEGORY_HARASSMENT",
	}
	out := make([]interface{}, 0, len(categories))
	for _, c := range categories {
		out = append(out, map[string]interface{}{
			"category":  c,
			"threshold": "BLOCK_NONE",
		})
	}
	return out
}

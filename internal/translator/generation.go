package translator

import "github.com/tidwall/gjson"

// buildGenerationConfig maps only the sampling parameters the caller
// actually supplied, per §4.6: "Fields not supplied by the caller MUST NOT
// be set on the upstream request."
func buildGenerationConfig(rawJSON []byte) map[string]interface{} {
	cfg := make(map[string]interface{})

	if temp := gjson.GetBytes(rawJSON, "temperature"); temp.Exists() {
		cfg["temperature"] = clamp(temp.Float(), 0, 2)
	}
	if topP := gjson.GetBytes(rawJSON, "top_p"); topP.Exists() {
		cfg["topP"] = clamp(topP.Float(), 0, 1)
	}
	if maxTokens := gjson.GetBytes(rawJSON, "max_tokens"); maxTokens.Exists() {
		cfg["maxOutputTokens"] = maxTokens.Int()
	}
	if stop := gjson.GetBytes(rawJSON, "stop"); stop.Exists() {
		if seqs := stopSequences(stop); len(seqs) > 0 {
			cfg["stopSequences"] = seqs
		}
	}

	return cfg
}

func stopSequences(stop gjson.Result) []string {
	if stop.IsArray() {
		var out []string
		for _, s := range stop.Array() {
			out = append(out, s.String())
		}
		return out
	}
	if stop.String() == "" {
		return nil
	}
	return []string{stop.String()}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

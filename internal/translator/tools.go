package translator

import "github.com/tidwall/gjson"

// buildTools maps every `type: "function"` tool declaration into a single
// Gemini `functionDeclarations` entry; other tool types are dropped.
func buildTools(rawJSON []byte) []interface{} {
	tools := gjson.GetBytes(rawJSON, "tools")
	if !tools.Exists() || !tools.IsArray() {
		return nil
	}

	var decls []interface{}
	for _, t := range tools.Array() {
		if t.Get("type").String() != "function" {
			continue
		}
		fn := t.Get("function")
		decl := map[string]interface{}{
			"name": fn.Get("name").String(),
		}
		if desc := fn.Get("description"); desc.Exists() {
			decl["description"] = desc.String()
		}
		if params := fn.Get("parameters"); params.Exists() {
			decl["parameters"] = params.Value()
		}
		decls = append(decls, decl)
	}

	if len(decls) == 0 {
		return nil
	}
	return []interface{}{map[string]interface{}{"functionDeclarations": decls}}
}

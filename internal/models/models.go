// Package models holds the gateway's fixed OpenAI-to-upstream model
// mapping table.
package models

// table maps an inbound OpenAI-style model name to the upstream model it
// is actually served by. A name absent from the table passes through
// unchanged, which doubles as the "default" the mapping is defined over.
var table = map[string]string{
	"gpt-4o":        "gemini-2.5-pro",
	"gpt-4o-mini":   "gemini-2.5-flash",
	"gpt-4-turbo":   "gemini-2.5-pro",
	"gpt-3.5-turbo": "gemini-2.5-flash",
}

// ToUpstream maps an inbound model name to the upstream model name.
func ToUpstream(name string) string {
	if mapped, ok := table[name]; ok {
		return mapped
	}
	return name
}

var reverseTable = buildReverseTable()

func buildReverseTable() map[string]string {
	out := make(map[string]string, len(table))
	for inbound, upstream := range table {
		out[upstream] = inbound
	}
	return out
}

// ToInbound applies the reverse of the forward table to an upstream model
// name, used when stamping the `model` field of a translated response.
// A name absent from the reverse table is left unchanged.
func ToInbound(upstreamModel string) string {
	if mapped, ok := reverseTable[upstreamModel]; ok {
		return mapped
	}
	return upstreamModel
}

package translator

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestToUpstreamSystemMessageFolding(t *testing.T) {
	// Scenario S5.
	input := `{"messages":[{"role":"system","content":"S"},{"role":"user","content":"U"}]}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)

	text := gjson.GetBytes(body, "contents.0.parts.0.text").String()
	assert.Equal(t, "S\n\nU", text)
	assert.Equal(t, "user", gjson.GetBytes(body, "contents.0.role").String())
}

func TestToUpstreamSystemWithNoUserCreatesSyntheticOne(t *testing.T) {
	input := `{"messages":[{"role":"system","content":"only system"}]}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, 1, len(gjson.GetBytes(body, "contents").Array()))
	assert.Equal(t, "only system", gjson.GetBytes(body, "contents.0.parts.0.text").String())
}

func TestToUpstreamPreservesInRangeSamplingParams(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"hi"}],"temperature":0.7,"top_p":0.5,"max_tokens":128,"stop":["END"]}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, 0.7, gjson.GetBytes(body, "generationConfig.temperature").Float())
	assert.Equal(t, 0.5, gjson.GetBytes(body, "generationConfig.topP").Float())
	assert.EqualValues(t, 128, gjson.GetBytes(body, "generationConfig.maxOutputTokens").Int())
	assert.Equal(t, "END", gjson.GetBytes(body, "generationConfig.stopSequences.0").String())
}

func TestToUpstreamOmitsUnsuppliedFields(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"hi"}]}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)
	assert.False(t, gjson.GetBytes(body, "generationConfig.temperature").Exists())
	assert.False(t, gjson.GetBytes(body, "generationConfig.maxOutputTokens").Exists())
}

func TestToUpstreamClampsOutOfRangeSamplingParams(t *testing.T) {
	input := `{"messages":[{"role":"user","content":"hi"}],"temperature":5,"top_p":3}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, 2.0, gjson.GetBytes(body, "generationConfig.temperature").Float())
	assert.Equal(t, 1.0, gjson.GetBytes(body, "generationConfig.topP").Float())
}

func TestToUpstreamToolCallRoundTrip(t *testing.T) {
	input := `{"messages":[
		{"role":"user","content":"what's the weather"},
		{"role":"assistant","content":"","tool_calls":[{"id":"call_1","type":"function","function":{"name":"get_weather","arguments":"{\"city\":\"NYC\"}"}}]},
		{"role":"tool","name":"get_weather","tool_call_id":"call_1","content":"{\"temp\":70}"}
	]}`
	body, err := ToUpstream([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, "get_weather", gjson.GetBytes(body, "contents.1.parts.0.functionCall.name").String())
	assert.Equal(t, "function", gjson.GetBytes(body, "contents.2.role").String())
	assert.Equal(t, "get_weather", gjson.GetBytes(body, "contents.2.parts.0.functionResponse.name").String())
}

func TestFromUpstreamUnarySimpleText(t *testing.T) {
	upstream := `{"candidates":[{"content":{"parts":[{"text":"T"}]},"finishReason":"STOP"}]}`
	body, err := FromUpstreamUnary("gpt-4o", []byte(upstream))
	require.NoError(t, err)
	assert.Equal(t, "T", gjson.GetBytes(body, "choices.0.message.content").String())
	assert.Equal(t, "stop", gjson.GetBytes(body, "choices.0.finish_reason").String())
	assert.Equal(t, "chat.completion", gjson.GetBytes(body, "object").String())
}

func TestFromUpstreamUnaryNoCandidatesYieldsSyntheticChoice(t *testing.T) {
	upstream := `{"candidates":[]}`
	body, err := FromUpstreamUnary("gpt-4o", []byte(upstream))
	require.NoError(t, err)
	assert.Equal(t, "content_filter", gjson.GetBytes(body, "choices.0.finish_reason").String())
}

func TestFromUpstreamStreamConcatenatesDeltasAndTerminates(t *testing.T) {
	// Scenario S4.
	upstream := "data: " + `{"candidates":[{"content":{"parts":[{"text":"Hel"}]}}]}` + "\n\n" +
		"data: " + `{"candidates":[{"content":{"parts":[{"text":"lo"}]},"finishReason":"STOP"}]}` + "\n\n"

	out := FromUpstreamStream("gpt-4o", strings.NewReader(upstream))
	scanner := bufio.NewScanner(out)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var deltas []string
	var lastLine string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lastLine = line
		if line == "data: [DONE]" {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		deltas = append(deltas, gjson.Get(payload, "choices.0.delta.content").String())
	}
	require.NoError(t, scanner.Err())

	assert.Equal(t, []string{"Hel", "lo"}, deltas)
	assert.Equal(t, "data: [DONE]", lastLine)
}

func TestFromUpstreamStreamSkipsMalformedEvents(t *testing.T) {
	upstream := "data: not json\n\n" +
		"data: " + `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}` + "\n\n"

	out := FromUpstreamStream("gpt-4o", strings.NewReader(upstream))
	data, err := io.ReadAll(out)
	require.NoError(t, err)

	var okSeen bool
	for _, line := range strings.Split(string(data), "\n\n") {
		if !strings.HasPrefix(line, "data: ") || line == "data: [DONE]" {
			continue
		}
		payload := strings.TrimPrefix(line, "data: ")
		var chunk map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(payload), &chunk))
		okSeen = true
	}
	assert.True(t, okSeen)
}

// errAfterReader yields data once, then always fails, simulating an
// upstream connection that drops mid-stream.
type errAfterReader struct {
	data []byte
	sent bool
	err  error
}

func (r *errAfterReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func TestFromUpstreamStreamSurfacesUpstreamReadError(t *testing.T) {
	boom := errors.New("connection reset")
	src := &errAfterReader{data: []byte("data: " + `{"candidates":[{"content":{"parts":[{"text":"hi"}]}}]}` + "\n\n"), err: boom}

	out := FromUpstreamStream("gpt-4o", src)
	_, err := io.ReadAll(out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

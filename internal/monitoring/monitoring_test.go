package monitoring

import (
	"testing"

	"credpool/internal/credential"

	"github.com/stretchr/testify/assert"
)

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", StatusClass(200))
	assert.Equal(t, "4xx", StatusClass(404))
	assert.Equal(t, "5xx", StatusClass(502))
}

func TestBuildStatsReflectsRecordedCounters(t *testing.T) {
	reg := credential.NewRegistry()
	reg.Ensure("k1")

	before := BuildStats(reg)
	baseRequests := before.RequestsTotal

	RecordRequest("/v1/chat/completions", 200)
	RecordUpstreamCall("success")
	RecordCredentialTransition("TRIPPED")

	after := BuildStats(reg)
	assert.Equal(t, baseRequests+1, after.RequestsTotal)
	assert.Equal(t, int64(1), after.UpstreamCalls["success"])
	assert.Equal(t, int64(1), after.Transitions["TRIPPED"])
	assert.Len(t, after.Credentials, 1)
}

package orchestrator

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"credpool/internal/credential"
	"credpool/internal/errors"
	"credpool/internal/upstream"
)

const (
	probeTimeout    = 15 * time.Second
	probeBatchSize  = 10
	probeConcurrent = 10
	probeModel      = "gemini-2.5-flash"
)

var probeBody = []byte(`{"contents":[{"role":"user","parts":[{"text":"Hello"}]}]}`)

// Verdict is one credential's probe outcome, per §4.8's SSE event shape.
type Verdict struct {
	Key          string `json:"key"`
	Status       string `json:"status"`
	Error        string `json:"error,omitempty"`
	ResponseTime int64  `json:"responseTime"`
}

// Validate probes each of up to 50 credentials with a minimal
// generateContent call and streams verdicts to onVerdict as soon as each
// is known, processing in arrival-order batches of probeBatchSize with up
// to probeConcurrent probes in flight at once.
func (o *Orchestrator) Validate(ctx context.Context, creds []string, onVerdict func(Verdict)) {
	for start := 0; start < len(creds); start += probeBatchSize {
		end := start + probeBatchSize
		if end > len(creds) {
			end = len(creds)
		}
		o.validateBatch(ctx, creds[start:end], onVerdict)
	}
}

func (o *Orchestrator) validateBatch(ctx context.Context, batch []string, onVerdict func(Verdict)) {
	sem := make(chan struct{}, probeConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, id := range batch {
		wg.Add(1)
		sem <- struct{}{}
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()

			v := probeOne(ctx, o.Client, id)
			mu.Lock()
			onVerdict(v)
			mu.Unlock()
		}(id)
	}
	wg.Wait()
}

func probeOne(ctx context.Context, client *upstream.Client, id string) Verdict {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	start := time.Now()
	_, apiErr := client.Unary(probeCtx, probeModel, probeBody, id)
	elapsed := time.Since(start).Milliseconds()

	v := Verdict{Key: credential.Mask(id), ResponseTime: elapsed}
	if apiErr == nil {
		v.Status = "GOOD"
		return v
	}

	switch apiErr.Kind {
	case errors.KindTimeout, errors.KindNetwork:
		v.Status = "ERROR"
		v.Error = apiErr.Message
	default:
		v.Status = "BAD"
		v.Error = apiErr.Message
	}
	return v
}

// EncodeVerdictEvent renders one verdict as an SSE "data: ...\n\n" frame.
func EncodeVerdictEvent(v Verdict) []byte {
	body, _ := json.Marshal(v)
	var b strings.Builder
	b.WriteString("data: ")
	b.Write(body)
	b.WriteString("\n\n")
	return []byte(b.String())
}

// DoneEvent is the literal SSE terminator emitted once every verdict in a
// /verify call has been streamed.
const DoneEvent = "data: [DONE]\n\n"

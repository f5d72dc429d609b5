package orchestrator

import (
	"context"
	"io"
	"time"

	"credpool/internal/credential"
	"credpool/internal/errors"
	"credpool/internal/models"
	"credpool/internal/monitoring"
	"credpool/internal/translator"
	"credpool/internal/upstream"

	"github.com/tidwall/gjson"
)

// Orchestrator drives a single inbound chat request through credential
// selection, upstream invocation, and failover, per §4.7.
type Orchestrator struct {
	Registry  *credential.Registry
	Selector  *credential.Selector
	Client    *upstream.Client
	HealthCfg credential.HealthConfig
}

// New builds an Orchestrator wired to the given shared components.
func New(reg *credential.Registry, sel *credential.Selector, client *upstream.Client, cfg credential.HealthConfig) *Orchestrator {
	return &Orchestrator{Registry: reg, Selector: sel, Client: client, HealthCfg: cfg}
}

// Result carries either a buffered JSON response body or a live streaming
// body for the caller to copy to the client.
type Result struct {
	Stream       bool
	Buffered     []byte
	StreamReader io.Reader
}

// Handle validates, registers credentials, translates, and runs the
// selection/failover loop for one inbound chat-completions request.
func (o *Orchestrator) Handle(ctx context.Context, authHeader, googHeader string, rawBody []byte) (*Result, *errors.APIError) {
	if !gjson.ValidBytes(rawBody) || !gjson.GetBytes(rawBody, "messages").IsArray() || len(gjson.GetBytes(rawBody, "messages").Array()) == 0 {
		return nil, errors.ValidationErr("request body must be a JSON object with a non-empty messages array")
	}

	creds, apiErr := ExtractCredentials(authHeader, googHeader)
	if apiErr != nil {
		return nil, apiErr
	}
	for _, id := range creds {
		o.Registry.Ensure(id)
	}

	upstreamBody, err := translator.ToUpstream(rawBody)
	if err != nil {
		if ae, ok := err.(*errors.APIError); ok {
			return nil, ae
		}
		return nil, errors.FormatConversionErr(err.Error())
	}

	requestedModel := gjson.GetBytes(rawBody, "model").String()
	upstreamModel := models.ToUpstream(requestedModel)
	stream := gjson.GetBytes(rawBody, "stream").Bool()

	tried := make(map[string]bool, len(creds))
	var lastErr *errors.APIError

	for attempt := 0; attempt < len(creds); attempt++ {
		id, selErr := o.Selector.Select()
		if selErr != nil {
			return nil, errors.NoCredentialAvailable()
		}
		if tried[id] {
			// Selector handed back a credential already attempted this
			// request (the inbound set can be smaller than the registry);
			// release its in-flight slot and stop rather than loop forever.
			o.Registry.ReleaseInFlight(id)
			break
		}
		tried[id] = true

		if stream {
			callStart := time.Now()
			body, streamErr := o.Client.Stream(ctx, upstreamModel, upstreamBody, id)
			monitoring.RecordUpstreamDuration(time.Since(callStart))
			if streamErr != nil {
				o.recordFailure(id, streamErr)
				lastErr = streamErr
				if attempt+1 < len(creds) && streamErr.IsFailoverEligible() {
					continue
				}
				return nil, streamErr
			}
			// Headers are about to flow to the client: no more failover.
			// The credential's success/failure is not decided yet, though:
			// it depends on whether the body actually reaches the client,
			// so that outcome is recorded by StreamOutcome.Finish once the
			// handler is done copying, not here.
			downstream := translator.FromUpstreamStream(requestedModel, body)
			outcome := newStreamOutcome(downstream, body, o.Registry, o.HealthCfg, id)
			return &Result{Stream: true, StreamReader: outcome}, nil
		}

		callStart := time.Now()
		respBody, unaryErr := o.Client.Unary(ctx, upstreamModel, upstreamBody, id)
		monitoring.RecordUpstreamDuration(time.Since(callStart))
		if unaryErr != nil {
			o.recordFailure(id, unaryErr)
			lastErr = unaryErr
			if attempt+1 < len(creds) && unaryErr.IsFailoverEligible() {
				continue
			}
			return nil, unaryErr
		}

		o.Registry.Success(id, o.HealthCfg)
		monitoring.RecordUpstreamCall("success")
		downstream, convErr := translator.FromUpstreamUnary(requestedModel, respBody)
		if convErr != nil {
			return nil, errors.FormatConversionErr(convErr.Error())
		}
		return &Result{Buffered: downstream}, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, errors.ServiceUnavailableErr("exhausted failover attempts without a successful upstream call")
}

func (o *Orchestrator) recordFailure(id string, apiErr *errors.APIError) {
	toState, _ := o.Registry.Failure(id, o.HealthCfg)
	monitoring.RecordUpstreamCall("failure")
	if toState == credential.Tripped {
		monitoring.RecordCredentialTransition(string(credential.Tripped))
	}
}

// StreamOutcome wraps a translated SSE stream so the credential it came
// from is only marked successful once the stream actually reaches the
// client, and marked a failure if the copy ends any other way (an
// upstream read error or the client disconnecting mid-stream), per
// §5's cancellation handling.
type StreamOutcome struct {
	r    io.Reader
	body io.Closer
	reg  *credential.Registry
	cfg  credential.HealthConfig
	id   string
	done bool
}

func newStreamOutcome(r io.Reader, body io.Closer, reg *credential.Registry, cfg credential.HealthConfig, id string) *StreamOutcome {
	return &StreamOutcome{r: r, body: body, reg: reg, cfg: cfg, id: id}
}

func (s *StreamOutcome) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

// Finish records the stream's outcome against its credential and releases
// the upstream body. Call it exactly once, after the handler is done
// copying to the client: err nil means the copy completed cleanly;
// anything else, including a write failure from a disconnected client,
// counts as a failure rather than the success the caller might assume
// from the fact that headers were already sent.
func (s *StreamOutcome) Finish(err error) {
	if s.done {
		return
	}
	s.done = true
	if err == nil {
		s.reg.Success(s.id, s.cfg)
		monitoring.RecordUpstreamCall("success")
	} else {
		toState, _ := s.reg.Failure(s.id, s.cfg)
		monitoring.RecordUpstreamCall("failure")
		if toState == credential.Tripped {
			monitoring.RecordCredentialTransition(string(credential.Tripped))
		}
	}
	s.body.Close()
}

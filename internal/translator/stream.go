package translator

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"credpool/internal/constants"
	"credpool/internal/models"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FromUpstreamStream translates raw upstream SSE bytes into downstream
// OpenAI chat.completion.chunk SSE bytes, per §4.6 and scenario S4. It
// emits exactly one downstream event per upstream event and terminates
// with "data: [DONE]\n\n" once the upstream stream ends cleanly. A parse
// error on an individual upstream event is logged and that event is
// skipped; the stream otherwise continues. If the upstream read itself
// fails partway through (a dropped connection, a cancelled context), the
// returned reader surfaces that error instead of a clean [DONE], so the
// caller can tell a finished stream from a broken one.
func FromUpstreamStream(requestedModel string, upstream io.Reader) io.Reader {
	pr, pw := io.Pipe()

	go func() {
		scanner := bufio.NewScanner(upstream)
		scanner.Buffer(make([]byte, constants.SSEScannerInitialBufferSize), constants.SSEScannerMaxBufferSize)

		id := chatCompletionID()
		model := models.ToInbound(requestedModel)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			if !bytes.HasPrefix(line, []byte("data: ")) {
				continue
			}
			payload := bytes.TrimPrefix(line, []byte("data: "))
			if bytes.Equal(payload, []byte("[DONE]")) {
				break
			}

			chunk, err := translateStreamEvent(id, model, payload)
			if err != nil {
				log.WithError(err).Debug("skipping malformed upstream stream event")
				continue
			}

			if _, err := pw.Write(chunk); err != nil {
				pw.CloseWithError(err)
				return
			}
		}

		if err := scanner.Err(); err != nil {
			pw.CloseWithError(err)
			return
		}

		pw.Write([]byte("data: [DONE]\n\n"))
		pw.Close()
	}()

	return pr
}

func translateStreamEvent(id, model string, payload []byte) ([]byte, error) {
	if !gjson.ValidBytes(payload) {
		return nil, errInvalidStreamEvent
	}
	result := gjson.ParseBytes(payload)
	candidates := result.Get("candidates")
	if !candidates.Exists() || len(candidates.Array()) == 0 {
		return nil, errInvalidStreamEvent
	}
	candidate := candidates.Array()[0]

	var text string
	for _, part := range candidate.Get("content.parts").Array() {
		text += part.Get("text").String()
	}

	out := `{}`
	out, _ = sjson.Set(out, "id", id)
	out, _ = sjson.Set(out, "object", "chat.completion.chunk")
	out, _ = sjson.Set(out, "created", time.Now().Unix())
	out, _ = sjson.Set(out, "model", model)
	out, _ = sjson.Set(out, "choices.0.index", 0)
	out, _ = sjson.Set(out, "choices.0.delta.content", text)
	out, err := sjson.Set(out, "choices.0.finish_reason", mapFinishReason(candidate.Get("finishReason").String()))
	if err != nil {
		return nil, err
	}

	return append(append([]byte("data: "), []byte(out)...), []byte("\n\n")...), nil
}

type streamEventError string

func (e streamEventError) Error() string { return string(e) }

const errInvalidStreamEvent = streamEventError("invalid upstream stream event")

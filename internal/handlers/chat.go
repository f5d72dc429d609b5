package handlers

import (
	"io"

	"credpool/internal/errors"
	"credpool/internal/logging"
	"credpool/internal/middleware"
	"credpool/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// ChatCompletions handles POST /chat/completions and /v1/chat/completions.
// It delegates to the orchestrator and writes either a buffered JSON
// response or an SSE pass-through stream, per §4.7.
func ChatCompletions(o *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logging.ForRequest(c.GetString(middleware.RequestIDKey))

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.WithError(err).Warn("could not read chat completion request body")
			writeAPIError(c, errors.ValidationErr("could not read request body"))
			return
		}

		res, apiErr := o.Handle(c.Request.Context(), c.GetHeader("Authorization"), c.GetHeader("x-goog-api-key"), body)
		if apiErr != nil {
			log.WithError(apiErr).Warn("chat completion request failed")
			writeAPIError(c, apiErr)
			return
		}

		if !res.Stream {
			c.Data(200, "application/json", res.Buffered)
			return
		}

		fl := prepareSSE(c)
		copyErr := copySSE(c, res.StreamReader, fl)
		if outcome, ok := res.StreamReader.(*orchestrator.StreamOutcome); ok {
			outcome.Finish(copyErr)
		}
		if copyErr != nil {
			log.WithError(copyErr).Debug("chat completion stream ended early")
		}
	}
}

// writeAPIError renders apiErr as the uniform error JSON document, per §6.
func writeAPIError(c *gin.Context, apiErr *errors.APIError) {
	body, err := apiErr.ToJSON(errors.FormatOpenAI)
	if err != nil {
		c.AbortWithStatus(500)
		return
	}
	c.Data(apiErr.HTTPStatus, "application/json", body)
}

package handlers

import (
	"io"

	"credpool/internal/errors"
	"credpool/internal/logging"
	"credpool/internal/middleware"
	"credpool/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// Verify handles POST /verify: probes each credential named in the
// request header and streams one SSE verdict per credential, per §4.8.
func Verify(o *orchestrator.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logging.ForRequest(c.GetString(middleware.RequestIDKey))

		creds, authErr := extractVerifyCredentials(c)
		if authErr != nil {
			log.WithError(authErr).Warn("verify request rejected")
			writeAPIError(c, authErr)
			return
		}
		if len(creds) > 50 {
			creds = creds[:50]
		}
		log.WithField("credential_count", len(creds)).Debug("verifying credentials")

		fl := prepareSSE(c)
		o.Validate(c.Request.Context(), creds, func(v orchestrator.Verdict) {
			c.Writer.Write(orchestrator.EncodeVerdictEvent(v))
			if fl != nil {
				fl.Flush()
			}
		})
		io.WriteString(c.Writer, orchestrator.DoneEvent)
		if fl != nil {
			fl.Flush()
		}
	}
}

func extractVerifyCredentials(c *gin.Context) ([]string, *errors.APIError) {
	creds, err := orchestrator.ExtractCredentials(c.GetHeader("Authorization"), c.GetHeader("x-goog-api-key"))
	if err != nil {
		return nil, err
	}
	return creds, nil
}

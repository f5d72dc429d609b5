// Package handlers implements the gateway's gin route handlers: chat
// completions (unary and streaming), credential verification, and the
// informational root/health/stats endpoints.
package handlers

import (
	"bufio"
	"io"
	"net/http"

	"credpool/internal/constants"

	"github.com/gin-gonic/gin"
)

// prepareSSE sets the standard SSE response headers and returns a flusher.
func prepareSSE(c *gin.Context) http.Flusher {
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	fl, _ := c.Writer.(http.Flusher)
	return fl
}

// copySSE copies raw SSE bytes from src to the response as they arrive,
// flushing after every line so the client sees each event immediately. It
// returns nil once src is drained cleanly, or the error that ended the
// copy early: either a read failure from src or a write failure against
// the client (the client having disconnected mid-stream).
func copySSE(c *gin.Context, src io.Reader, fl http.Flusher) error {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, constants.SSEScannerInitialBufferSize), constants.SSEScannerMaxBufferSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if _, err := c.Writer.Write(line); err != nil {
			return err
		}
		if _, err := c.Writer.Write([]byte("\n")); err != nil {
			return err
		}
		if fl != nil {
			fl.Flush()
		}
	}
	return scanner.Err()
}

package upstream

import (
	"context"
	"io"

	"credpool/internal/errors"
)

// Stream performs a streamGenerateContent call and returns the raw upstream
// SSE byte stream. Unlike Unary, it never retries internally: once the
// connection is established and headers are received, a mid-stream failure
// is surfaced to the caller as a read error on the returned ReadCloser, per
// §4.5 ("the streaming call does NOT retry internally"). The same 30s
// overall budget applies to the whole call, per §4.5; its expiry cancels
// the underlying connection and the subsequent read fails.
func (c *Client) Stream(ctx context.Context, model string, body []byte, credentialID string) (io.ReadCloser, *errors.APIError) {
	url := buildURL(c.cfg, model, "streamGenerateContent")

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.UpstreamTimeout)

	req, err := newRequest(callCtx, url, body, credentialID)
	if err != nil {
		cancel()
		return nil, errors.MapNetworkError(err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		cancel()
		return nil, errors.MapNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer cancel()
		defer resp.Body.Close()
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if readErr != nil {
			return nil, errors.MapNetworkError(readErr)
		}
		return nil, errors.MapHTTPError(resp.StatusCode, respBody)
	}

	return &cancelOnCloseBody{ReadCloser: resp.Body, cancel: cancel}, nil
}

// cancelOnCloseBody releases the call's timeout context when the stream
// body is closed, whether that happens because the reader finished
// normally or because the caller gave up early.
type cancelOnCloseBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelOnCloseBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

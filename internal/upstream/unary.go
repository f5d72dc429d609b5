package upstream

import (
	"context"
	"io"
	"time"

	"credpool/internal/errors"

	log "github.com/sirupsen/logrus"
)

// Unary performs a fully-buffered generateContent call, retrying up to
// cfg.RetryCount times with linear backoff retry_delay*(attempt+1) when the
// failure is Timeout, Network, or a retryable upstream HTTP status, per
// §4.5. The last error encountered is returned once attempts are exhausted.
func (c *Client) Unary(ctx context.Context, model string, body []byte, credentialID string) ([]byte, *errors.APIError) {
	url := buildURL(c.cfg, model, "generateContent")

	var lastErr *errors.APIError
	for attempt := 0; attempt <= c.cfg.RetryCount; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.cfg.RetryDelay
			select {
			case <-ctx.Done():
				return nil, errors.TimeoutErr("context canceled during retry backoff")
			case <-time.After(delay):
			}
		}

		respBody, apiErr := c.doUnaryAttempt(ctx, url, body, credentialID)
		if apiErr == nil {
			return respBody, nil
		}
		lastErr = apiErr

		if !isRetryable(apiErr) {
			return nil, apiErr
		}
		log.WithFields(log.Fields{"attempt": attempt, "kind": apiErr.Kind}).
			Debug("retrying upstream unary call")
	}

	return nil, lastErr
}

func (c *Client) doUnaryAttempt(ctx context.Context, url string, body []byte, credentialID string) ([]byte, *errors.APIError) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.UpstreamTimeout)
	defer cancel()

	req, err := newRequest(callCtx, url, body, credentialID)
	if err != nil {
		return nil, errors.MapNetworkError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.MapNetworkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.MapNetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.MapHTTPError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// isRetryable reports whether an attempt that failed with apiErr should be
// retried under the unary retry policy: Timeout, Network, or an upstream
// status outside the non-retryable set.
func isRetryable(apiErr *errors.APIError) bool {
	switch apiErr.Kind {
	case errors.KindTimeout, errors.KindNetwork, errors.KindRateLimited:
		return true
	case errors.KindUpstreamStatus:
		return errors.IsRetryableUpstreamStatus(apiErr.HTTPStatus)
	default:
		return false
	}
}

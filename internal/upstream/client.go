// Package upstream implements C5, the outbound client that speaks to the
// Google Generative Language API on behalf of the gateway. It exposes a
// unary call and a streaming call, each taking a model name, a translated
// request body, and a credential, per §4.5.
package upstream

import (
	"bytes"
	"context"
	"net"
	"net/http"

	"credpool/internal/config"
	"credpool/internal/constants"
)

// Client issues generateContent / streamGenerateContent calls against a
// single upstream base URL and API version.
type Client struct {
	cfg        *config.Config
	httpClient *http.Client
}

// New builds a Client with a transport tuned for many short-lived upstream
// connections, mirroring the dial/TLS/response-header timeout shape used
// elsewhere in this codebase's HTTP clients.
func New(cfg *config.Config) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: constants.DefaultDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   constants.DefaultTLSHandshakeTimeout,
		ResponseHeaderTimeout: constants.DefaultResponseHeaderTimeout,
		ExpectContinueTimeout: constants.DefaultExpectContinueTimeout,
		MaxIdleConns:          constants.DefaultMaxIdleConns,
		MaxIdleConnsPerHost:   constants.DefaultMaxIdleConnsPerHost,
		IdleConnTimeout:       constants.DefaultIdleConnTimeout,
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
		},
	}
}

// NewWithHTTPClient builds a Client around a caller-supplied http.Client,
// bypassing the tuned transport New constructs. Intended for tests that
// need to point at an httptest server with its own TLS trust.
func NewWithHTTPClient(cfg *config.Config, httpClient *http.Client) *Client {
	return &Client{cfg: cfg, httpClient: httpClient}
}

// buildURL composes https://{base}/{apiVersion}/models/{model}:{method},
// adding alt=sse for the streaming method, per §4.5.
func buildURL(cfg *config.Config, model, method string) string {
	u := "https://" + cfg.UpstreamBaseURL + "/" + cfg.UpstreamAPIVer + "/models/" + model + ":" + method
	if method == "streamGenerateContent" {
		u += "?alt=sse"
	}
	return u
}

func newRequest(ctx context.Context, url string, body []byte, credentialID string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", credentialID)
	return req, nil
}

// Package constants collects fixed values shared across the gateway that
// are not sensibly expressed as configuration knobs.
package constants

import "time"

const (
	// SSEScannerInitialBufferSize is the starting buffer for SSE line scanners.
	SSEScannerInitialBufferSize = 64 * 1024
	// SSEScannerMaxBufferSize bounds how large a single SSE line may grow.
	SSEScannerMaxBufferSize = 4 * 1024 * 1024
)

const (
	// DefaultTopK mirrors the upstream's own default and is only sent
	// when neither the caller nor the translator has an opinion.
	DefaultTopK = 64
	// MaxOutputTokens bounds max_tokens translation to a sane ceiling.
	MaxOutputTokens = 65535
)

const (
	DefaultDialTimeout           = 10 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultResponseHeaderTimeout = 60 * time.Second
	DefaultExpectContinueTimeout = 2 * time.Second

	DefaultMaxIdleConns        = 512
	DefaultMaxIdleConnsPerHost = 256
	DefaultIdleConnTimeout     = 90 * time.Second
)

const (
	// CredentialIdleTTL is how long a credential record survives in the
	// registry after its last observed request before garbage collection.
	CredentialIdleTTL = 24 * time.Hour
	// SweepInterval is how often the recovery sweeper runs.
	SweepInterval = 60 * time.Second
)

const (
	// ServerShutdownTimeout bounds how long graceful shutdown waits for
	// in-flight requests to finish before the process exits anyway.
	ServerShutdownTimeout = 10 * time.Second
)

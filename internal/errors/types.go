// Package errors defines the gateway's typed error taxonomy and its
// mapping to HTTP status codes and wire-format error envelopes.
package errors

// Kind names one of the error categories from the error handling design.
type Kind string

const (
	KindValidation            Kind = "ValidationError"
	KindAuthMissing           Kind = "AuthMissing"
	KindNotFound              Kind = "NotFound"
	KindMethodNotAllowed      Kind = "MethodNotAllowed"
	KindRateLimited           Kind = "RateLimited"
	KindNoCredentialAvailable Kind = "NoCredentialAvailable"
	KindServiceUnavailable    Kind = "ServiceUnavailable"
	KindUpstreamStatus        Kind = "UpstreamStatus"
	KindTimeout               Kind = "Timeout"
	KindNetwork               Kind = "Network"
	KindParse                 Kind = "Parse"
	KindFormatConversion      Kind = "FormatConversion"
	KindCredentialRejected    Kind = "CredentialRejected"
	KindAdminAuth             Kind = "AdminAuth"
)

// Format names a wire envelope an APIError can be rendered as.
type Format string

const (
	FormatOpenAI Format = "openai"
	FormatGemini Format = "gemini"
)

// APIError is the gateway's internal representation of any error that can
// reach an HTTP response: it carries both the classification used by the
// orchestrator's retry/failover logic and the fields needed to render
// either wire envelope.
type APIError struct {
	Kind       Kind
	HTTPStatus int
	Code       string
	Type       string
	Message    string
	Details    map[string]interface{}

	// UpstreamCode is the raw upstream HTTP status, set only for
	// KindUpstreamStatus and KindCredentialRejected.
	UpstreamCode int
}

func (e *APIError) Error() string {
	return e.Message
}

// New builds an APIError of the given kind.
func New(kind Kind, httpStatus int, code, typ, message string) *APIError {
	return &APIError{Kind: kind, HTTPStatus: httpStatus, Code: code, Type: typ, Message: message}
}

// WithDetails attaches structured detail fields and returns e for chaining.
func (e *APIError) WithDetails(details map[string]interface{}) *APIError {
	e.Details = details
	return e
}

// openAIEnvelope mirrors the OpenAI-style error envelope from §6.
type openAIEnvelope struct {
	Error struct {
		Message string                 `json:"message"`
		Type    string                 `json:"type"`
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details,omitempty"`
	} `json:"error"`
}

// geminiEnvelope mirrors the gRPC-status-flavored error shape native
// Gemini passthrough callers expect.
type geminiEnvelope struct {
	Error struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Status  string                 `json:"status"`
		Details map[string]interface{} `json:"details,omitempty"`
	} `json:"error"`
}

package errors

import "encoding/json"

// ToJSON renders e in the requested wire format.
func (e *APIError) ToJSON(format Format) ([]byte, error) {
	switch format {
	case FormatGemini:
		return e.toGeminiJSON()
	default:
		return e.toOpenAIJSON()
	}
}

func (e *APIError) toOpenAIJSON() ([]byte, error) {
	env := openAIEnvelope{}
	env.Error.Message = e.Message
	env.Error.Type = e.Type
	env.Error.Code = e.Code
	env.Error.Details = e.Details
	return json.Marshal(env)
}

func (e *APIError) toGeminiJSON() ([]byte, error) {
	env := geminiEnvelope{}
	env.Error.Code = e.HTTPStatus
	env.Error.Message = e.Message
	env.Error.Status = e.toGeminiStatus()
	env.Error.Details = e.Details
	return json.Marshal(env)
}

func (e *APIError) toGeminiStatus() string {
	switch e.HTTPStatus {
	case 400:
		return "INVALID_ARGUMENT"
	case 401:
		return "UNAUTHENTICATED"
	case 403:
		return "PERMISSION_DENIED"
	case 404:
		return "NOT_FOUND"
	case 405:
		return "INVALID_ARGUMENT"
	case 429:
		return "RESOURCE_EXHAUSTED"
	case 500:
		return "INTERNAL"
	case 502:
		return "UNAVAILABLE"
	case 503:
		return "UNAVAILABLE"
	case 504:
		return "DEADLINE_EXCEEDED"
	default:
		return "UNKNOWN"
	}
}

// IsFailoverEligible reports whether the orchestrator may retry the same
// inbound request against a different credential after this error, per §4.7.
func (e *APIError) IsFailoverEligible() bool {
	if e.Kind == KindCredentialRejected || e.Kind == KindTimeout {
		return true
	}
	return e.HTTPStatus >= 500 && e.HTTPStatus < 600
}

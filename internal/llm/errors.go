package llm

import "fmt"

// ErrorKind is the closed set of provider failure classes. Every provider
// error is mapped onto exactly one kind before it leaves this package, so
// retry decisions and taxonomy mapping are exhaustive switches instead of
// string matching on error text.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindNotFound
	KindAccessDenied
	KindThrottled
	KindQuotaExceeded
	KindServiceUnavailable
	KindInternal
	KindConflict
	KindTimeout
	KindBusy
)

// String returns the stable name of the kind, used in logs and events.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindAccessDenied:
		return "access_denied"
	case KindThrottled:
		return "throttled"
	case KindQuotaExceeded:
		return "quota_exceeded"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindInternal:
		return "internal"
	case KindConflict:
		return "conflict"
	case KindTimeout:
		return "timeout"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Retryable reports whether a failure of this kind is transient enough to
// retry with backoff. Validation, not-found, access and quota failures will
// fail identically on retry and propagate immediately.
func (k ErrorKind) Retryable() bool {
	switch k {
	case KindThrottled, KindServiceUnavailable, KindInternal, KindConflict, KindTimeout, KindBusy:
		return true
	default:
		return false
	}
}

// ProviderError is a fully-constructed, immutable provider failure: kind,
// HTTP-equivalent status, and a message safe to log. The upstream response
// body never travels beyond this value.
type ProviderError struct {
	Kind       ErrorKind
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (%s, status %d): %s", e.Kind, e.StatusCode, e.Message)
}

// kindForCode maps a provider error code string to a kind. Unrecognized
// codes fall back to status-based classification.
func kindForCode(code string) (ErrorKind, bool) {
	switch code {
	case "validation_error":
		return KindValidation, true
	case "not_found", "knowledge_base_not_found", "model_not_found":
		return KindNotFound, true
	case "access_denied":
		return KindAccessDenied, true
	case "throttled", "rate_limited":
		return KindThrottled, true
	case "quota_exceeded":
		return KindQuotaExceeded, true
	case "service_unavailable":
		return KindServiceUnavailable, true
	case "internal_error":
		return KindInternal, true
	case "conflict":
		return KindConflict, true
	case "timeout":
		return KindTimeout, true
	case "busy", "ingestion_in_progress":
		return KindBusy, true
	default:
		return KindUnknown, false
	}
}

// kindForStatus classifies by HTTP status when no recognizable error code
// was present.
func kindForStatus(status int) ErrorKind {
	switch status {
	case 400, 422:
		return KindValidation
	case 401, 403:
		return KindAccessDenied
	case 402:
		return KindQuotaExceeded
	case 404:
		return KindNotFound
	case 408, 504:
		return KindTimeout
	case 409:
		return KindConflict
	case 429:
		return KindThrottled
	case 500, 502:
		return KindInternal
	case 503:
		return KindServiceUnavailable
	default:
		return KindUnknown
	}
}

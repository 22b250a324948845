package errors

import "errors"

// This package defines the centralized error taxonomy for the application.
// Services return these sentinel errors (usually wrapped with fmt.Errorf and
// %w) instead of transport-specific codes; the API layer maps them to HTTP
// statuses with errors.Is. Provider-specific failures are normalized to this
// set inside the llm package and never leak upstream detail to callers.

var (
	// ErrValidation signifies malformed or oversized input. Not retryable;
	// the caller must fix the request. Mapped to 400.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound signifies that a requested resource (conversation,
	// message) could not be located. Mapped to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrKnowledgeBaseNotFound signifies the backing knowledge index is
	// missing or misconfigured. Not retryable; operator action required.
	// Mapped to 404.
	ErrKnowledgeBaseNotFound = errors.New("knowledge base not found")

	// ErrRateLimited signifies upstream throttling after the client's own
	// retry budget is exhausted. Retryable by the caller after a delay.
	// Mapped to 429.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQuotaExceeded signifies a hard service quota. Not retryable;
	// operator action required. Mapped to 402.
	ErrQuotaExceeded = errors.New("service quota exceeded")

	// ErrAuthorization signifies a credentials or permissions problem with
	// the upstream provider. Not retryable. Mapped to 403.
	ErrAuthorization = errors.New("authorization failed")

	// ErrServiceBusy signifies the knowledge base is ingesting or otherwise
	// temporarily busy. Retryable. Mapped to 503.
	ErrServiceBusy = errors.New("service busy")

	// ErrInternal is the catch-all for unexpected failures. Treated as not
	// retryable; full detail is logged server-side only. Mapped to 500.
	ErrInternal = errors.New("internal error")
)

// Retryable reports whether the caller may reasonably retry the operation
// after a delay. Everything outside this set requires a changed request or
// operator action.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServiceBusy)
}

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// httpProvider talks to the retrieve-and-generate service over HTTP. Network
// failures and non-200 responses surface as *ProviderError so the Client can
// classify them without inspecting error text.
type httpProvider struct {
	client *http.Client
	url    string
	apiKey string
}

// NewHTTPProvider creates a Provider backed by the HTTP generation API at
// the given base URL.
func NewHTTPProvider(url, apiKey string) Provider {
	return &httpProvider{
		client: &http.Client{Timeout: 120 * time.Second},
		url:    url,
		apiKey: apiKey,
	}
}

// providerErrorBody is the JSON error envelope the generation API returns on
// failure. Code is optional and takes precedence over the HTTP status when
// recognized.
type providerErrorBody struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

func (p *httpProvider) RetrieveAndGenerate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url+"/v1/retrieve-generate", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("could not create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: "failed to read response body"}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyResponse(resp.StatusCode, respBody)
	}

	var genResp GenerateResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return nil, &ProviderError{Kind: KindUnknown, StatusCode: resp.StatusCode, Message: "malformed provider response"}
	}
	return &genResp, nil
}

// classifyResponse builds a ProviderError from a non-200 response. The body
// is parsed for an error code but its raw content is never carried forward.
func classifyResponse(status int, body []byte) *ProviderError {
	var envelope providerErrorBody
	_ = json.Unmarshal(body, &envelope)

	kind, ok := kindForCode(envelope.Code)
	if !ok {
		kind = kindForStatus(status)
	}

	return &ProviderError{
		Kind:       kind,
		StatusCode: status,
		Message:    fmt.Sprintf("generation request failed (%s)", kind),
	}
}

// classifyTransportError maps connection-level failures. Timeouts and reset
// connections are retryable; context cancellation is passed through so the
// caller sees its own deadline, not a provider error.
func classifyTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ProviderError{Kind: KindTimeout, StatusCode: http.StatusGatewayTimeout, Message: "provider request timed out"}
	}

	return &ProviderError{Kind: KindServiceUnavailable, StatusCode: http.StatusServiceUnavailable, Message: "provider unreachable"}
}

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Encoding selects how the HTTP transport serialises payloads.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingForm Encoding = "form"
)

const maxErrorBody = 64 << 10

// HTTP posts payloads to a submission endpoint.
type HTTP struct {
	endpoint string
	client   *http.Client
	encoding Encoding
	headers  http.Header
	logger   *zap.Logger
}

// HTTPOption configures the HTTP transport.
type HTTPOption func(*HTTP)

// WithHTTPClient overrides the client used for requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			h.client = client
		}
	}
}

// WithEncoding selects JSON (default) or form encoded bodies.
func WithEncoding(enc Encoding) HTTPOption {
	return func(h *HTTP) {
		if enc != "" {
			h.encoding = enc
		}
	}
}

// WithHeader adds a request header, for example an API key.
func WithHeader(key, value string) HTTPOption {
	return func(h *HTTP) {
		if strings.TrimSpace(key) != "" {
			h.headers.Add(key, value)
		}
	}
}

// WithHTTPLogger sets the transport logger.
func WithHTTPLogger(logger *zap.Logger) HTTPOption {
	return func(h *HTTP) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHTTP constructs an HTTP transport targeting endpoint.
func NewHTTP(endpoint string, options ...HTTPOption) (*HTTP, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("%w: http endpoint is required", ErrNotConfigured)
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("transport: invalid http endpoint %q: %w", endpoint, err)
	}

	h := &HTTP{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		encoding: EncodingJSON,
		headers:  make(http.Header),
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Send posts the payload once. Non-2xx responses become *SubmissionError,
// carrying any field errors the endpoint reported.
func (h *HTTP) Send(ctx context.Context, payload Payload) error {
	body, contentType, err := h.encode(payload)
	if err != nil {
		return &SubmissionError{Transport: "http", Reason: "encode payload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return &SubmissionError{Transport: "http", Reason: "build request", Err: err}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	for key, values := range h.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return AsSubmissionError("http", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		h.logger.Debug("submission accepted", zap.String("endpoint", h.endpoint), zap.Int("status", resp.StatusCode))
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	subErr := &SubmissionError{
		Transport:   "http",
		Reason:      "endpoint rejected submission",
		StatusCode:  resp.StatusCode,
		FieldErrors: decodeFieldErrors(raw),
	}
	h.logger.Warn("submission rejected",
		zap.String("endpoint", h.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("field_errors", len(subErr.FieldErrors)))
	return subErr
}

func (h *HTTP) encode(payload Payload) ([]byte, string, error) {
	if h.encoding == EncodingForm {
		values := make(url.Values, len(payload))
		for key, value := range payload {
			values.Set(key, value)
		}
		return []byte(values.Encode()), "application/x-www-form-urlencoded", nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, "", err
	}
	return data, "application/json", nil
}

// decodeFieldErrors accepts {"errors": {"field": ["msg"]}} as well as
// {"errors": {"field": "msg"}} bodies. Anything else yields nil.
func decodeFieldErrors(raw []byte) map[string][]string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var envelope struct {
		Errors map[string]json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil || len(envelope.Errors) == 0 {
		return nil
	}

	out := make(map[string][]string, len(envelope.Errors))
	for field, msg := range envelope.Errors {
		var list []string
		if err := json.Unmarshal(msg, &list); err == nil {
			out[field] = append(out[field], list...)
			continue
		}
		var single string
		if err := json.Unmarshal(msg, &single); err == nil {
			out[field] = append(out[field], single)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Package genclient talks to the remote inference service. One call is one
// request/response cycle; retries, sequencing and history bookkeeping belong
// to the batch orchestrator.
package genclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"product-studio/internal/domain"
	"product-studio/internal/infra"
	"product-studio/internal/media"
	"product-studio/internal/request"
)

// Kind classifies a failed call. Transport errors never reached the service,
// status errors are non-2xx responses, application errors are well-formed
// responses that report success=false.
type Kind string

const (
	KindTransport   Kind = "transport"
	KindStatus      Kind = "status"
	KindApplication Kind = "application"
)

// Error is a normalized generation failure.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("genclient: status %d: %s", e.Status, e.Message)
	case KindApplication:
		return "genclient: service reported failure: " + e.Message
	default:
		return "genclient: request failed: " + e.Message
	}
}

func (e *Error) Unwrap() []error {
	if e.cause != nil {
		return []error{domain.ErrProviderFailure, e.cause}
	}
	return []error{domain.ErrProviderFailure}
}

// Result is a successful generation, with the payload already wrapped into a
// data URI ready for the history.
type Result struct {
	Payload string
	MIME    string
}

// Options configures the client.
type Options struct {
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client posts composed generation requests to the inference service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// apiResponse is the wire shape shared by all generation endpoints. Failure
// detail arrives in whichever of message/detail/error the service filled in.
type apiResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image"`
	Video   string `json:"video"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
	Error   string `json:"error"`
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 5 * time.Minute
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	logger := opts.Logger
	if logger == nil {
		discard := infra.Logger(zerolog.New(io.Discard))
		logger = &discard
	}
	return &Client{baseURL: baseURL, httpClient: httpClient, logger: logger}
}

// Generate executes one composed request and normalizes the result.
func (c *Client) Generate(ctx context.Context, gen request.Generation) (*Result, error) {
	body, err := json.Marshal(gen.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "encode request", cause: err}
	}
	endpoint := c.baseURL + gen.Endpoint
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "build request", cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: err.Error(), cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: "read response", cause: err}
	}

	if resp.StatusCode >= 300 {
		return nil, &Error{
			Kind:    KindStatus,
			Status:  resp.StatusCode,
			Message: failureDetail(raw),
		}
	}

	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &Error{Kind: KindApplication, Message: "undecodable response body", cause: err}
	}
	if !decoded.Success {
		return nil, &Error{Kind: KindApplication, Message: decoded.failureMessage()}
	}

	result, err := decoded.result(gen.Endpoint)
	if err != nil {
		return nil, err
	}
	c.logger.Debug().
		Str("endpoint", gen.Endpoint).
		Str("label", gen.Label).
		Dur("elapsed", time.Since(started)).
		Msg("generation completed")
	return result, nil
}

// result wraps the returned base64 into a data URI. Video endpoints return
// video content; everything else is treated as a PNG image.
func (r apiResponse) result(endpoint string) (*Result, error) {
	if endpoint == request.EndpointVideo {
		if r.Video == "" {
			return nil, &Error{Kind: KindApplication, Message: "response carried no video"}
		}
		return &Result{Payload: wrapPayload(r.Video, "video/mp4"), MIME: "video/mp4"}, nil
	}
	if r.Image == "" {
		return nil, &Error{Kind: KindApplication, Message: "response carried no image"}
	}
	return &Result{Payload: wrapPayload(r.Image, "image/png"), MIME: "image/png"}, nil
}

func (r apiResponse) failureMessage() string {
	for _, m := range []string{r.Message, r.Detail, r.Error} {
		if m != "" {
			return m
		}
	}
	return "no failure detail provided"
}

// wrapPayload normalizes service output into a data URI. Some endpoints
// already return a full data URI, others bare base64.
func wrapPayload(payload, mime string) string {
	if strings.HasPrefix(payload, "data:") {
		return payload
	}
	return media.DataURI(mime, payload)
}

func failureDetail(raw []byte) string {
	var decoded apiResponse
	if err := json.Unmarshal(raw, &decoded); err == nil {
		if msg := decoded.failureMessage(); msg != "no failure detail provided" {
			return msg
		}
	}
	trimmed := strings.TrimSpace(string(raw))
	if len(trimmed) > 200 {
		trimmed = trimmed[:200]
	}
	return trimmed
}

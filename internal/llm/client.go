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

// CompletionRequest holds the parameters for a completion-messages call.
// Inputs carries the structured text blocks the prompt template expands.
type CompletionRequest struct {
	Inputs       map[string]string
	Query        string
	User         string
	ResponseMode string
}

// CompletionClient provides streaming access to the hosted completion API.
type CompletionClient interface {
	// Stream issues a completion call and returns the raw response body
	// for the caller to relay. The stream is bound to ctx: cancelling it
	// aborts the upstream connection. The caller must close the reader.
	Stream(ctx context.Context, req CompletionRequest) (io.ReadCloser, error)
}

// difyClient implements CompletionClient against the Dify HTTP API.
type difyClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewDifyClient creates a CompletionClient for the configured endpoint.
func NewDifyClient(cfg Config, observer Observer) CompletionClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &difyClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// completionBody is the JSON body sent to POST /completion-messages.
type completionBody struct {
	Inputs       map[string]string `json:"inputs"`
	Query        string            `json:"query"`
	User         string            `json:"user"`
	ResponseMode string            `json:"response_mode"`
}

func (c *difyClient) Stream(ctx context.Context, req CompletionRequest) (io.ReadCloser, error) {
	if !c.cfg.Enabled() {
		return nil, ErrMissingToken
	}

	start := time.Now()

	// The stream outlives this call, so the timeout cancel is released
	// when the returned body is closed, not when Stream returns.
	cancel := context.CancelFunc(func() {})
	if c.cfg.TimeoutMs > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	}

	user := req.User
	if user == "" {
		user = c.cfg.User
	}
	mode := req.ResponseMode
	if mode == "" {
		mode = c.cfg.ResponseMode
	}

	body := completionBody{
		Inputs:       req.Inputs,
		Query:        req.Query,
		User:         user,
		ResponseMode: mode,
	}
	data, err := json.Marshal(body)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := c.cfg.Endpoint + "/completion-messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		cancel()
		c.observer.OnCallComplete(CallEvent{
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   false,
			ErrorCode: errorCode(err),
		})
		if isConnectionError(err) {
			return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
		}
		return nil, fmt.Errorf("calling completion api: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		httpResp.Body.Close()
		cancel()
		c.observer.OnCallComplete(CallEvent{
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   false,
			ErrorCode: fmt.Sprintf("HTTP_%d", httpResp.StatusCode),
		})
		return nil, fmt.Errorf("completion api returned status %d: %s", httpResp.StatusCode, string(respBody))
	}

	c.observer.OnCallComplete(CallEvent{
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   true,
	})
	return &cancelOnClose{ReadCloser: httpResp.Body, cancel: cancel}, nil
}

// cancelOnClose releases the request's cancel func when the stream is
// closed, so a per-call timeout context is not leaked.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "CANCELED"
	case errors.Is(err, context.DeadlineExceeded):
		return "TIMEOUT"
	case isConnectionError(err):
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// Package gateway wraps every outbound call to the e-commerce backend. It
// attaches the current session credential, normalizes failures into
// ApiError, and is the one place that tears the session down when the
// backend says the credential is no longer valid.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storeadmin/internal/models"
	"storeadmin/internal/notify"
	"storeadmin/internal/session"
)

// OnUnauthorized is invoked after the session has been cleared on a 401.
// The HTTP layer uses it to signal the UI to return to the login entry
// point; the gateway itself performs no navigation.
type OnUnauthorized func(ctx context.Context)

type Gateway struct {
	baseURL        string
	client         *http.Client
	sessions       session.Store
	notifier       notify.Notifier
	onUnauthorized OnUnauthorized
}

func New(baseURL string, sessions session.Store, notifier notify.Notifier, onUnauthorized OnUnauthorized) *Gateway {
	return &Gateway{
		baseURL:        strings.TrimRight(baseURL, "/"),
		client:         &http.Client{Timeout: 30 * time.Second},
		sessions:       sessions,
		notifier:       notifier,
		onUnauthorized: onUnauthorized,
	}
}

// Do issues a JSON request against the backend and returns the raw response
// body on 2xx. Non-2xx responses come back as *ApiError; see errors.go for
// the classification contract. Do never retries.
func (g *Gateway) Do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	return g.roundTrip(ctx, method, path, "application/json", reader, query)
}

// DoWithRetry is the single transparent retry callers may opt into: it
// re-issues the request exactly once, and only when the first failure was
// retryable (network or server fault).
func (g *Gateway) DoWithRetry(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	raw, err := g.Do(ctx, method, path, body, query)
	if err != nil && Retryable(err) {
		log.Printf("WARN: retrying %s %s after error: %v", method, path, err)
		return g.Do(ctx, method, path, body, query)
	}
	return raw, err
}

// Upload sends a file as multipart form data to POST /files/upload and
// returns the created image resource.
func (g *Gateway) Upload(ctx context.Context, filename string, content io.Reader) (*models.ImageResource, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to read upload content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	raw, err := g.roundTrip(ctx, http.MethodPost, "/files/upload", writer.FormDataContentType(), &buf, nil)
	if err != nil {
		return nil, err
	}

	var resource models.ImageResource
	if err := json.Unmarshal(UnwrapData(raw), &resource); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &resource, nil
}

func (g *Gateway) roundTrip(ctx context.Context, method, path, contentType string, body io.Reader, query url.Values) (json.RawMessage, error) {
	target := g.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if credential, ok := g.sessions.Credential(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &ApiError{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ApiError{Kind: KindNetwork, Status: resp.StatusCode, Message: err.Error()}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	return nil, g.classify(ctx, resp.StatusCode, raw)
}

func (g *Gateway) classify(ctx context.Context, status int, body []byte) *ApiError {
	apiErr := &ApiError{Status: status, Body: body}

	var envelope struct {
		Code    string          `json:"code"`
		Err     string          `json:"error"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Code = envelope.Code
		apiErr.Details = envelope.Details
		apiErr.Message = envelope.Message
		if apiErr.Message == "" {
			apiErr.Message = envelope.Err
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		// Centralized logout: clear the session, then let the UI layer
		// redirect via the injected callback.
		if err := g.sessions.Logout(ctx); err != nil {
			log.Printf("WARN: failed to clear session on 401: %v", err)
		}
		if g.onUnauthorized != nil {
			g.onUnauthorized(ctx)
		}
	case status == http.StatusForbidden:
		apiErr.Kind = KindForbidden
		g.notifier.Error("You are not allowed to access this resource")
		if apiErr.Message == "" {
			apiErr.Message = "You are not authorized to access this resource"
		}
	case status == http.StatusNotFound:
		apiErr.Kind = KindNotFound
	case status >= 500:
		apiErr.Kind = KindServerFault
		g.notifier.Error("Internal server error")
	default:
		apiErr.Kind = KindUpstream
	}

	return apiErr
}

// UnwrapData strips an optional {"data": ...} envelope; the backend wraps
// some responses and not others.
func UnwrapData(raw json.RawMessage) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

package services

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

	"github.com/apex/log"

	"admin-console/models"
)

// APIError carries the HTTP status and the server-provided error detail of a
// failed backend call. Validation messages are kept verbatim so handlers can
// surface them to the user.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Client is the single point of outbound communication with the Çözüm Var
// REST backend. It attaches the bearer credential from the session store and
// recovers exactly once from an expired access token.
type Client struct {
	baseURL    string
	httpClient *http.Client
	sessions   *SessionStore
}

// NewClient creates a backend API client.
func NewClient(baseURL string, timeout time.Duration, sessions *SessionStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		sessions: sessions,
	}
}

// apiRequest is a replayable wrapped request. The body is held as bytes so
// the refresh interceptor can resubmit it, and retried guards against more
// than one retry per original request.
type apiRequest struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
	noAuth      bool
	retried     bool
}

// do executes one logical backend operation, decoding a 2xx body into out
// when out is non-nil. On 401 it runs the refresh flow (see retryWithRefresh)
// unless the request is itself an auth call or has already been retried.
func (c *Client) do(ctx context.Context, req *apiRequest, out any) error {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if !req.noAuth {
		if access, _ := c.sessions.Tokens(); access != "" {
			httpReq.Header.Set("Authorization", "Bearer "+access)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read backend response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.noAuth && !req.retried {
		return c.retryWithRefresh(ctx, req, out, apiErrorFrom(resp.StatusCode, respBody))
	}
	if resp.StatusCode >= 400 {
		return apiErrorFrom(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}

// retryWithRefresh implements the one-shot token refresh: exchange the stored
// refresh token for a new access token, then resubmit the original request
// exactly once. A missing refresh token propagates the original error; a
// failing refresh clears the session and propagates the refresh error.
func (c *Client) retryWithRefresh(ctx context.Context, req *apiRequest, out any, origErr error) error {
	_, refresh := c.sessions.Tokens()
	if refresh == "" {
		return origErr
	}

	if err := c.refreshSession(ctx, refresh); err != nil {
		log.WithError(err).Warn("token refresh failed, clearing session")
		if clearErr := c.sessions.Clear(); clearErr != nil {
			log.WithError(clearErr).Error("failed to clear session")
		}
		return err
	}

	req.retried = true
	return c.do(ctx, req, out)
}

func (c *Client) refreshSession(ctx context.Context, refresh string) error {
	body, err := json.Marshal(models.RefreshRequest{Refresh: refresh})
	if err != nil {
		return fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	refreshReq := &apiRequest{
		method:      http.MethodPost,
		path:        "/auth/refresh/",
		body:        body,
		contentType: "application/json",
		noAuth:      true,
	}

	var issued models.RefreshResponse
	if err := c.do(ctx, refreshReq, &issued); err != nil {
		return fmt.Errorf("refresh token exchange failed: %w", err)
	}

	if issued.Refresh != "" {
		return c.sessions.SetTokens(issued.Access, issued.Refresh)
	}
	return c.sessions.SetAccess(issued.Access)
}

func apiErrorFrom(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if v, ok := payload[key].(string); ok && v != "" {
				apiErr.Detail = v
				return apiErr
			}
		}
		// DRF validation errors come back as {"field": ["msg", ...]}.
		for field, v := range payload {
			if msgs, ok := v.([]any); ok && len(msgs) > 0 {
				if msg, ok := msgs[0].(string); ok {
					apiErr.Detail = fmt.Sprintf("%s: %s", field, msg)
					return apiErr
				}
			}
		}
	}
	if apiErr.Detail == "" && len(body) > 0 && len(body) < 512 {
		apiErr.Detail = strings.TrimSpace(string(body))
	}
	return apiErr
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, &apiRequest{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, payload, out any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request payload: %w", err)
		}
	}
	return c.do(ctx, &apiRequest{
		method:      method,
		path:        path,
		body:        body,
		contentType: "application/json",
	}, out)
}

func (c *Client) deleteResource(ctx context.Context, path string) error {
	return c.do(ctx, &apiRequest{method: http.MethodDelete, path: path}, nil)
}

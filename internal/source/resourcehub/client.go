// Package resourcehub is a thin HTTP client for the ResourceHub
// notification API.
package resourcehub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/th33k/resourcehub-console/internal/model"
)

// AuthFunc supplies the value of the Authorization header attached to
// every request. The header's construction (token format, refresh) is
// owned by the credential layer.
type AuthFunc func() (string, error)

// Client is a thin HTTP client for the ResourceHub notification API.
// It handles authorization, JSON marshaling, and uniform error
// reporting: any non-2xx status is a failure, with no per-status
// branching.
type Client struct {
	baseURL    string
	auth       AuthFunc
	httpClient *http.Client
}

// NewClient creates a ResourceHub API client. The baseURL should be the
// root of the notification service (e.g. https://hub.example.com/api).
func NewClient(baseURL string, auth AuthFunc) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    auth,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListNotifications fetches the viewer's notifications, newest first as
// ordered by the service.
func (c *Client) ListNotifications(ctx context.Context) ([]model.Notification, error) {
	var payload []notificationPayload
	if err := c.do(ctx, http.MethodGet, "/notification", &payload); err != nil {
		return nil, err
	}

	records := make([]model.Notification, len(payload))
	for i, p := range payload {
		records[i] = p.toModel()
	}
	return records, nil
}

// UnreadCount fetches the number of unread notifications for the viewer.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var payload unreadCountPayload
	if err := c.do(ctx, http.MethodGet, "/unreadCount", &payload); err != nil {
		return 0, err
	}
	return payload.UnreadCount, nil
}

// MarkRead marks a single notification as read. Marking an already-read
// notification is a benign no-op on the server side.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPut, "/markread/"+url.PathEscape(id), nil)
}

// DeleteNotification removes a single notification. Deleting an
// already-absent id is handled by the server, not guarded here.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/deleteNotification/"+url.PathEscape(id), nil)
}

// do builds the request, attaches the authorization header, executes it,
// and decodes the JSON response into result when non-nil.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	result interface{},
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	header, err := c.auth()
	if err != nil {
		return fmt.Errorf("resolving authorization: %w", err)
	}
	req.Header.Set("Authorization", header)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf(
			"unexpected status %d on %s %s", resp.StatusCode, method, path,
		)
	}

	// No content to parse (e.g. 204 on mutations).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		)
	}

	return nil
}

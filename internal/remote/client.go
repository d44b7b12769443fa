// Package remote is the HTTP client for the external event/team/schedule
// service. It owns transport concerns only: request shaping, bearer token
// attachment, and mapping response statuses onto the error taxonomy.
// Authentication failures trigger the logout callback and are never
// inspected further here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"schedview/internal/models"
	"schedview/pkg/config"
	appErrors "schedview/pkg/errors"
)

// Client talks to the remote service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger

	// onUnauthorized runs when the service rejects the session; the global
	// transport collaborator decides what a forced logout means.
	onUnauthorized func()
}

// NewClient constructs the client.
func NewClient(cfg config.RemoteConfig, logger *zap.Logger, onUnauthorized func()) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onUnauthorized == nil {
		onUnauthorized = func() {}
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.Token,
		http:           &http.Client{Timeout: cfg.Timeout},
		logger:         logger,
		onUnauthorized: onUnauthorized,
	}
}

// ListEvents returns the current result set for a scope.
func (c *Client) ListEvents(ctx context.Context, scope models.Scope) ([]models.Event, error) {
	path, err := listPath(scope)
	if err != nil {
		return nil, err
	}
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, path, nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent creates an event inside a personal schedule.
func (c *Client) CreateEvent(ctx context.Context, scope models.Scope, draft models.EventDraft) (*models.Event, error) {
	if scope.Kind != models.ScopeSchedule {
		return nil, appErrors.Clone(appErrors.ErrValidation, "events can only be created in a schedule scope")
	}
	var created models.Event
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/schedules/%d/events", scope.ID), draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEvent applies a partial update and returns the full event.
func (c *Client) UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	var updated models.Event
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/events/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEvent deletes an event.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", id), nil, nil)
}

// ExportEvents fetches the opaque serialized calendar payload for a scope.
func (c *Client) ExportEvents(ctx context.Context, scope models.Scope) ([]byte, error) {
	if scope.Kind != models.ScopeSchedule {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exports are available for schedule scopes only")
	}
	return c.raw(ctx, fmt.Sprintf("/api/schedules/%d/export.ics", scope.ID))
}

// ListOwners returns the team directory roster.
func (c *Client) ListOwners(ctx context.Context) ([]models.OwnerSummary, error) {
	var owners []models.OwnerSummary
	if err := c.do(ctx, http.MethodGet, "/api/team/users", nil, &owners); err != nil {
		return nil, err
	}
	return owners, nil
}

// ListSchedules returns the caller's schedules.
func (c *Client) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules/", nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

// CreateSchedule creates a schedule.
func (c *Client) CreateSchedule(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	var created models.Schedule
	if err := c.do(ctx, http.MethodPost, "/api/schedules/", draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSchedule applies a partial schedule update.
func (c *Client) UpdateSchedule(ctx context.Context, id int64, patch models.SchedulePatch) (*models.Schedule, error) {
	var updated models.Schedule
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/schedules/%d", id), patch, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSchedule deletes a schedule.
func (c *Client) DeleteSchedule(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/schedules/%d", id), nil, nil)
}

func listPath(scope models.Scope) (string, error) {
	switch scope.Kind {
	case models.ScopeSchedule:
		return fmt.Sprintf("/api/schedules/%d/events", scope.ID), nil
	case models.ScopeTeam:
		return fmt.Sprintf("/api/team/%d/schedule", scope.ID), nil
	case models.ScopeUser:
		return fmt.Sprintf("/api/team/schedule/user/%d", scope.ID), nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown scope kind")
	}
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "remote service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := c.checkStatus(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "decode response body")
	}
	return nil
}

func (c *Client) raw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "remote service unreachable")
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "read response body")
	}
	return payload, nil
}

// remoteError mirrors the service's error body shape.
type remoteError struct {
	Detail string `json:"detail"`
}

func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail := ""
	var body remoteError
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&body); err == nil {
		detail = body.Detail
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		c.logger.Warn("session rejected by remote service")
		c.onUnauthorized()
		return appErrors.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return appErrors.Clone(appErrors.ErrNotFound, detail)
	case resp.StatusCode == http.StatusConflict:
		return appErrors.Clone(appErrors.ErrConflict, detail)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return appErrors.Clone(appErrors.ErrValidation, detail)
	default:
		if detail == "" {
			detail = fmt.Sprintf("remote service returned status %d", resp.StatusCode)
		}
		return appErrors.Clone(appErrors.ErrUnavailable, detail)
	}
}

// Package store keeps the in-memory event collections that mirror the
// remote service's result sets. Every mutation response is applied as one
// atomic step under the store mutex, and an event present in several
// collections is updated or removed in all of them, never just one.
package store

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

// EventService is the remote collaborator owning persisted events.
type EventService interface {
	ListEvents(ctx context.Context, scope models.Scope) ([]models.Event, error)
	CreateEvent(ctx context.Context, scope models.Scope, draft models.EventDraft) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	ExportEvents(ctx context.Context, scope models.Scope) ([]byte, error)
}

// Delivery hands an opaque export payload to the file-delivery collaborator.
type Delivery interface {
	Save(filename string, data []byte) (string, error)
}

// MetricsRecorder counts store mutations. Optional.
type MetricsRecorder interface {
	RecordStoreMutation(op string, ok bool)
}

type collection struct {
	events  []models.Event
	err     string
	loading bool
	// seq tags the most recently issued load; responses carrying an older
	// sequence are superseded and discarded.
	seq uint64
}

// EventStore tracks named event collections and keeps them consistent with
// the remote service across create/update/delete/load.
type EventStore struct {
	svc      EventService
	delivery Delivery
	validate *validator.Validate
	metrics  MetricsRecorder
	logger   *zap.Logger

	mu          sync.Mutex
	collections map[models.Scope]*collection
}

// NewEventStore constructs the store.
func NewEventStore(svc EventService, delivery Delivery, validate *validator.Validate, metrics MetricsRecorder, logger *zap.Logger) *EventStore {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventStore{
		svc:         svc,
		delivery:    delivery,
		validate:    validate,
		metrics:     metrics,
		logger:      logger,
		collections: make(map[models.Scope]*collection),
	}
}

func (s *EventStore) ensureLocked(scope models.Scope) *collection {
	c, ok := s.collections[scope]
	if !ok {
		c = &collection{}
		s.collections[scope] = c
	}
	return c
}

// Load replaces the collection for scope with the service's current result
// set. On failure the previous events are kept and a scope-local error is
// recorded; load errors are never propagated to callers. A load superseded
// by a newer one for the same scope has its response discarded.
func (s *EventStore) Load(ctx context.Context, scope models.Scope) {
	s.mu.Lock()
	c := s.ensureLocked(scope)
	c.loading = true
	c.seq++
	seq := c.seq
	s.mu.Unlock()

	events, err := s.svc.ListEvents(ctx, scope)

	s.mu.Lock()
	defer s.mu.Unlock()
	if c.seq != seq {
		s.logger.Debug("discarding superseded load", zap.String("scope", scope.String()), zap.Uint64("seq", seq))
		return
	}
	c.loading = false
	if err != nil {
		c.err = err.Error()
		s.logger.Warn("load failed", zap.String("scope", scope.String()), zap.Error(err))
		s.record("load", false)
		return
	}
	c.events = events
	c.err = ""
	s.record("load", true)
}

// Create validates the draft, sends it to the service and appends the
// server-assigned event to the scope's collection. Failures propagate and
// leave local state unchanged.
func (s *EventStore) Create(ctx context.Context, scope models.Scope, draft models.EventDraft) (*models.Event, error) {
	if err := s.validateDraft(draft); err != nil {
		s.record("create", false)
		return nil, err
	}
	created, err := s.svc.CreateEvent(ctx, scope, draft)
	if err != nil {
		s.record("create", false)
		return nil, err
	}

	s.mu.Lock()
	if c, ok := s.collections[scope]; ok {
		c.events = append(c.events, *created)
	}
	s.mu.Unlock()
	s.record("create", true)
	return created, nil
}

// Update sends the patch and replaces the matching entry in every tracked
// collection containing the identifier. When no collection holds the id the
// local state is untouched (the remote call still happens).
func (s *EventStore) Update(ctx context.Context, id int64, patch models.EventPatch) (*models.Event, error) {
	if err := s.validatePatch(patch); err != nil {
		s.record("update", false)
		return nil, err
	}
	updated, err := s.svc.UpdateEvent(ctx, id, patch)
	if err != nil {
		s.record("update", false)
		return nil, err
	}

	s.mu.Lock()
	for _, c := range s.collections {
		for i := range c.events {
			if c.events[i].ID == id {
				c.events[i] = *updated
				break
			}
		}
	}
	s.mu.Unlock()
	s.record("update", true)
	return updated, nil
}

// Remove deletes the event remotely, then removes the identifier from every
// tracked collection. Removing an identifier that is already locally absent
// is a no-op on local state.
func (s *EventStore) Remove(ctx context.Context, id int64) error {
	if err := s.svc.DeleteEvent(ctx, id); err != nil {
		s.record("remove", false)
		return err
	}

	s.mu.Lock()
	for _, c := range s.collections {
		for i := range c.events {
			if c.events[i].ID == id {
				c.events = append(c.events[:i], c.events[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	s.record("remove", true)
	return nil
}

// Export requests the opaque serialized payload for a scope and hands it to
// the delivery collaborator under the given filename. The payload is never
// interpreted here.
func (s *EventStore) Export(ctx context.Context, scope models.Scope, filename string) (string, error) {
	payload, err := s.svc.ExportEvents(ctx, scope)
	if err != nil {
		s.record("export", false)
		return "", err
	}
	name, err := s.delivery.Save(filename, payload)
	if err != nil {
		s.record("export", false)
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "deliver export payload")
	}
	s.record("export", true)
	return name, nil
}

// Events returns a copy of the collection for scope.
func (s *EventStore) Events(scope models.Scope) []models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.collections[scope]
	if !ok {
		return nil
	}
	return append([]models.Event(nil), c.events...)
}

// Err returns the scope-local error message, empty when healthy.
func (s *EventStore) Err(scope models.Scope) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[scope]; ok {
		return c.err
	}
	return ""
}

// Loading reports whether a load is in flight for scope.
func (s *EventStore) Loading(scope models.Scope) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.collections[scope]; ok {
		return c.loading
	}
	return false
}

// Tracked lists the scopes currently holding a collection.
func (s *EventStore) Tracked() []models.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	scopes := make([]models.Scope, 0, len(s.collections))
	for scope := range s.collections {
		scopes = append(scopes, scope)
	}
	return scopes
}

// Clear drops the collection for scope, e.g. when the active schedule is
// deselected.
func (s *EventStore) Clear(scope models.Scope) {
	s.mu.Lock()
	delete(s.collections, scope)
	s.mu.Unlock()
}

// Reset drops every collection.
func (s *EventStore) Reset() {
	s.mu.Lock()
	s.collections = make(map[models.Scope]*collection)
	s.mu.Unlock()
}

func (s *EventStore) validateDraft(draft models.EventDraft) error {
	if err := s.validate.Struct(draft); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event draft")
	}
	if draft.EndTime.Before(draft.StartTime) {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be on or after start_time")
	}
	return nil
}

func (s *EventStore) validatePatch(patch models.EventPatch) error {
	if patch.Title != nil && *patch.Title == "" {
		return appErrors.Clone(appErrors.ErrValidation, "title cannot be empty")
	}
	if patch.StartTime != nil && patch.EndTime != nil && patch.EndTime.Before(*patch.StartTime) {
		return appErrors.Clone(appErrors.ErrValidation, "end_time must be on or after start_time")
	}
	return nil
}

func (s *EventStore) record(op string, ok bool) {
	if s.metrics != nil {
		s.metrics.RecordStoreMutation(op, ok)
	}
}

package service

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

// activeScopeFile is the fixed name the active schedule id persists under.
const activeScopeFile = "active_schedule_id"

// ScheduleService is the remote collaborator owning schedule records.
type ScheduleService interface {
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	CreateSchedule(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error)
	UpdateSchedule(ctx context.Context, id int64, patch models.SchedulePatch) (*models.Schedule, error)
	DeleteSchedule(ctx context.Context, id int64) error
}

// EventCollections is the slice of the event store the session drives:
// loading the active scope's events and dropping them on deselection.
type EventCollections interface {
	Load(ctx context.Context, scope models.Scope)
	Clear(scope models.Scope)
}

// StateStore persists small state files across restarts.
type StateStore interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
}

// SessionService owns the schedule list and the active-scope selection,
// restoring the persisted selection on startup and falling back to the
// first active schedule when the persisted one no longer exists.
type SessionService struct {
	remote ScheduleService
	events EventCollections
	state  StateStore
	logger *zap.Logger

	mu        sync.Mutex
	schedules []models.Schedule
	activeID  int64
	err       string
}

// NewSessionService constructs the session service.
func NewSessionService(remote ScheduleService, events EventCollections, state StateStore, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		remote: remote,
		events: events,
		state:  state,
		logger: logger,
	}
}

// LoadSchedules fetches the schedule list, restores the persisted active
// selection when it is still present, otherwise falls back to the first
// schedule with active status, and triggers an event load for the result.
func (s *SessionService) LoadSchedules(ctx context.Context) error {
	schedules, err := s.remote.ListSchedules(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.mu.Unlock()
		return err
	}

	// State-file I/O stays outside the mutex.
	persisted := s.readPersisted()

	s.mu.Lock()
	s.schedules = schedules
	s.err = ""

	if persisted != 0 && s.containsLocked(persisted) {
		s.activeID = persisted
	} else if s.activeID != 0 && !s.containsLocked(s.activeID) {
		s.activeID = 0
	}
	if s.activeID == 0 {
		s.activeID = s.firstActiveLocked()
	}
	active := s.activeID
	s.mu.Unlock()

	if active != 0 {
		s.persist(active)
		s.events.Load(ctx, models.ScheduleScope(active))
	}
	return nil
}

// SetActiveScope selects a schedule (0 clears the selection), persists the
// choice and loads the newly selected scope's events.
func (s *SessionService) SetActiveScope(ctx context.Context, scheduleID int64) error {
	if scheduleID == 0 {
		s.mu.Lock()
		previous := s.activeID
		s.activeID = 0
		s.mu.Unlock()
		if err := s.state.Delete(activeScopeFile); err != nil {
			s.logger.Warn("clearing persisted scope failed", zap.Error(err))
		}
		if previous != 0 {
			s.events.Clear(models.ScheduleScope(previous))
		}
		return nil
	}

	s.mu.Lock()
	if !s.containsLocked(scheduleID) {
		s.mu.Unlock()
		return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
	}
	s.activeID = scheduleID
	s.mu.Unlock()

	s.persist(scheduleID)
	s.events.Load(ctx, models.ScheduleScope(scheduleID))
	return nil
}

// ActiveScope returns the active schedule, when one is selected.
func (s *SessionService) ActiveScope() (models.Schedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sch := range s.schedules {
		if sch.ID == s.activeID {
			return sch, true
		}
	}
	return models.Schedule{}, false
}

// ActiveScopeID returns the active schedule id, 0 when none.
func (s *SessionService) ActiveScopeID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Schedules returns a copy of the schedule list.
func (s *SessionService) Schedules() []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Schedule(nil), s.schedules...)
}

// ActiveSchedules returns the schedules with active status.
func (s *SessionService) ActiveSchedules() []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Schedule, 0, len(s.schedules))
	for _, sch := range s.schedules {
		if sch.Status == models.ScheduleStatusActive {
			out = append(out, sch)
		}
	}
	return out
}

// Err returns the last schedule-list error, empty when healthy.
func (s *SessionService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// CreateSchedule creates a schedule remotely, appends it locally and makes
// it the active selection.
func (s *SessionService) CreateSchedule(ctx context.Context, draft models.ScheduleDraft) (*models.Schedule, error) {
	created, err := s.remote.CreateSchedule(ctx, draft)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.schedules = append(s.schedules, *created)
	s.activeID = created.ID
	s.mu.Unlock()

	s.persist(created.ID)
	s.events.Load(ctx, models.ScheduleScope(created.ID))
	return created, nil
}

// UpdateSchedule updates a schedule remotely and replaces the local entry.
func (s *SessionService) UpdateSchedule(ctx context.Context, id int64, patch models.SchedulePatch) (*models.Schedule, error) {
	updated, err := s.remote.UpdateSchedule(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.schedules {
		if s.schedules[i].ID == id {
			s.schedules[i] = *updated
			break
		}
	}
	s.mu.Unlock()
	return updated, nil
}

// DeleteSchedule deletes a schedule remotely, removes it locally and, when
// the active selection was deleted, falls back to the first active schedule.
func (s *SessionService) DeleteSchedule(ctx context.Context, id int64) error {
	if err := s.remote.DeleteSchedule(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.schedules[:0]
	for _, sch := range s.schedules {
		if sch.ID != id {
			kept = append(kept, sch)
		}
	}
	s.schedules = kept

	var next int64
	wasActive := s.activeID == id
	if wasActive {
		s.activeID = s.firstActiveLocked()
		next = s.activeID
	}
	s.mu.Unlock()

	if wasActive {
		s.events.Clear(models.ScheduleScope(id))
		if next != 0 {
			s.persist(next)
			s.events.Load(ctx, models.ScheduleScope(next))
		} else if err := s.state.Delete(activeScopeFile); err != nil {
			s.logger.Warn("clearing persisted scope failed", zap.Error(err))
		}
	}
	return nil
}

// readPersisted returns the persisted active schedule id, 0 when absent or
// unparseable. Membership in the current list is the caller's concern.
func (s *SessionService) readPersisted() int64 {
	raw, err := s.state.Read(activeScopeFile)
	if err != nil {
		return 0
	}
	id, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func (s *SessionService) containsLocked(id int64) bool {
	for _, sch := range s.schedules {
		if sch.ID == id {
			return true
		}
	}
	return false
}

func (s *SessionService) firstActiveLocked() int64 {
	for _, sch := range s.schedules {
		if sch.Status == models.ScheduleStatusActive {
			return sch.ID
		}
	}
	return 0
}

func (s *SessionService) persist(id int64) {
	if _, err := s.state.Save(activeScopeFile, []byte(strconv.FormatInt(id, 10))); err != nil {
		s.logger.Warn("persisting active scope failed", zap.Error(err))
	}
}

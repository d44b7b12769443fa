package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

type fakeScheduleService struct {
	schedules []models.Schedule
	listErr   error
	created   *models.Schedule
	updated   *models.Schedule
	err       error
}

func (f *fakeScheduleService) ListSchedules(context.Context) ([]models.Schedule, error) {
	return f.schedules, f.listErr
}

func (f *fakeScheduleService) CreateSchedule(context.Context, models.ScheduleDraft) (*models.Schedule, error) {
	return f.created, f.err
}

func (f *fakeScheduleService) UpdateSchedule(context.Context, int64, models.SchedulePatch) (*models.Schedule, error) {
	return f.updated, f.err
}

func (f *fakeScheduleService) DeleteSchedule(context.Context, int64) error {
	return f.err
}

type fakeCollections struct {
	loaded  []models.Scope
	cleared []models.Scope
}

func (f *fakeCollections) Load(_ context.Context, scope models.Scope) {
	f.loaded = append(f.loaded, scope)
}

func (f *fakeCollections) Clear(scope models.Scope) {
	f.cleared = append(f.cleared, scope)
}

type fakeStateStore struct {
	files map[string][]byte
}

func newFakeStateStore() *fakeStateStore {
	return &fakeStateStore{files: make(map[string][]byte)}
}

func (f *fakeStateStore) Save(filename string, data []byte) (string, error) {
	f.files[filename] = data
	return filename, nil
}

func (f *fakeStateStore) Read(filename string) ([]byte, error) {
	data, ok := f.files[filename]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (f *fakeStateStore) Delete(filename string) error {
	delete(f.files, filename)
	return nil
}

func schedule(id int64, name, status string) models.Schedule {
	return models.Schedule{ID: id, Name: name, Status: status, StartDate: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)}
}

func TestLoadSchedulesRestoresPersistedSelection(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Odd", models.ScheduleStatusActive),
		schedule(2, "Even", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	state.files[activeScopeFile] = []byte("2")

	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	assert.Equal(t, int64(2), s.ActiveScopeID())
	require.Len(t, events.loaded, 1)
	assert.Equal(t, models.ScheduleScope(2), events.loaded[0])
}

// blockingStateStore calls back into the service from Read, the way a slow
// or reentrant storage backend could. Restore must read the state file
// before taking the service mutex or this deadlocks.
type blockingStateStore struct {
	*fakeStateStore
	session *SessionService
}

func (b *blockingStateStore) Read(filename string) ([]byte, error) {
	b.session.ActiveScopeID()
	return b.fakeStateStore.Read(filename)
}

func TestLoadSchedulesReadsStateOutsideLock(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Odd", models.ScheduleStatusActive),
		schedule(2, "Even", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := &blockingStateStore{fakeStateStore: newFakeStateStore()}
	state.files[activeScopeFile] = []byte("2")

	s := NewSessionService(remote, events, state, nil)
	state.session = s

	done := make(chan error, 1)
	go func() { done <- s.LoadSchedules(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("LoadSchedules blocked on state-file read")
	}
	assert.Equal(t, int64(2), s.ActiveScopeID())
}

func TestLoadSchedulesFallsBackWhenPersistedGone(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(3, "Ended", models.ScheduleStatusEnded),
		schedule(4, "Current", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	state.files[activeScopeFile] = []byte("99")

	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	assert.Equal(t, int64(4), s.ActiveScopeID())
	assert.Equal(t, []byte("4"), state.files[activeScopeFile])
}

func TestLoadSchedulesIgnoresGarbageState(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Only", models.ScheduleStatusActive),
	}}
	state := newFakeStateStore()
	state.files[activeScopeFile] = []byte("not-a-number")

	s := NewSessionService(remote, &fakeCollections{}, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))
	assert.Equal(t, int64(1), s.ActiveScopeID())
}

func TestLoadSchedulesNoActiveLeavesSelectionEmpty(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Ended", models.ScheduleStatusEnded),
		schedule(2, "Hidden", models.ScheduleStatusHidden),
	}}
	events := &fakeCollections{}

	s := NewSessionService(remote, events, newFakeStateStore(), nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	assert.Zero(t, s.ActiveScopeID())
	assert.Empty(t, events.loaded)
	_, ok := s.ActiveScope()
	assert.False(t, ok)
}

func TestLoadSchedulesFailureRecordsError(t *testing.T) {
	remote := &fakeScheduleService{listErr: errors.New("down")}
	s := NewSessionService(remote, &fakeCollections{}, newFakeStateStore(), nil)

	assert.Error(t, s.LoadSchedules(context.Background()))
	assert.Equal(t, "down", s.Err())
}

func TestSetActiveScopeValidatesMembership(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Only", models.ScheduleStatusActive),
	}}
	s := NewSessionService(remote, &fakeCollections{}, newFakeStateStore(), nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	err := s.SetActiveScope(context.Background(), 42)
	assert.True(t, appErrors.HasCode(err, appErrors.ErrNotFound))
	assert.Equal(t, int64(1), s.ActiveScopeID())
}

func TestSetActiveScopePersistsAndLoads(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "A", models.ScheduleStatusActive),
		schedule(2, "B", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	require.NoError(t, s.SetActiveScope(context.Background(), 2))

	assert.Equal(t, int64(2), s.ActiveScopeID())
	assert.Equal(t, []byte("2"), state.files[activeScopeFile])
	assert.Equal(t, models.ScheduleScope(2), events.loaded[len(events.loaded)-1])
}

func TestSetActiveScopeZeroClearsSelection(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "A", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	require.NoError(t, s.SetActiveScope(context.Background(), 0))

	assert.Zero(t, s.ActiveScopeID())
	_, persisted := state.files[activeScopeFile]
	assert.False(t, persisted)
	assert.Equal(t, []models.Scope{models.ScheduleScope(1)}, events.cleared)
}

func TestCreateScheduleBecomesActive(t *testing.T) {
	created := schedule(7, "New", models.ScheduleStatusActive)
	remote := &fakeScheduleService{created: &created}
	events := &fakeCollections{}
	state := newFakeStateStore()
	s := NewSessionService(remote, events, state, nil)

	got, err := s.CreateSchedule(context.Background(), models.ScheduleDraft{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(7), s.ActiveScopeID())
	assert.Equal(t, []byte("7"), state.files[activeScopeFile])
	assert.Len(t, s.Schedules(), 1)
}

func TestUpdateScheduleReplacesLocalEntry(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Before", models.ScheduleStatusActive),
	}}
	s := NewSessionService(remote, &fakeCollections{}, newFakeStateStore(), nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	updated := schedule(1, "After", models.ScheduleStatusActive)
	remote.updated = &updated
	_, err := s.UpdateSchedule(context.Background(), 1, models.SchedulePatch{})
	require.NoError(t, err)
	assert.Equal(t, "After", s.Schedules()[0].Name)
}

func TestDeleteActiveScheduleFallsBack(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "A", models.ScheduleStatusActive),
		schedule(2, "B", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))
	require.Equal(t, int64(1), s.ActiveScopeID())

	require.NoError(t, s.DeleteSchedule(context.Background(), 1))

	assert.Equal(t, int64(2), s.ActiveScopeID())
	assert.Contains(t, events.cleared, models.ScheduleScope(1))
	assert.Equal(t, []byte("2"), state.files[activeScopeFile])
	assert.Len(t, s.Schedules(), 1)
}

func TestDeleteLastScheduleClearsState(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "Only", models.ScheduleStatusActive),
	}}
	events := &fakeCollections{}
	state := newFakeStateStore()
	s := NewSessionService(remote, events, state, nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	require.NoError(t, s.DeleteSchedule(context.Background(), 1))

	assert.Zero(t, s.ActiveScopeID())
	_, persisted := state.files[activeScopeFile]
	assert.False(t, persisted)
	assert.Empty(t, s.Schedules())
}

func TestActiveSchedulesFiltersByStatus(t *testing.T) {
	remote := &fakeScheduleService{schedules: []models.Schedule{
		schedule(1, "A", models.ScheduleStatusActive),
		schedule(2, "B", models.ScheduleStatusEnded),
		schedule(3, "C", models.ScheduleStatusHidden),
	}}
	s := NewSessionService(remote, &fakeCollections{}, newFakeStateStore(), nil)
	require.NoError(t, s.LoadSchedules(context.Background()))

	active := s.ActiveSchedules()
	require.Len(t, active, 1)
	assert.Equal(t, int64(1), active[0].ID)
}

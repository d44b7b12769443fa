package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedview/internal/models"
	"schedview/pkg/config"
	appErrors "schedview/pkg/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logouts := 0
	client := NewClient(config.RemoteConfig{
		BaseURL: srv.URL,
		Token:   "secret-token",
		Timeout: 5 * time.Second,
	}, nil, func() { logouts++ })
	return client, &logouts
}

func TestListEventsSchedulePathAndAuth(t *testing.T) {
	var gotPath, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.Event{{ID: 1, Title: "Math"}})
	})

	events, err := client.ListEvents(context.Background(), models.ScheduleScope(7))
	require.NoError(t, err)
	assert.Equal(t, "/api/schedules/7/events", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	require.Len(t, events, 1)
	assert.Equal(t, "Math", events[0].Title)
}

func TestListEventsTeamAndUserPaths(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode([]models.Event{})
	})

	_, err := client.ListEvents(context.Background(), models.TeamScope(3))
	require.NoError(t, err)
	assert.Equal(t, "/api/team/3/schedule", gotPath)

	_, err = client.ListEvents(context.Background(), models.UserScope(9))
	require.NoError(t, err)
	assert.Equal(t, "/api/team/schedule/user/9", gotPath)
}

func TestCreateEventRequiresScheduleScope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Event{ID: 1})
	})

	_, err := client.CreateEvent(context.Background(), models.TeamScope(1), models.EventDraft{})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestCreateEventPostsDraft(t *testing.T) {
	var gotMethod, gotPath string
	var gotDraft models.EventDraft
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotDraft)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Event{ID: 11, Title: gotDraft.Title})
	})

	created, err := client.CreateEvent(context.Background(), models.ScheduleScope(2), models.EventDraft{Title: "Math"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/api/schedules/2/events", gotPath)
	assert.Equal(t, "Math", gotDraft.Title)
	assert.Equal(t, int64(11), created.ID)
}

func TestDeleteEventNoContent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/events/5", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, client.DeleteEvent(context.Background(), 5))
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		target *appErrors.Error
	}{
		{http.StatusBadRequest, appErrors.ErrValidation},
		{http.StatusUnprocessableEntity, appErrors.ErrValidation},
		{http.StatusNotFound, appErrors.ErrNotFound},
		{http.StatusConflict, appErrors.ErrConflict},
		{http.StatusInternalServerError, appErrors.ErrUnavailable},
		{http.StatusBadGateway, appErrors.ErrUnavailable},
	}
	for _, tc := range cases {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "nope"})
		})
		_, err := client.ListEvents(context.Background(), models.ScheduleScope(1))
		assert.True(t, appErrors.HasCode(err, tc.target), "status %d", tc.status)
	}
}

func TestUnauthorizedTriggersLogoutCallback(t *testing.T) {
	client, logouts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.ListEvents(context.Background(), models.ScheduleScope(1))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized))
	assert.Equal(t, 1, *logouts)
}

func TestNetworkErrorMapsToUnavailable(t *testing.T) {
	client := NewClient(config.RemoteConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 500 * time.Millisecond,
	}, nil, nil)

	_, err := client.ListEvents(context.Background(), models.ScheduleScope(1))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnavailable))
}

func TestExportEventsReturnsRawPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/schedules/4/export.ics", r.URL.Path)
		_, _ = w.Write([]byte("BEGIN:VCALENDAR"))
	})

	payload, err := client.ExportEvents(context.Background(), models.ScheduleScope(4))
	require.NoError(t, err)
	assert.Equal(t, []byte("BEGIN:VCALENDAR"), payload)
}

func TestExportEventsRejectsNonScheduleScope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.ExportEvents(context.Background(), models.UserScope(1))
	assert.True(t, appErrors.HasCode(err, appErrors.ErrValidation))
}

func TestScheduleCRUDPaths(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode([]models.Schedule{{ID: 1, Name: "Sem 1"}})
		default:
			_ = json.NewEncoder(w).Encode(models.Schedule{ID: 1, Name: "Sem 1"})
		}
	})

	schedules, err := client.ListSchedules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/schedules/", gotPath)
	assert.Len(t, schedules, 1)

	_, err = client.CreateSchedule(context.Background(), models.ScheduleDraft{Name: "Sem 1"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)

	_, err = client.UpdateSchedule(context.Background(), 1, models.SchedulePatch{})
	require.NoError(t, err)
	assert.Equal(t, "/api/schedules/1", gotPath)

	require.NoError(t, client.DeleteSchedule(context.Background(), 1))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestListOwners(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/team/users", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]models.OwnerSummary{{ID: 1, FullName: "Alice"}})
	})

	owners, err := client.ListOwners(context.Background())
	require.NoError(t, err)
	require.Len(t, owners, 1)
	assert.Equal(t, "Alice", owners[0].FullName)
}

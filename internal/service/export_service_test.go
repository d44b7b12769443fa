package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedview/internal/filter"
	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

type fakeExportSource struct {
	payload []byte
	err     error
}

func (f *fakeExportSource) ExportEvents(context.Context, models.Scope) ([]byte, error) {
	return f.payload, f.err
}

type fakeEventReader struct {
	events []models.Event
}

func (f *fakeEventReader) Events(models.Scope) []models.Event {
	return f.events
}

type fakeExportDelivery struct {
	saved map[string][]byte
}

func (f *fakeExportDelivery) Save(filename string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[filename] = data
	return filename, nil
}

func (f *fakeExportDelivery) Path(filename string) string {
	return "/tmp/" + filename
}

func exportEvents() []models.Event {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	return []models.Event{
		{
			ID: 1, Title: "Math", StartTime: start, EndTime: start.Add(time.Hour),
			Location: "Lab 1",
			Owner:    &models.OwnerSummary{ID: 1, FullName: "Alice Smith", ClassName: "XII-A"},
		},
		{
			ID: 2, Title: "Biology", StartTime: start.Add(24 * time.Hour), EndTime: start.Add(25 * time.Hour),
		},
	}
}

func TestExportICSForwardsRemotePayload(t *testing.T) {
	delivery := &fakeExportDelivery{}
	s := NewExportService(
		&fakeExportSource{payload: []byte("BEGIN:VCALENDAR\nremote\nEND:VCALENDAR")},
		&fakeEventReader{}, delivery, filter.NewEngine(), nil,
	)

	name, err := s.ExportICS(context.Background(), models.ScheduleScope(1), "Semester 1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(name, "schedule-Semester_1-"))
	assert.True(t, strings.HasSuffix(name, ".ics"))
	assert.Contains(t, string(delivery.saved[name]), "remote")
}

func TestExportICSFallsBackWhenRemoteUnavailable(t *testing.T) {
	delivery := &fakeExportDelivery{}
	s := NewExportService(
		&fakeExportSource{err: appErrors.ErrUnavailable},
		&fakeEventReader{events: exportEvents()}, delivery, filter.NewEngine(), nil,
	)

	name, err := s.ExportICS(context.Background(), models.ScheduleScope(1), "Semester 1")
	require.NoError(t, err)

	payload := string(delivery.saved[name])
	assert.Contains(t, payload, "BEGIN:VCALENDAR")
	assert.Contains(t, payload, "Math")
}

func TestExportICSPropagatesOtherErrors(t *testing.T) {
	s := NewExportService(
		&fakeExportSource{err: appErrors.ErrUnauthorized},
		&fakeEventReader{}, &fakeExportDelivery{}, filter.NewEngine(), nil,
	)

	_, err := s.ExportICS(context.Background(), models.ScheduleScope(1), "x")
	assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized))
}

func TestExportCSVRendersFilteredView(t *testing.T) {
	engine := filter.NewEngine()
	require.NoError(t, engine.SetCriteria(filter.Criteria{TitleKeyword: "math"}))

	delivery := &fakeExportDelivery{}
	s := NewExportService(
		&fakeExportSource{}, &fakeEventReader{events: exportEvents()}, delivery, engine, nil,
	)

	name, err := s.ExportCSV(context.Background(), models.ScheduleScope(1), "Semester 1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".csv"))

	payload := string(delivery.saved[name])
	assert.Contains(t, payload, "Date,Start,End,Title,Owner,Class,Location")
	assert.Contains(t, payload, "Math")
	assert.Contains(t, payload, "Alice Smith")
	assert.NotContains(t, payload, "Biology")
}

func TestExportPDFProducesDocument(t *testing.T) {
	delivery := &fakeExportDelivery{}
	s := NewExportService(
		&fakeExportSource{}, &fakeEventReader{events: exportEvents()}, delivery, filter.NewEngine(), nil,
	)

	name, err := s.ExportPDF(context.Background(), models.ScheduleScope(1), "Semester 1")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.True(t, strings.HasPrefix(string(delivery.saved[name]), "%PDF"))
}

func TestExportFilenameSanitizesName(t *testing.T) {
	name := exportFilename("a/b\\c d:e", "csv")
	assert.True(t, strings.HasPrefix(name, "schedule-a-b-c_d-e-"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}

func TestExportFilenameEmptyNameUsesDefault(t *testing.T) {
	name := exportFilename("  ", "ics")
	assert.True(t, strings.HasPrefix(name, "schedule-export-"))
}

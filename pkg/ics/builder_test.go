package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schedview/internal/models"
)

func TestBuildProducesCalendar(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	payload, err := Build("Semester 1", []models.Event{
		{
			ID: 1, Title: "Math", Description: "Algebra", Location: "Lab 1",
			StartTime: start, EndTime: start.Add(time.Hour),
			CreatedAt: start.Add(-24 * time.Hour), UpdatedAt: start.Add(-time.Hour),
		},
		{ID: 2, Title: "Biology", StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour)},
	})
	require.NoError(t, err)

	s := string(payload)
	assert.Contains(t, s, "BEGIN:VCALENDAR")
	assert.Contains(t, s, "END:VCALENDAR")
	assert.Contains(t, s, "METHOD:PUBLISH")
	assert.Contains(t, s, prodID)
	assert.Contains(t, s, "SUMMARY:Math")
	assert.Contains(t, s, "SUMMARY:Biology")
	assert.Contains(t, s, "LOCATION:Lab 1")
	assert.Contains(t, s, "UID:event-1@schedview")
	assert.Equal(t, 2, strings.Count(s, "BEGIN:VEVENT"))
}

func TestBuildEmptyNameFallsBack(t *testing.T) {
	payload, err := Build("", nil)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "schedule")
}

func TestBuildRejectsInvertedEvent(t *testing.T) {
	start := time.Date(2024, time.January, 8, 9, 0, 0, 0, time.UTC)
	_, err := Build("x", []models.Event{
		{ID: 1, Title: "Bad", StartTime: start, EndTime: start.Add(-time.Minute)},
	})
	assert.Error(t, err)
}

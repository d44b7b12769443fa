package models

import "time"

// OwnerSummary is denormalized reference data about the user owning an
// event. It is fetched from the team directory and used for filter
// predicates and color assignment only; this service never mutates it.
type OwnerSummary struct {
	ID        int64   `json:"id"`
	StudentID string  `json:"student_id,omitempty"`
	FullName  string  `json:"full_name"`
	ClassName string  `json:"class_name"`
	Grade     string  `json:"grade"`
	Role      string  `json:"role,omitempty"`
	TeamIDs   []int64 `json:"team_ids,omitempty"`
}

// Event is a single materialized schedule entry. Recurring courses arrive
// already expanded, one row per occurrence.
type Event struct {
	ID          int64         `json:"id"`
	ScheduleID  int64         `json:"schedule_id"`
	OwnerID     int64         `json:"owner_id"`
	Title       string        `json:"title"`
	Description string        `json:"description,omitempty"`
	Location    string        `json:"location,omitempty"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	Owner       *OwnerSummary `json:"owner,omitempty"`
}

// EventDraft is the payload for creating an event. The server assigns the
// identifier.
type EventDraft struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required"`
}

// EventPatch carries partial field replacements for an update. Nil fields
// are left untouched by the server.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
}

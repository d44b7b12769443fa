package models

import "time"

// Schedule statuses as exposed by the remote service.
const (
	ScheduleStatusActive = "active"
	ScheduleStatusEnded  = "ended"
	ScheduleStatusHidden = "hidden"
)

// Schedule is a named personal timetable owned by a user. One of the user's
// schedules is the "active" selection the calendar view works against.
type Schedule struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	TotalWeeks int       `json:"total_weeks"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScheduleDraft is the payload for creating a schedule.
type ScheduleDraft struct {
	Name       string    `json:"name" validate:"required"`
	Status     string    `json:"status,omitempty"`
	StartDate  time.Time `json:"start_date" validate:"required"`
	TotalWeeks int       `json:"total_weeks,omitempty"`
}

// SchedulePatch carries partial schedule updates.
type SchedulePatch struct {
	Name       *string    `json:"name,omitempty"`
	Status     *string    `json:"status,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	TotalWeeks *int       `json:"total_weeks,omitempty"`
}

// Package filter derives filtered views over event collections. Apply is a
// pure function; Engine only holds the current criteria, so every read
// recomputes against the freshest collection and criteria.
package filter

import (
	"strings"
	"sync"
	"time"

	"schedview/internal/daterange"
	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

// Criteria is the full set of filter dimensions. A zero-valued dimension
// imposes no restriction; it never means "match nothing".
type Criteria struct {
	// Start and End bound the event's start timestamp at civil-date
	// granularity, inclusive. Zero times leave the corresponding side open.
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`

	OwnerIDs []int64 `json:"owner_ids,omitempty"`
	TeamIDs  []int64 `json:"team_ids,omitempty"`

	ClassName    string `json:"class_name,omitempty"`
	Grade        string `json:"grade,omitempty"`
	NameKeyword  string `json:"name_keyword,omitempty"`
	TitleKeyword string `json:"title_keyword,omitempty"`
}

// Validate checks the start/end invariant.
func (c Criteria) Validate() error {
	if !c.Start.IsZero() && !c.End.IsZero() && daterange.DateOf(c.Start).After(daterange.DateOf(c.End)) {
		return appErrors.Clone(appErrors.ErrValidation, "filter start must be on or before end")
	}
	return nil
}

// Matches evaluates the conjunction of all non-empty dimensions against one
// event.
func (c Criteria) Matches(ev models.Event) bool {
	if !c.Start.IsZero() && daterange.DateOf(ev.StartTime).Before(daterange.DateOf(c.Start)) {
		return false
	}
	if !c.End.IsZero() && daterange.DateOf(ev.StartTime).After(daterange.DateOf(c.End)) {
		return false
	}
	if len(c.OwnerIDs) > 0 && !containsID(c.OwnerIDs, ownerID(ev)) {
		return false
	}
	if len(c.TeamIDs) > 0 && !inAnyTeam(c.TeamIDs, ev.Owner) {
		return false
	}
	if c.ClassName != "" && (ev.Owner == nil || ev.Owner.ClassName != c.ClassName) {
		return false
	}
	if c.Grade != "" && (ev.Owner == nil || ev.Owner.Grade != c.Grade) {
		return false
	}
	if c.NameKeyword != "" {
		if ev.Owner == nil || !containsFold(ev.Owner.FullName, c.NameKeyword) {
			return false
		}
	}
	if c.TitleKeyword != "" && !containsFold(ev.Title, c.TitleKeyword) {
		return false
	}
	return true
}

// Apply returns the events satisfying every non-empty criterion, preserving
// input order. The input slice is never mutated.
func Apply(c Criteria, events []models.Event) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		if c.Matches(ev) {
			out = append(out, ev)
		}
	}
	return out
}

func ownerID(ev models.Event) int64 {
	if ev.OwnerID != 0 {
		return ev.OwnerID
	}
	if ev.Owner != nil {
		return ev.Owner.ID
	}
	return 0
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func inAnyTeam(teamIDs []int64, owner *models.OwnerSummary) bool {
	if owner == nil {
		return false
	}
	for _, id := range teamIDs {
		if containsID(owner.TeamIDs, id) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// Engine holds the current criteria. Mutating criteria never touches the
// underlying collections; it only changes what the next Filter call returns.
type Engine struct {
	mu       sync.RWMutex
	criteria Criteria
}

// NewEngine starts with empty criteria (everything passes).
func NewEngine() *Engine {
	return &Engine{}
}

// Criteria returns a snapshot of the current criteria.
func (e *Engine) Criteria() Criteria {
	e.mu.RLock()
	defer e.mu.RUnlock()
	c := e.criteria
	c.OwnerIDs = append([]int64(nil), e.criteria.OwnerIDs...)
	c.TeamIDs = append([]int64(nil), e.criteria.TeamIDs...)
	return c
}

// SetCriteria replaces every dimension at once.
func (e *Engine) SetCriteria(c Criteria) error {
	if err := c.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	e.criteria = c
	e.mu.Unlock()
	return nil
}

// SetDateRange replaces only the date-range dimension. The view-mode
// controller calls this on every mode transition.
func (e *Engine) SetDateRange(start, end time.Time) {
	e.mu.Lock()
	e.criteria.Start = daterange.DateOf(start)
	e.criteria.End = daterange.DateOf(end)
	e.mu.Unlock()
}

// Filter applies the current criteria to the given events.
func (e *Engine) Filter(events []models.Event) []models.Event {
	return Apply(e.Criteria(), events)
}

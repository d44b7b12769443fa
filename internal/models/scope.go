package models

import (
	"fmt"
	"strconv"
	"strings"
)

// ScopeKind discriminates which remote result set a collection mirrors.
type ScopeKind string

const (
	// ScopeSchedule addresses the events of one personal schedule.
	ScopeSchedule ScopeKind = "schedule"
	// ScopeTeam addresses the aggregated events visible to a team.
	ScopeTeam ScopeKind = "team"
	// ScopeUser addresses the events of a single other user.
	ScopeUser ScopeKind = "user"
)

// Scope names one tracked event collection. The zero value is invalid.
type Scope struct {
	Kind ScopeKind
	ID   int64
}

// ScheduleScope builds a personal-schedule scope.
func ScheduleScope(scheduleID int64) Scope {
	return Scope{Kind: ScopeSchedule, ID: scheduleID}
}

// TeamScope builds a team scope.
func TeamScope(teamID int64) Scope {
	return Scope{Kind: ScopeTeam, ID: teamID}
}

// UserScope builds a single-user scope.
func UserScope(userID int64) Scope {
	return Scope{Kind: ScopeUser, ID: userID}
}

// IsZero reports whether the scope is unset.
func (s Scope) IsZero() bool {
	return s.Kind == "" && s.ID == 0
}

// String renders the scope as "kind:id", the form used for map keys, log
// fields and persistence.
func (s Scope) String() string {
	return fmt.Sprintf("%s:%d", s.Kind, s.ID)
}

// ParseScope is the inverse of Scope.String.
func ParseScope(raw string) (Scope, error) {
	kind, idPart, ok := strings.Cut(raw, ":")
	if !ok {
		return Scope{}, fmt.Errorf("malformed scope %q", raw)
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return Scope{}, fmt.Errorf("malformed scope id %q: %w", raw, err)
	}
	switch ScopeKind(kind) {
	case ScopeSchedule, ScopeTeam, ScopeUser:
		return Scope{Kind: ScopeKind(kind), ID: id}, nil
	default:
		return Scope{}, fmt.Errorf("unknown scope kind %q", kind)
	}
}

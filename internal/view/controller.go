// Package view holds the calendar display mode. Every transition, including
// an anchor-only change, recomputes the active date range and writes it into
// the filter engine so the derived range can never drift from the mode.
package view

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"schedview/internal/daterange"
	appErrors "schedview/pkg/errors"
)

// Type is the calendar display mode discriminator.
type Type string

const (
	TypeWeek  Type = "week"
	TypeMonth Type = "month"
)

// Mode is a display mode parameterized by an anchor date. The derived range
// always contains the anchor.
type Mode struct {
	Type   Type      `json:"type"`
	Anchor time.Time `json:"anchor"`
}

// RangeFor returns the date range the mode displays.
func RangeFor(m Mode) daterange.Range {
	if m.Type == TypeMonth {
		return daterange.Month(m.Anchor)
	}
	return daterange.Week(m.Anchor)
}

// RangeSetter receives the recomputed range; satisfied by filter.Engine.
type RangeSetter interface {
	SetDateRange(start, end time.Time)
}

// Controller is the two-state view machine.
type Controller struct {
	ranges RangeSetter
	logger *zap.Logger

	mu   sync.RWMutex
	mode Mode
}

// NewController starts in week mode anchored at now and pushes the initial
// range into the setter.
func NewController(ranges RangeSetter, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{ranges: ranges, logger: logger}
	_ = c.SetMode(Mode{Type: TypeWeek, Anchor: time.Now()})
	return c
}

// SetMode replaces the mode and writes the recomputed range into the filter
// engine. This is the only way the mode, anchor included, may change.
func (c *Controller) SetMode(m Mode) error {
	switch m.Type {
	case TypeWeek, TypeMonth:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "view type must be week or month")
	}
	if m.Anchor.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "view anchor date is required")
	}

	r := RangeFor(m)

	c.mu.Lock()
	c.mode = m
	c.mu.Unlock()

	c.ranges.SetDateRange(r.Start, r.End)
	c.logger.Debug("view mode set",
		zap.String("type", string(m.Type)),
		zap.Time("anchor", m.Anchor),
		zap.Time("range_start", r.Start),
		zap.Time("range_end", r.End),
	)
	return nil
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.mode
}

// Range returns the range derived from the current mode.
func (c *Controller) Range() daterange.Range {
	return RangeFor(c.Mode())
}

package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"schedview/internal/colors"
	"schedview/internal/daterange"
	"schedview/internal/filter"
	"schedview/internal/models"
	"schedview/internal/store"
	"schedview/internal/view"
	appErrors "schedview/pkg/errors"
	"schedview/pkg/response"
)

// ActiveScopeSource resolves the default scope for calendar requests.
type ActiveScopeSource interface {
	ActiveScopeID() int64
}

// FilterMetrics records filter evaluation latency. Optional.
type FilterMetrics interface {
	ObserveFilter(duration time.Duration)
}

// CalendarHandler serves the assembled calendar view: the current mode, its
// derived range and day cells, and the filtered, color-annotated events.
type CalendarHandler struct {
	controller *view.Controller
	engine     *filter.Engine
	events     *store.EventStore
	assigner   *colors.Assigner
	session    ActiveScopeSource
	metrics    FilterMetrics
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(controller *view.Controller, engine *filter.Engine, events *store.EventStore, assigner *colors.Assigner, session ActiveScopeSource, metrics FilterMetrics) *CalendarHandler {
	return &CalendarHandler{
		controller: controller,
		engine:     engine,
		events:     events,
		assigner:   assigner,
		session:    session,
		metrics:    metrics,
	}
}

// ColoredEvent pairs an event with its owner's palette triple.
type ColoredEvent struct {
	models.Event
	Color colors.Triple `json:"color"`
}

// CalendarView is the full view payload.
type CalendarView struct {
	Mode    view.Mode      `json:"mode"`
	Range   rangePayload   `json:"range"`
	Days    []time.Time    `json:"days"`
	Scope   string         `json:"scope"`
	Events  []ColoredEvent `json:"events"`
	Loading bool           `json:"loading"`
	Error   string         `json:"error,omitempty"`
}

type rangePayload struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// View godoc
// @Summary Get the assembled calendar view
// @Tags Calendar
// @Produce json
// @Param scope query string false "Scope override, kind:id (schedule, team or user)"
// @Success 200 {object} response.Envelope
// @Router /calendar [get]
func (h *CalendarHandler) View(c *gin.Context) {
	scope, err := resolveScope(c, h.session)
	if err != nil {
		response.Error(c, err)
		return
	}

	mode := h.controller.Mode()
	r := view.RangeFor(mode)

	started := time.Now()
	filtered := h.engine.Filter(h.events.Events(scope))
	if h.metrics != nil {
		h.metrics.ObserveFilter(time.Since(started))
	}

	colored := make([]ColoredEvent, 0, len(filtered))
	for _, ev := range filtered {
		colored = append(colored, ColoredEvent{Event: ev, Color: h.colorFor(ev)})
	}

	days := r.Days()
	if mode.Type == view.TypeMonth {
		days = daterange.Grid(mode.Anchor)
	}

	response.JSON(c, http.StatusOK, CalendarView{
		Mode:    mode,
		Range:   rangePayload{Start: r.Start, End: r.End},
		Days:    days,
		Scope:   scope.String(),
		Events:  colored,
		Loading: h.events.Loading(scope),
		Error:   h.events.Err(scope),
	})
}

// SetViewMode godoc
// @Summary Switch the calendar display mode
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body view.Mode true "Mode payload"
// @Success 200 {object} response.Envelope
// @Router /calendar/view [put]
func (h *CalendarHandler) SetViewMode(c *gin.Context) {
	var mode view.Mode
	if err := c.ShouldBindJSON(&mode); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.controller.SetMode(mode); err != nil {
		response.Error(c, err)
		return
	}
	r := h.controller.Range()
	response.JSON(c, http.StatusOK, gin.H{
		"mode":  h.controller.Mode(),
		"range": rangePayload{Start: r.Start, End: r.End},
	})
}

// GetFilter godoc
// @Summary Get the current filter criteria
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar/filter [get]
func (h *CalendarHandler) GetFilter(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.engine.Criteria())
}

// SetFilter godoc
// @Summary Replace the filter criteria
// @Tags Calendar
// @Accept json
// @Produce json
// @Param payload body filter.Criteria true "Criteria payload"
// @Success 200 {object} response.Envelope
// @Router /calendar/filter [put]
func (h *CalendarHandler) SetFilter(c *gin.Context) {
	var criteria filter.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.engine.SetCriteria(criteria); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.engine.Criteria())
}

// ClearFilter godoc
// @Summary Reset the filter to its empty state
// @Tags Calendar
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /calendar/filter [delete]
func (h *CalendarHandler) ClearFilter(c *gin.Context) {
	if err := h.engine.SetCriteria(filter.Criteria{}); err != nil {
		response.Error(c, err)
		return
	}
	r := h.controller.Range()
	h.engine.SetDateRange(r.Start, r.End)
	response.JSON(c, http.StatusOK, h.engine.Criteria())
}

func (h *CalendarHandler) colorFor(ev models.Event) colors.Triple {
	if ev.OwnerID != 0 {
		return h.assigner.ColorFor(ev.OwnerID)
	}
	if ev.Owner != nil {
		if ev.Owner.ID != 0 {
			return h.assigner.ColorFor(ev.Owner.ID)
		}
		return h.assigner.ColorForLabel(ev.Owner.FullName)
	}
	return h.assigner.ColorFor(0)
}

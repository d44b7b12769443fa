package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schedview/internal/models"
	"schedview/internal/service"
	appErrors "schedview/pkg/errors"
	"schedview/pkg/response"
)

// ScopeHandler manages schedule records and the active-scope selection.
type ScopeHandler struct {
	session *service.SessionService
}

// NewScopeHandler constructs handler.
func NewScopeHandler(session *service.SessionService) *ScopeHandler {
	return &ScopeHandler{session: session}
}

// List godoc
// @Summary List the caller's schedules
// @Tags Scopes
// @Produce json
// @Param status query string false "Restrict to active schedules with status=active"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScopeHandler) List(c *gin.Context) {
	schedules := h.session.Schedules()
	if c.Query("status") == models.ScheduleStatusActive {
		schedules = h.session.ActiveSchedules()
	}
	meta := map[string]interface{}{"active_id": h.session.ActiveScopeID()}
	if msg := h.session.Err(); msg != "" {
		meta["error"] = msg
	}
	response.JSON(c, http.StatusOK, schedules, meta)
}

// Reload godoc
// @Summary Refetch the schedule list and restore the active selection
// @Tags Scopes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/reload [post]
func (h *ScopeHandler) Reload(c *gin.Context) {
	if err := h.session.LoadSchedules(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, h.session.Schedules(), map[string]interface{}{
		"active_id": h.session.ActiveScopeID(),
	})
}

// Active godoc
// @Summary Get the active schedule
// @Tags Scopes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/active [get]
func (h *ScopeHandler) Active(c *gin.Context) {
	active, ok := h.session.ActiveScope()
	if !ok {
		response.Error(c, appErrors.ErrNoActiveScope)
		return
	}
	response.JSON(c, http.StatusOK, active)
}

type setActiveRequest struct {
	ScheduleID int64 `json:"schedule_id"`
}

// SetActive godoc
// @Summary Select the active schedule (0 clears the selection)
// @Tags Scopes
// @Accept json
// @Produce json
// @Param payload body setActiveRequest true "Selection payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/active [put]
func (h *ScopeHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.session.SetActiveScope(c.Request.Context(), req.ScheduleID); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"active_id": h.session.ActiveScopeID()})
}

// Create godoc
// @Summary Create a schedule and make it active
// @Tags Scopes
// @Accept json
// @Produce json
// @Param payload body models.ScheduleDraft true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules [post]
func (h *ScopeHandler) Create(c *gin.Context) {
	var draft models.ScheduleDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.session.CreateSchedule(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Apply a partial update to a schedule
// @Tags Scopes
// @Accept json
// @Produce json
// @Param id path int true "Schedule ID"
// @Param payload body models.SchedulePatch true "Patch payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [put]
func (h *ScopeHandler) Update(c *gin.Context) {
	id, err := scheduleID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.SchedulePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.session.UpdateSchedule(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete a schedule
// @Tags Scopes
// @Produce json
// @Param id path int true "Schedule ID"
// @Success 204 {object} nil
// @Router /schedules/{id} [delete]
func (h *ScopeHandler) Delete(c *gin.Context) {
	id, err := scheduleID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.session.DeleteSchedule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func scheduleID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid schedule id")
	}
	return id, nil
}

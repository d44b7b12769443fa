package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schedview/internal/models"
	"schedview/internal/store"
	appErrors "schedview/pkg/errors"
	"schedview/pkg/response"
)

// EventHandler manages event endpoints against the tracked collections.
type EventHandler struct {
	store   *store.EventStore
	session ActiveScopeSource
}

// NewEventHandler constructs handler.
func NewEventHandler(events *store.EventStore, session ActiveScopeSource) *EventHandler {
	return &EventHandler{store: events, session: session}
}

// List godoc
// @Summary List the events of a scope
// @Tags Events
// @Produce json
// @Param scope query string false "Scope override, kind:id"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	scope, err := resolveScope(c, h.session)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{
		"scope":   scope.String(),
		"loading": h.store.Loading(scope),
	}
	if msg := h.store.Err(scope); msg != "" {
		meta["error"] = msg
	}
	response.JSON(c, http.StatusOK, h.store.Events(scope), meta)
}

// Reload godoc
// @Summary Reload a scope's events from the remote service
// @Tags Events
// @Produce json
// @Param scope query string false "Scope override, kind:id"
// @Success 200 {object} response.Envelope
// @Router /events/reload [post]
func (h *EventHandler) Reload(c *gin.Context) {
	scope, err := resolveScope(c, h.session)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.store.Load(c.Request.Context(), scope)
	meta := map[string]interface{}{"scope": scope.String()}
	if msg := h.store.Err(scope); msg != "" {
		meta["error"] = msg
	}
	response.JSON(c, http.StatusOK, h.store.Events(scope), meta)
}

// Create godoc
// @Summary Create an event in the active schedule
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body models.EventDraft true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	scope, err := resolveScope(c, h.session)
	if err != nil {
		response.Error(c, err)
		return
	}
	var draft models.EventDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	created, err := h.store.Create(c.Request.Context(), scope, draft)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Apply a partial update to an event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path int true "Event ID"
// @Param payload body models.EventPatch true "Patch payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var patch models.EventPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	updated, err := h.store.Update(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete an event
// @Tags Events
// @Produce json
// @Param id path int true "Event ID"
// @Success 204 {object} nil
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, err := eventID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.store.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func eventID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid event id")
	}
	return id, nil
}

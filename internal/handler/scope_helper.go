package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedview/internal/models"
	appErrors "schedview/pkg/errors"
)

// resolveScope picks the scope for a request: an explicit ?scope=kind:id
// query overrides the session's active schedule.
func resolveScope(c *gin.Context, session ActiveScopeSource) (models.Scope, error) {
	if raw := c.Query("scope"); raw != "" {
		scope, err := models.ParseScope(raw)
		if err != nil {
			return models.Scope{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scope")
		}
		return scope, nil
	}
	id := session.ActiveScopeID()
	if id == 0 {
		return models.Scope{}, appErrors.ErrNoActiveScope
	}
	return models.ScheduleScope(id), nil
}

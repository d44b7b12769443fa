package handler

import (
	"github.com/gin-gonic/gin"

	"schedview/internal/models"
	"schedview/internal/service"
	appErrors "schedview/pkg/errors"
	"schedview/pkg/response"
)

// ExportHandler serves downloadable renditions of the active schedule.
type ExportHandler struct {
	exports *service.ExportService
	session *service.SessionService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService, session *service.SessionService) *ExportHandler {
	return &ExportHandler{exports: exports, session: session}
}

// Download godoc
// @Summary Download the active schedule in the requested format
// @Tags Exports
// @Produce octet-stream
// @Param format path string true "Export format" Enums(ics, csv, pdf)
// @Success 200 {file} binary
// @Router /exports/{format} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	active, ok := h.session.ActiveScope()
	if !ok {
		response.Error(c, appErrors.ErrNoActiveScope)
		return
	}
	scope := models.ScheduleScope(active.ID)
	ctx := c.Request.Context()

	var (
		filename string
		err      error
	)
	switch c.Param("format") {
	case "ics":
		filename, err = h.exports.ExportICS(ctx, scope, active.Name)
	case "csv":
		filename, err = h.exports.ExportCSV(ctx, scope, active.Name)
	case "pdf":
		filename, err = h.exports.ExportPDF(ctx, scope, active.Name)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be ics, csv or pdf"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(h.exports.Path(filename), filename)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schedview/internal/colors"
	"schedview/internal/directory"
	"schedview/internal/models"
	"schedview/pkg/response"
)

// OwnerHandler serves the team directory roster and its lookup facets.
type OwnerHandler struct {
	directory *directory.Service
	assigner  *colors.Assigner
}

// NewOwnerHandler constructs handler.
func NewOwnerHandler(dir *directory.Service, assigner *colors.Assigner) *OwnerHandler {
	return &OwnerHandler{directory: dir, assigner: assigner}
}

// ColoredOwner pairs a roster entry with its assigned palette triple.
type ColoredOwner struct {
	models.OwnerSummary
	Color colors.Triple `json:"color"`
}

// List godoc
// @Summary List or search the owner roster
// @Tags Owners
// @Produce json
// @Param q query string false "Free-text search over name, student id, class, grade"
// @Param class query string false "Exact class filter"
// @Param grade query string false "Exact grade filter"
// @Param role query string false "Exact role filter"
// @Success 200 {object} response.Envelope
// @Router /owners [get]
func (h *OwnerHandler) List(c *gin.Context) {
	var owners []models.OwnerSummary
	if q := c.Query("q"); q != "" {
		owners = h.directory.Search(q)
	} else {
		owners = h.directory.FilterBy(c.Query("class"), c.Query("grade"), c.Query("role"))
	}

	colored := make([]ColoredOwner, 0, len(owners))
	for _, o := range owners {
		colored = append(colored, ColoredOwner{OwnerSummary: o, Color: h.assigner.ColorFor(o.ID)})
	}

	meta := map[string]interface{}{"count": len(colored)}
	if msg := h.directory.Err(); msg != "" {
		meta["error"] = msg
	}
	if last := h.directory.LastRefresh(); !last.IsZero() {
		meta["last_refresh"] = last
	}
	response.JSON(c, http.StatusOK, colored, meta)
}

// Classes godoc
// @Summary List the distinct class labels
// @Tags Owners
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /owners/classes [get]
func (h *OwnerHandler) Classes(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.directory.Classes())
}

// Grades godoc
// @Summary List the distinct grade labels
// @Tags Owners
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /owners/grades [get]
func (h *OwnerHandler) Grades(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.directory.Grades())
}

// Refresh godoc
// @Summary Force a roster refresh
// @Tags Owners
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /owners/refresh [post]
func (h *OwnerHandler) Refresh(c *gin.Context) {
	if err := h.directory.Refresh(c.Request.Context(), true); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"owners":       len(h.directory.Owners()),
		"last_refresh": h.directory.LastRefresh(),
	})
}

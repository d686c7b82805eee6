package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kadgis/fieldstore/internal/errors"
)

// DashboardHandler serves the home screen tallies.
type DashboardHandler struct {
	source ServiceSource
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(source ServiceSource) *DashboardHandler {
	return &DashboardHandler{source: source}
}

// DashboardRequest optionally overrides the configured land-use list.
type DashboardRequest struct {
	LandUses string `form:"land_uses" binding:"max=2000"`
}

// Summary handles GET /api/v1/dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	var req DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	summary, err := set.Dashboard.Summary(c.Request.Context(), splitList(req.LandUses))
	if err != nil {
		serviceError(c, err, "compute dashboard summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// splitList parses a comma separated query value, dropping blank entries.
// Order and duplicates are preserved.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kadgis/fieldstore/internal/errors"
	"github.com/kadgis/fieldstore/internal/middleware"
	"github.com/kadgis/fieldstore/internal/models"
)

// PropertyHandler handles property record HTTP requests.
type PropertyHandler struct {
	source ServiceSource
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(source ServiceSource) *PropertyHandler {
	return &PropertyHandler{
		source: source,
	}
}

// SearchRequest represents the optional keyword filter on list endpoints.
type SearchRequest struct {
	Query string `form:"q" binding:"max=200"`
}

// PropertyResponse wraps a single property record.
type PropertyResponse struct {
	Property *models.PropertyRecord `json:"property"`
}

// PropertyListResponse wraps a list of property records.
type PropertyListResponse struct {
	Properties []models.PropertyRecord `json:"properties"`
	Count      int                     `json:"count"`
}

// Register mounts the property routes on group.
func (h *PropertyHandler) Register(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.DELETE("", h.DeleteAll)
	group.GET("/count", h.Count)
	group.GET("/:id", h.Get)
	group.GET("/:id/exists", h.Exists)
	group.PATCH("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var draft models.PropertyDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Properties.Create(c.Request.Context(), draft)
	if err != nil {
		serviceError(c, err, "save property record")
		return
	}

	c.JSON(http.StatusCreated, PropertyResponse{Property: record})
}

// List handles GET /api/v1/properties. A q parameter switches to keyword
// search over name and plot number.
func (h *PropertyHandler) List(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	var (
		records []models.PropertyRecord
		err     error
	)
	if _, searching := c.GetQuery("q"); searching {
		if log := middleware.GetLogger(c); log != nil {
			log.Debug("Searching property records", map[string]interface{}{"q": req.Query})
		}
		records, err = set.Properties.Search(c.Request.Context(), req.Query)
	} else {
		records, err = set.Properties.List(c.Request.Context())
	}
	if err != nil {
		serviceError(c, err, "load property records")
		return
	}

	if records == nil {
		records = []models.PropertyRecord{}
	}
	c.JSON(http.StatusOK, PropertyListResponse{Properties: records, Count: len(records)})
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Properties.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err, "load property record")
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{Property: record})
}

// Exists handles GET /api/v1/properties/:id/exists.
func (h *PropertyHandler) Exists(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	exists, err := set.Properties.Exists(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err, "check property record")
		return
	}

	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

// Count handles GET /api/v1/properties/count.
func (h *PropertyHandler) Count(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	n, err := set.Properties.Count(c.Request.Context())
	if err != nil {
		serviceError(c, err, "count property records")
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Update handles PATCH /api/v1/properties/:id. Absent fields are left as stored.
func (h *PropertyHandler) Update(c *gin.Context) {
	var patch models.PropertyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Properties.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		serviceError(c, err, "update property record")
		return
	}

	c.JSON(http.StatusOK, PropertyResponse{Property: record})
}

// Delete handles DELETE /api/v1/properties/:id. Deleting an unknown id
// succeeds.
func (h *PropertyHandler) Delete(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	if err := set.Properties.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err, "delete property record")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/v1/properties?confirm=true.
func (h *PropertyHandler) DeleteAll(c *gin.Context) {
	var req WipeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	removed, err := set.Properties.DeleteAll(c.Request.Context(), req.Confirm)
	if err != nil {
		serviceError(c, err, "delete property records")
		return
	}

	c.JSON(http.StatusOK, DeleteAllResponse{Removed: removed})
}

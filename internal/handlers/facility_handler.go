package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kadgis/fieldstore/internal/errors"
	"github.com/kadgis/fieldstore/internal/models"
)

// FacilityHandler handles facility record HTTP requests.
type FacilityHandler struct {
	source ServiceSource
}

// NewFacilityHandler creates a new FacilityHandler instance.
func NewFacilityHandler(source ServiceSource) *FacilityHandler {
	return &FacilityHandler{
		source: source,
	}
}

// FacilityListRequest combines keyword search with the listing filters.
// Filters are ignored when q is present.
type FacilityListRequest struct {
	models.FacilityFilter
	Query string `form:"q" binding:"max=200"`
}

// PublishRequest is the body of PUT /:id/published.
type PublishRequest struct {
	Published *bool `json:"published" binding:"required"`
}

// FacilityResponse wraps a single facility record.
type FacilityResponse struct {
	Facility *models.FacilityRecord `json:"facility"`
}

// FacilityListResponse wraps a list of facility records.
type FacilityListResponse struct {
	Facilities []models.FacilityRecord `json:"facilities"`
	Count      int                     `json:"count"`
}

// Register mounts the facility routes on group.
func (h *FacilityHandler) Register(group *gin.RouterGroup) {
	group.POST("", h.Create)
	group.GET("", h.List)
	group.DELETE("", h.DeleteAll)
	group.GET("/count", h.Count)
	group.GET("/:id", h.Get)
	group.GET("/:id/exists", h.Exists)
	group.PATCH("/:id", h.Update)
	group.PUT("/:id/published", h.SetPublished)
	group.DELETE("/:id", h.Delete)
}

// Create handles POST /api/v1/facilities.
func (h *FacilityHandler) Create(c *gin.Context) {
	var draft models.FacilityDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Facilities.Create(c.Request.Context(), draft)
	if err != nil {
		serviceError(c, err, "save facility record")
		return
	}

	c.JSON(http.StatusCreated, FacilityResponse{Facility: record})
}

// List handles GET /api/v1/facilities with optional category, published,
// lga and state filters, or keyword search via q.
func (h *FacilityHandler) List(c *gin.Context) {
	var req FacilityListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	var (
		records []models.FacilityRecord
		err     error
	)
	if _, searching := c.GetQuery("q"); searching {
		records, err = set.Facilities.Search(c.Request.Context(), req.Query)
	} else {
		records, err = set.Facilities.List(c.Request.Context(), req.FacilityFilter)
	}
	if err != nil {
		serviceError(c, err, "load facility records")
		return
	}

	if records == nil {
		records = []models.FacilityRecord{}
	}
	c.JSON(http.StatusOK, FacilityListResponse{Facilities: records, Count: len(records)})
}

// Get handles GET /api/v1/facilities/:id.
func (h *FacilityHandler) Get(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Facilities.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err, "load facility record")
		return
	}

	c.JSON(http.StatusOK, FacilityResponse{Facility: record})
}

// Exists handles GET /api/v1/facilities/:id/exists.
func (h *FacilityHandler) Exists(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	exists, err := set.Facilities.Exists(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err, "check facility record")
		return
	}

	c.JSON(http.StatusOK, ExistsResponse{Exists: exists})
}

// Count handles GET /api/v1/facilities/count.
func (h *FacilityHandler) Count(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	n, err := set.Facilities.Count(c.Request.Context())
	if err != nil {
		serviceError(c, err, "count facility records")
		return
	}

	c.JSON(http.StatusOK, CountResponse{Count: n})
}

// Update handles PATCH /api/v1/facilities/:id.
func (h *FacilityHandler) Update(c *gin.Context) {
	var patch models.FacilityPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Facilities.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		serviceError(c, err, "update facility record")
		return
	}

	c.JSON(http.StatusOK, FacilityResponse{Facility: record})
}

// SetPublished handles PUT /api/v1/facilities/:id/published.
func (h *FacilityHandler) SetPublished(c *gin.Context) {
	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	record, err := set.Facilities.SetPublished(c.Request.Context(), c.Param("id"), *req.Published)
	if err != nil {
		serviceError(c, err, "update publish state")
		return
	}

	c.JSON(http.StatusOK, FacilityResponse{Facility: record})
}

// Delete handles DELETE /api/v1/facilities/:id.
func (h *FacilityHandler) Delete(c *gin.Context) {
	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	if err := set.Facilities.Delete(c.Request.Context(), c.Param("id")); err != nil {
		serviceError(c, err, "delete facility record")
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteAll handles DELETE /api/v1/facilities?confirm=true.
func (h *FacilityHandler) DeleteAll(c *gin.Context) {
	var req WipeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		apierrors.BindError(c, err)
		return
	}

	set, ok := resolve(c, h.source)
	if !ok {
		return
	}

	removed, err := set.Facilities.DeleteAll(c.Request.Context(), req.Confirm)
	if err != nil {
		serviceError(c, err, "delete facility records")
		return
	}

	c.JSON(http.StatusOK, DeleteAllResponse{Removed: removed})
}

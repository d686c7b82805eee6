// Package handlers implements the loopback HTTP API the UI shell talks to.
package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/kadgis/fieldstore/internal/errors"
	"github.com/kadgis/fieldstore/internal/services"
)

// ServiceSource yields the services once the record store is set up.
// *services.Resolver implements it.
type ServiceSource interface {
	Services(ctx context.Context) (*services.Set, error)
}

// resolve fetches the service set, writing a 503 when the store is not ready.
func resolve(c *gin.Context, source ServiceSource) (*services.Set, bool) {
	set, err := source.Services(c.Request.Context())
	if err != nil {
		apierrors.StoreUnavailable(c, err)
		return nil, false
	}
	return set, true
}

// serviceError maps service-level errors onto HTTP responses. action names
// the failed operation in the generic 500 message.
func serviceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrRecordNotFound):
		apierrors.NotFound(c, "Record not found")
	case errors.Is(err, services.ErrInvalidCoordinates),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrEmptyCategories):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrConfirmationRequired):
		apierrors.ConfirmationRequired(c, "Pass confirm=true to delete every record")
	default:
		apierrors.InternalServerError(c, "Failed to "+action, err)
	}
}

// CountResponse is returned by the count endpoints.
type CountResponse struct {
	Count int64 `json:"count"`
}

// ExistsResponse is returned by the exists endpoints.
type ExistsResponse struct {
	Exists bool `json:"exists"`
}

// DeleteAllResponse is returned by the wipe endpoints.
type DeleteAllResponse struct {
	Removed int64 `json:"removed"`
}

// WipeRequest carries the explicit confirmation a wipe requires.
type WipeRequest struct {
	Confirm bool `form:"confirm"`
}

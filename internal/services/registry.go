package services

import (
	"context"
	"sync"

	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/metrics"
)

// Set bundles the services built over one controller.
type Set struct {
	Properties PropertyService
	Facilities FacilityService
	Dashboard  DashboardService
}

// NewSet builds every service over ctrl's repositories. m may be nil.
func NewSet(ctrl *controller.Controller, m *metrics.StoreMetrics, landUses []string, log *logger.Logger) *Set {
	properties := NewPropertyService(ctrl.Properties, m, log)
	facilities := NewFacilityService(ctrl.Facilities, m, log)
	return &Set{
		Properties: properties,
		Facilities: facilities,
		Dashboard:  NewDashboardService(properties, facilities, landUses, log),
	}
}

// ControllerSource hands out the shared controller; *controller.Provider
// implements it.
type ControllerSource interface {
	Get(ctx context.Context) (*controller.Controller, error)
}

// Resolver builds the service Set the first time the controller becomes
// available and returns the same Set afterwards. Until then every call
// retries controller setup and returns its error.
type Resolver struct {
	source   ControllerSource
	metrics  *metrics.StoreMetrics
	landUses []string
	log      *logger.Logger

	mu  sync.Mutex
	set *Set
}

// NewResolver creates a Resolver over source.
func NewResolver(source ControllerSource, m *metrics.StoreMetrics, landUses []string, log *logger.Logger) *Resolver {
	return &Resolver{
		source:   source,
		metrics:  m,
		landUses: landUses,
		log:      log,
	}
}

// Services returns the shared Set, or the controller setup error.
func (r *Resolver) Services(ctx context.Context) (*Set, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.set != nil {
		return r.set, nil
	}

	ctrl, err := r.source.Get(ctx)
	if err != nil {
		return nil, err
	}

	r.set = NewSet(ctrl, r.metrics, r.landUses, r.log)
	return r.set, nil
}

package services

import (
	"context"

	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/models"
)

// DashboardService assembles the home screen tallies.
type DashboardService interface {
	// Summary counts properties per land use (the configured list when
	// landUses is empty), facilities per category and by publish state.
	// Categories with no rows are reported with a zero count.
	Summary(ctx context.Context, landUses []string) (*models.DashboardSummary, error)
}

type dashboardService struct {
	properties      PropertyService
	facilities      FacilityService
	defaultLandUses []string
	log             *logger.Logger
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(properties PropertyService, facilities FacilityService, defaultLandUses []string, log *logger.Logger) DashboardService {
	return &dashboardService{
		properties:      properties,
		facilities:      facilities,
		defaultLandUses: defaultLandUses,
		log:             log.WithComponent("dashboard_service"),
	}
}

func (s *dashboardService) Summary(ctx context.Context, landUses []string) (*models.DashboardSummary, error) {
	if len(landUses) == 0 {
		landUses = s.defaultLandUses
	}

	var (
		summary models.DashboardSummary
		err     error
	)

	if summary.TotalProperties, err = s.properties.Count(ctx); err != nil {
		return nil, err
	}
	if summary.PropertiesByLandUse, err = s.properties.CountByLandUse(ctx, landUses); err != nil {
		return nil, err
	}
	if summary.TotalFacilities, err = s.facilities.Count(ctx); err != nil {
		return nil, err
	}
	if summary.FacilitiesByCategory, err = s.facilities.CountByCategory(ctx); err != nil {
		return nil, err
	}
	if summary.PublishedFacilities, summary.UnpublishedFacilities, err = s.facilities.CountPublished(ctx); err != nil {
		return nil, err
	}

	s.log.Debug("Dashboard summary computed", map[string]interface{}{
		"properties": summary.TotalProperties,
		"facilities": summary.TotalFacilities,
		"land_uses":  len(landUses),
	})

	return &summary, nil
}

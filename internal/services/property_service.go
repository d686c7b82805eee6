package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/metrics"
	"github.com/kadgis/fieldstore/internal/models"
	"github.com/kadgis/fieldstore/internal/repository"
)

const propertyTable = repository.PropertyTable

// PropertyService defines business operations on property records.
type PropertyService interface {
	// Create stores the draft and returns the stored record.
	// Returns ErrInvalidCoordinates for out-of-range coordinates.
	Create(ctx context.Context, draft models.PropertyDraft) (*models.PropertyRecord, error)

	// Get returns ErrRecordNotFound when no record has the id.
	Get(ctx context.Context, id string) (*models.PropertyRecord, error)

	List(ctx context.Context) ([]models.PropertyRecord, error)
	Search(ctx context.Context, keyword string) ([]models.PropertyRecord, error)

	// Update applies the patch and returns the updated record.
	// Returns ErrRecordNotFound when no record has the id.
	Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.PropertyRecord, error)

	Delete(ctx context.Context, id string) error

	// DeleteAll wipes every property record. Returns ErrConfirmationRequired
	// unless confirmed is true.
	DeleteAll(ctx context.Context, confirmed bool) (int64, error)

	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// CountByLandUse returns one tally per land use in request order.
	// Returns ErrEmptyCategories when landUses is empty.
	CountByLandUse(ctx context.Context, landUses []string) ([]models.CategoryCount, error)
}

type propertyService struct {
	repo    repository.PropertyRepository
	metrics *metrics.StoreMetrics
	log     *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
// m may be nil.
func NewPropertyService(repo repository.PropertyRepository, m *metrics.StoreMetrics, log *logger.Logger) PropertyService {
	return &propertyService{
		repo:    repo,
		metrics: m,
		log:     log.WithComponent("property_service"),
	}
}

func (s *propertyService) Create(ctx context.Context, draft models.PropertyDraft) (*models.PropertyRecord, error) {
	if err := validateCoordinates(draft.Latitude, draft.Longitude); err != nil {
		s.log.Warn("Invalid coordinates on property draft", coordinateFields(draft.Latitude, draft.Longitude))
		return nil, err
	}

	start := time.Now()
	id, err := s.repo.Add(ctx, draft)
	s.metrics.Observe(metrics.OpAdd, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to add property record", err, map[string]interface{}{
			"plot_number": draft.PlotNumber,
		})
		return nil, fmt.Errorf("failed to add property record: %w", err)
	}

	s.log.Info("Property record added", map[string]interface{}{
		"id":          id,
		"plot_number": draft.PlotNumber,
		"land_use":    draft.LandUse,
		"pictures":    len(draft.Pictures),
	})

	return s.Get(ctx, id)
}

func (s *propertyService) Get(ctx context.Context, id string) (*models.PropertyRecord, error) {
	start := time.Now()
	record, err := s.repo.GetByID(ctx, id)
	s.metrics.Observe(metrics.OpGet, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to get property record", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to get property record: %w", err)
	}

	// Repository returns nil, nil when no record matches - transform to domain error
	if record == nil {
		s.log.Debug("Property record not found", map[string]interface{}{"id": id})
		return nil, ErrRecordNotFound
	}

	return record, nil
}

func (s *propertyService) List(ctx context.Context) ([]models.PropertyRecord, error) {
	start := time.Now()
	records, err := s.repo.List(ctx)
	s.metrics.Observe(metrics.OpList, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to list property records", err, nil)
		return nil, fmt.Errorf("failed to list property records: %w", err)
	}

	s.log.Debug("Listed property records", map[string]interface{}{"count": len(records)})
	return records, nil
}

func (s *propertyService) Search(ctx context.Context, keyword string) ([]models.PropertyRecord, error) {
	start := time.Now()
	records, err := s.repo.Search(ctx, keyword)
	s.metrics.Observe(metrics.OpSearch, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to search property records", err, map[string]interface{}{"keyword": keyword})
		return nil, fmt.Errorf("failed to search property records: %w", err)
	}

	s.log.Debug("Searched property records", map[string]interface{}{
		"keyword": keyword,
		"count":   len(records),
	})
	return records, nil
}

func (s *propertyService) Update(ctx context.Context, id string, patch models.PropertyPatch) (*models.PropertyRecord, error) {
	if err := validateCoordinates(patch.Latitude, patch.Longitude); err != nil {
		s.log.Warn("Invalid coordinates on property patch", coordinateFields(patch.Latitude, patch.Longitude))
		return nil, err
	}

	start := time.Now()
	err := s.repo.Update(ctx, id, patch)
	s.metrics.Observe(metrics.OpUpdate, propertyTable, start, err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Update of unknown property record", map[string]interface{}{"id": id})
			return nil, ErrRecordNotFound
		}
		s.log.Error("Failed to update property record", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to update property record: %w", err)
	}

	s.log.Info("Property record updated", map[string]interface{}{
		"id":      id,
		"columns": len(patch.Assignments()),
	})

	return s.Get(ctx, id)
}

func (s *propertyService) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.DeleteByID(ctx, id)
	s.metrics.Observe(metrics.OpDelete, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to delete property record", err, map[string]interface{}{"id": id})
		return fmt.Errorf("failed to delete property record: %w", err)
	}

	s.log.Info("Property record deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *propertyService) DeleteAll(ctx context.Context, confirmed bool) (int64, error) {
	if !confirmed {
		s.log.Warn("Unconfirmed wipe of property records refused", nil)
		return 0, ErrConfirmationRequired
	}

	start := time.Now()
	removed, err := s.repo.DeleteAll(ctx)
	s.metrics.Observe(metrics.OpDeleteAll, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to wipe property records", err, nil)
		return 0, fmt.Errorf("failed to wipe property records: %w", err)
	}

	s.metrics.SetRecordCount(propertyTable, 0)
	s.log.Warn("Property records wiped", map[string]interface{}{"removed": removed})
	return removed, nil
}

func (s *propertyService) Exists(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	ok, err := s.repo.Exists(ctx, id)
	s.metrics.Observe(metrics.OpExists, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to check property record", err, map[string]interface{}{"id": id})
		return false, fmt.Errorf("failed to check property record: %w", err)
	}
	return ok, nil
}

func (s *propertyService) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.repo.Count(ctx)
	s.metrics.Observe(metrics.OpCount, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to count property records", err, nil)
		return 0, fmt.Errorf("failed to count property records: %w", err)
	}

	s.metrics.SetRecordCount(propertyTable, n)
	return n, nil
}

func (s *propertyService) CountByLandUse(ctx context.Context, landUses []string) ([]models.CategoryCount, error) {
	if len(landUses) == 0 {
		return nil, ErrEmptyCategories
	}

	start := time.Now()
	counts, err := s.repo.CountByCategory(ctx, landUses)
	s.metrics.Observe(metrics.OpCountByCategory, propertyTable, start, err)
	if err != nil {
		s.log.Error("Failed to count property records by land use", err, map[string]interface{}{
			"land_uses": landUses,
		})
		return nil, fmt.Errorf("failed to count property records by land use: %w", err)
	}

	return counts, nil
}

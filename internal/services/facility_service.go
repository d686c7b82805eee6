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

const facilityTable = repository.FacilityTable

// FacilityService defines business operations on facility records.
type FacilityService interface {
	// Create stores the draft and returns the stored record.
	// Returns ErrInvalidCoordinates or ErrInvalidCategory on bad input.
	Create(ctx context.Context, draft models.FacilityDraft) (*models.FacilityRecord, error)

	// Get returns ErrRecordNotFound when no record has the id.
	Get(ctx context.Context, id string) (*models.FacilityRecord, error)

	// List returns the records matching filter; a zero filter lists all.
	List(ctx context.Context, filter models.FacilityFilter) ([]models.FacilityRecord, error)
	Search(ctx context.Context, keyword string) ([]models.FacilityRecord, error)

	// Update applies the patch and returns the updated record. The published
	// flag is only changed through SetPublished.
	Update(ctx context.Context, id string, patch models.FacilityPatch) (*models.FacilityRecord, error)

	// SetPublished flips the sync-state flag and returns the updated record.
	SetPublished(ctx context.Context, id string, published bool) (*models.FacilityRecord, error)

	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, confirmed bool) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	Count(ctx context.Context) (int64, error)

	// CountByCategory tallies records for every known category, zeros included.
	CountByCategory(ctx context.Context) ([]models.CategoryCount, error)

	CountPublished(ctx context.Context) (published, unpublished int64, err error)
}

type facilityService struct {
	repo    repository.FacilityRepository
	metrics *metrics.StoreMetrics
	log     *logger.Logger
}

// NewFacilityService creates a new instance of FacilityService.
func NewFacilityService(repo repository.FacilityRepository, m *metrics.StoreMetrics, log *logger.Logger) FacilityService {
	return &facilityService{
		repo:    repo,
		metrics: m,
		log:     log.WithComponent("facility_service"),
	}
}

func validateFacilityEnums(category *models.FacilityCategory, power *models.PowerSupply, water *models.WaterSupply) error {
	if category != nil && !category.Valid() {
		return fmt.Errorf("%w: %q is not one of %v", ErrInvalidCategory, *category, models.FacilityCategories)
	}
	if power != nil && !power.Valid() {
		return fmt.Errorf("%w: unknown power supply %q", ErrInvalidCategory, *power)
	}
	if water != nil && !water.Valid() {
		return fmt.Errorf("%w: unknown water supply %q", ErrInvalidCategory, *water)
	}
	return nil
}

func (s *facilityService) Create(ctx context.Context, draft models.FacilityDraft) (*models.FacilityRecord, error) {
	if err := validateCoordinates(draft.Latitude, draft.Longitude); err != nil {
		s.log.Warn("Invalid coordinates on facility draft", coordinateFields(draft.Latitude, draft.Longitude))
		return nil, err
	}
	if err := validateFacilityEnums(&draft.Category, &draft.PowerSupply, &draft.WaterSupply); err != nil {
		s.log.Warn("Invalid enumeration on facility draft", map[string]interface{}{
			"category":     draft.Category,
			"power_supply": draft.PowerSupply,
			"water_supply": draft.WaterSupply,
		})
		return nil, err
	}

	start := time.Now()
	id, err := s.repo.Add(ctx, draft)
	s.metrics.Observe(metrics.OpAdd, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to add facility record", err, map[string]interface{}{"name": draft.Name})
		return nil, fmt.Errorf("failed to add facility record: %w", err)
	}

	s.log.Info("Facility record added", map[string]interface{}{
		"id":        id,
		"category":  draft.Category,
		"personnel": len(draft.Personnel),
		"madrasas":  len(draft.Madrasas),
	})

	return s.Get(ctx, id)
}

func (s *facilityService) Get(ctx context.Context, id string) (*models.FacilityRecord, error) {
	start := time.Now()
	record, err := s.repo.GetByID(ctx, id)
	s.metrics.Observe(metrics.OpGet, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to get facility record", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to get facility record: %w", err)
	}
	if record == nil {
		s.log.Debug("Facility record not found", map[string]interface{}{"id": id})
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (s *facilityService) List(ctx context.Context, filter models.FacilityFilter) ([]models.FacilityRecord, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		s.log.Warn("Invalid category filter", map[string]interface{}{"category": filter.Category})
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, filter.Category)
	}

	start := time.Now()
	records, err := s.repo.ListFiltered(ctx, filter)
	s.metrics.Observe(metrics.OpList, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to list facility records", err, nil)
		return nil, fmt.Errorf("failed to list facility records: %w", err)
	}

	s.log.Debug("Listed facility records", map[string]interface{}{
		"count":    len(records),
		"category": filter.Category,
		"lga":      filter.LGA,
		"state":    filter.State,
	})
	return records, nil
}

func (s *facilityService) Search(ctx context.Context, keyword string) ([]models.FacilityRecord, error) {
	start := time.Now()
	records, err := s.repo.Search(ctx, keyword)
	s.metrics.Observe(metrics.OpSearch, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to search facility records", err, map[string]interface{}{"keyword": keyword})
		return nil, fmt.Errorf("failed to search facility records: %w", err)
	}
	return records, nil
}

func (s *facilityService) Update(ctx context.Context, id string, patch models.FacilityPatch) (*models.FacilityRecord, error) {
	if err := validateCoordinates(patch.Latitude, patch.Longitude); err != nil {
		s.log.Warn("Invalid coordinates on facility patch", coordinateFields(patch.Latitude, patch.Longitude))
		return nil, err
	}
	if err := validateFacilityEnums(patch.Category, patch.PowerSupply, patch.WaterSupply); err != nil {
		s.log.Warn("Invalid enumeration on facility patch", map[string]interface{}{"id": id})
		return nil, err
	}

	start := time.Now()
	err := s.repo.Update(ctx, id, patch)
	s.metrics.Observe(metrics.OpUpdate, facilityTable, start, err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Update of unknown facility record", map[string]interface{}{"id": id})
			return nil, ErrRecordNotFound
		}
		s.log.Error("Failed to update facility record", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to update facility record: %w", err)
	}

	s.log.Info("Facility record updated", map[string]interface{}{
		"id":      id,
		"columns": len(patch.Assignments()),
	})
	return s.Get(ctx, id)
}

func (s *facilityService) SetPublished(ctx context.Context, id string, published bool) (*models.FacilityRecord, error) {
	start := time.Now()
	err := s.repo.SetPublished(ctx, id, published)
	s.metrics.Observe(metrics.OpPublish, facilityTable, start, err)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Publish of unknown facility record", map[string]interface{}{"id": id})
			return nil, ErrRecordNotFound
		}
		s.log.Error("Failed to set published flag", err, map[string]interface{}{"id": id})
		return nil, fmt.Errorf("failed to set published flag: %w", err)
	}

	s.log.Info("Facility publish state changed", map[string]interface{}{
		"id":        id,
		"published": published,
	})
	return s.Get(ctx, id)
}

func (s *facilityService) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.repo.DeleteByID(ctx, id)
	s.metrics.Observe(metrics.OpDelete, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to delete facility record", err, map[string]interface{}{"id": id})
		return fmt.Errorf("failed to delete facility record: %w", err)
	}

	s.log.Info("Facility record deleted", map[string]interface{}{"id": id})
	return nil
}

func (s *facilityService) DeleteAll(ctx context.Context, confirmed bool) (int64, error) {
	if !confirmed {
		s.log.Warn("Unconfirmed wipe of facility records refused", nil)
		return 0, ErrConfirmationRequired
	}

	start := time.Now()
	removed, err := s.repo.DeleteAll(ctx)
	s.metrics.Observe(metrics.OpDeleteAll, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to wipe facility records", err, nil)
		return 0, fmt.Errorf("failed to wipe facility records: %w", err)
	}

	s.metrics.SetRecordCount(facilityTable, 0)
	s.log.Warn("Facility records wiped", map[string]interface{}{"removed": removed})
	return removed, nil
}

func (s *facilityService) Exists(ctx context.Context, id string) (bool, error) {
	start := time.Now()
	ok, err := s.repo.Exists(ctx, id)
	s.metrics.Observe(metrics.OpExists, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to check facility record", err, map[string]interface{}{"id": id})
		return false, fmt.Errorf("failed to check facility record: %w", err)
	}
	return ok, nil
}

func (s *facilityService) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.repo.Count(ctx)
	s.metrics.Observe(metrics.OpCount, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to count facility records", err, nil)
		return 0, fmt.Errorf("failed to count facility records: %w", err)
	}

	s.metrics.SetRecordCount(facilityTable, n)
	return n, nil
}

func (s *facilityService) CountByCategory(ctx context.Context) ([]models.CategoryCount, error) {
	categories := make([]string, len(models.FacilityCategories))
	for i, c := range models.FacilityCategories {
		categories[i] = string(c)
	}

	start := time.Now()
	counts, err := s.repo.CountByCategory(ctx, categories)
	s.metrics.Observe(metrics.OpCountByCategory, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to count facility records by category", err, nil)
		return nil, fmt.Errorf("failed to count facility records by category: %w", err)
	}
	return counts, nil
}

func (s *facilityService) CountPublished(ctx context.Context) (int64, int64, error) {
	start := time.Now()
	published, unpublished, err := s.repo.CountPublished(ctx)
	s.metrics.Observe(metrics.OpCount, facilityTable, start, err)
	if err != nil {
		s.log.Error("Failed to count published facilities", err, nil)
		return 0, 0, fmt.Errorf("failed to count published facilities: %w", err)
	}
	return published, unpublished, nil
}

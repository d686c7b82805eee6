package services

import (
	"context"

	"github.com/kadgis/fieldstore/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Add(ctx context.Context, draft models.PropertyDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*models.PropertyRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PropertyRecord), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context) ([]models.PropertyRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyRecord), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, id string, patch models.PropertyPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockPropertyRepository) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPropertyRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) Search(ctx context.Context, keyword string) ([]models.PropertyRecord, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyRecord), args.Error(1)
}

func (m *MockPropertyRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPropertyRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPropertyRepository) CountByCategory(ctx context.Context, landUses []string) ([]models.CategoryCount, error) {
	args := m.Called(ctx, landUses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

// MockFacilityRepository is a mock implementation of FacilityRepository for testing
type MockFacilityRepository struct {
	mock.Mock
}

func (m *MockFacilityRepository) Add(ctx context.Context, draft models.FacilityDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

func (m *MockFacilityRepository) GetByID(ctx context.Context, id string) (*models.FacilityRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FacilityRecord), args.Error(1)
}

func (m *MockFacilityRepository) List(ctx context.Context) ([]models.FacilityRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacilityRecord), args.Error(1)
}

func (m *MockFacilityRepository) ListFiltered(ctx context.Context, filter models.FacilityFilter) ([]models.FacilityRecord, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacilityRecord), args.Error(1)
}

func (m *MockFacilityRepository) Update(ctx context.Context, id string, patch models.FacilityPatch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *MockFacilityRepository) SetPublished(ctx context.Context, id string, published bool) error {
	return m.Called(ctx, id, published).Error(0)
}

func (m *MockFacilityRepository) DeleteByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockFacilityRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFacilityRepository) Search(ctx context.Context, keyword string) ([]models.FacilityRecord, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FacilityRecord), args.Error(1)
}

func (m *MockFacilityRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFacilityRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFacilityRepository) CountByCategory(ctx context.Context, categories []string) ([]models.CategoryCount, error) {
	args := m.Called(ctx, categories)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryCount), args.Error(1)
}

func (m *MockFacilityRepository) CountPublished(ctx context.Context) (int64, int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

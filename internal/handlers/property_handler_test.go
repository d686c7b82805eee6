package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func propertyBody(name, plot, landUse string) map[string]interface{} {
	return map[string]interface{}{
		"name":              name,
		"plotNumber":        plot,
		"landUse":           landUse,
		"numberOfBuildings": 2,
		"latitude":          10.51,
		"longitude":         7.41,
		"pictures":          []string{"front.jpg"},
		"uploadedBy":        "enumerator-7",
	}
}

func createProperty(t *testing.T, s *testStore, name, plot, landUse string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/properties", propertyBody(name, plot, landUse))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[PropertyResponse](t, w).Property.ID
}

func TestPropertyHandler_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)

	w := s.do(t, http.MethodPost, "/api/v1/properties", propertyBody("Aisha Bello", "KD/1", "Residential"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[PropertyResponse](t, w).Property
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Aisha Bello", created.Name)
	assert.Equal(t, 2, created.NumberOfBuildings)
	assert.Equal(t, []string{"front.jpg"}, []string(created.Pictures))
	assert.NotEmpty(t, created.CreatedAt)

	w = s.do(t, http.MethodGet, "/api/v1/properties/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created, decode[PropertyResponse](t, w).Property)
}

func TestPropertyHandler_CreateRejectsBadInput(t *testing.T) {
	s := setupTestStore(t)

	tests := []struct {
		name         string
		body         interface{}
		expectedCode string
	}{
		{"malformed json", `{"name": `, "BAD_REQUEST"},
		{"wrong type", `{"numberOfBuildings": "three"}`, "BAD_REQUEST"},
		{"latitude out of range", map[string]interface{}{"latitude": 95.0}, "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/properties", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.expectedCode, errorCode(t, w))
		})
	}

	w := s.do(t, http.MethodGet, "/api/v1/properties/count", nil)
	assert.Equal(t, int64(0), decode[CountResponse](t, w).Count)
}

func TestPropertyHandler_GetUnknown(t *testing.T) {
	s := setupTestStore(t)

	w := s.do(t, http.MethodGet, "/api/v1/properties/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/properties/does-not-exist/exists", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[ExistsResponse](t, w).Exists)
}

func TestPropertyHandler_ListAndSearch(t *testing.T) {
	s := setupTestStore(t)

	first := createProperty(t, s, "Musa Ibrahim", "KD/100", "Residential")
	second := createProperty(t, s, "Halima Musa", "ZR/7", "Commercial")
	createProperty(t, s, "Grace Okon", "KD/55_A", "Residential")

	w := s.do(t, http.MethodGet, "/api/v1/properties", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[PropertyListResponse](t, w)
	assert.Equal(t, 3, list.Count)
	assert.Equal(t, first, list.Properties[0].ID)

	tests := []struct {
		query    string
		expected int
	}{
		{"musa", 2},
		{"MUSA", 2},
		{"zr/", 1},
		{"55_a", 1},
		{"5_", 1},
		{"%", 0},
		{"", 3},
	}
	for _, tt := range tests {
		t.Run("q="+tt.query, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/properties?q="+url.QueryEscape(tt.query), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expected, decode[PropertyListResponse](t, w).Count)
		})
	}

	w = s.do(t, http.MethodGet, "/api/v1/properties?q=Halima", nil)
	assert.Equal(t, second, decode[PropertyListResponse](t, w).Properties[0].ID)
}

func TestPropertyHandler_ListEmptyIsArray(t *testing.T) {
	s := setupTestStore(t)

	w := s.do(t, http.MethodGet, "/api/v1/properties", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"properties":[],"count":0}`, w.Body.String())
}

func TestPropertyHandler_Update(t *testing.T) {
	s := setupTestStore(t)
	id := createProperty(t, s, "Aisha Bello", "KD/1", "Residential")

	w := s.do(t, http.MethodPatch, "/api/v1/properties/"+id, map[string]interface{}{
		"landUse":           "Commercial",
		"numberOfOccupants": 9,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated := decode[PropertyResponse](t, w).Property
	assert.Equal(t, "Commercial", updated.LandUse)
	assert.Equal(t, 9, updated.NumberOfOccupants)
	assert.Equal(t, "Aisha Bello", updated.Name)
	assert.Equal(t, []string{"front.jpg"}, []string(updated.Pictures))

	w = s.do(t, http.MethodPatch, "/api/v1/properties/missing", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPatch, "/api/v1/properties/"+id, map[string]interface{}{"longitude": -200})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPropertyHandler_DeleteAndWipe(t *testing.T) {
	s := setupTestStore(t)
	id := createProperty(t, s, "A", "KD/1", "Residential")
	createProperty(t, s, "B", "KD/2", "Residential")
	createProperty(t, s, "C", "KD/3", "Commercial")

	w := s.do(t, http.MethodDelete, "/api/v1/properties/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Deleting again is not an error
	w = s.do(t, http.MethodDelete, "/api/v1/properties/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/properties", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/properties/count", nil)
	assert.Equal(t, int64(2), decode[CountResponse](t, w).Count)

	w = s.do(t, http.MethodDelete, "/api/v1/properties?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[DeleteAllResponse](t, w).Removed)

	w = s.do(t, http.MethodGet, "/api/v1/properties/count", nil)
	assert.Equal(t, int64(0), decode[CountResponse](t, w).Count)
}

func TestPropertyHandler_StoreUnavailable(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.db.Close())

	log := logger.Nop()
	resolver := services.NewResolver(controller.NewProvider(s.db, log), nil, nil, log)
	s.router = setupAPIRouter(resolver, log)

	w := s.do(t, http.MethodGet, "/api/v1/properties", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, w))
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/kadgis/fieldstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facilityBody(name, category, lga string) map[string]interface{} {
	return map[string]interface{}{
		"name":          name,
		"streetAddress": "12 Sokoto Road",
		"lga":           lga,
		"state":         "Kaduna",
		"category":      category,
		"powerSupply":   "Solar",
		"ablutionArea":  true,
		"personnel": []map[string]interface{}{
			{"fullName": "Sheikh Umar", "role": "Imam"},
		},
		"madrasas": []map[string]interface{}{
			{"name": "Nurul Huda", "type": "Islamiya", "totalStudents": 80},
		},
	}
}

func createFacility(t *testing.T, s *testStore, name, category, lga string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/facilities", facilityBody(name, category, lga))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[FacilityResponse](t, w).Facility.ID
}

func TestFacilityHandler_CreateAndGet(t *testing.T) {
	s := setupTestStore(t)

	id := createFacility(t, s, "Sultan Bello Mosque", "Jummaah", "Kaduna North")

	w := s.do(t, http.MethodGet, "/api/v1/facilities/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec := decode[FacilityResponse](t, w).Facility
	assert.Equal(t, models.CategoryJummaah, rec.Category)
	assert.Equal(t, models.PowerSolar, rec.PowerSupply)
	assert.True(t, rec.AblutionArea)
	assert.False(t, rec.Published)
	require.Len(t, rec.Personnel, 1)
	assert.NotEmpty(t, rec.Personnel[0].ID)
	require.Len(t, rec.Madrasas, 1)
	assert.Equal(t, 80, rec.Madrasas[0].TotalStudents)
	assert.Equal(t, []string{}, []string(rec.Pictures))
}

func TestFacilityHandler_CreateRejectsUnknownCategory(t *testing.T) {
	s := setupTestStore(t)

	w := s.do(t, http.MethodPost, "/api/v1/facilities", facilityBody("X", "Cathedral", "Zaria"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "BAD_REQUEST", errorCode(t, w))
}

func TestFacilityHandler_ListFilters(t *testing.T) {
	s := setupTestStore(t)

	jummaah := createFacility(t, s, "Central Mosque", "Jummaah", "Zaria")
	createFacility(t, s, "Unguwan Rimi Masjid", "Neighborhood", "Kaduna North")
	createFacility(t, s, "Tudun Wada Masjid", "Neighborhood", "Zaria")

	w := s.do(t, http.MethodPut, "/api/v1/facilities/"+jummaah+"/published", map[string]interface{}{"published": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	tests := []struct {
		name     string
		query    string
		expected int
	}{
		{"no filter", "", 3},
		{"category", "?category=Neighborhood", 2},
		{"lga", "?lga=Zaria", 2},
		{"category and lga", "?category=Neighborhood&lga=Zaria", 1},
		{"published", "?published=true", 1},
		{"unpublished", "?published=false", 2},
		{"search", "?q=masjid", 2},
		{"search by street", "?q=sokoto", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/facilities"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tt.expected, decode[FacilityListResponse](t, w).Count)
		})
	}

	w = s.do(t, http.MethodGet, "/api/v1/facilities?category=Temple", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/facilities?published=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFacilityHandler_SetPublished(t *testing.T) {
	s := setupTestStore(t)
	id := createFacility(t, s, "Central Mosque", "Jummaah", "Zaria")

	w := s.do(t, http.MethodPut, "/api/v1/facilities/"+id+"/published", map[string]interface{}{"published": true})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[FacilityResponse](t, w).Facility.Published)

	w = s.do(t, http.MethodPut, "/api/v1/facilities/"+id+"/published", map[string]interface{}{"published": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[FacilityResponse](t, w).Facility.Published)

	// published is required
	w = s.do(t, http.MethodPut, "/api/v1/facilities/"+id+"/published", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))

	w = s.do(t, http.MethodPut, "/api/v1/facilities/missing/published", map[string]interface{}{"published": true})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFacilityHandler_UpdateIgnoresPublished(t *testing.T) {
	s := setupTestStore(t)
	id := createFacility(t, s, "Central Mosque", "Jummaah", "Zaria")

	w := s.do(t, http.MethodPatch, "/api/v1/facilities/"+id, map[string]interface{}{
		"capacity":         900,
		"toiletFacilities": true,
		"published":        true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	rec := decode[FacilityResponse](t, w).Facility
	require.NotNil(t, rec.Capacity)
	assert.Equal(t, 900, *rec.Capacity)
	assert.True(t, rec.ToiletFacilities)
	assert.False(t, rec.Published)
}

func TestFacilityHandler_CountExistsDelete(t *testing.T) {
	s := setupTestStore(t)
	id := createFacility(t, s, "Central Mosque", "Jummaah", "Zaria")
	createFacility(t, s, "Other Mosque", "Other", "Zaria")

	w := s.do(t, http.MethodGet, "/api/v1/facilities/"+id+"/exists", nil)
	assert.True(t, decode[ExistsResponse](t, w).Exists)

	w = s.do(t, http.MethodGet, "/api/v1/facilities/count", nil)
	assert.Equal(t, int64(2), decode[CountResponse](t, w).Count)

	w = s.do(t, http.MethodDelete, "/api/v1/facilities/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/facilities/"+id+"/exists", nil)
	assert.False(t, decode[ExistsResponse](t, w).Exists)

	w = s.do(t, http.MethodDelete, "/api/v1/facilities?confirm=false", nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = s.do(t, http.MethodDelete, "/api/v1/facilities?confirm=true", nil)
	assert.Equal(t, int64(1), decode[DeleteAllResponse](t, w).Removed)
}

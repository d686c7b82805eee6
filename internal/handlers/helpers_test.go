package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/config"
	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/middleware"
	"github.com/kadgis/fieldstore/internal/services"
	"github.com/stretchr/testify/require"
)

// testStore is a real SQLite-backed stack behind the API routes.
type testStore struct {
	db       *database.Database
	provider *controller.Provider
	router   *gin.Engine
}

// setupTestStore opens a fresh database file and mounts every API route.
func setupTestStore(t *testing.T) *testStore {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), "api.db"),
		BusyTimeoutMS: 1000,
		JournalMode:   "WAL",
		MaxOpenConns:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logger.Nop()
	provider := controller.NewProvider(db, log)
	resolver := services.NewResolver(provider, nil, []string{"Residential", "Commercial"}, log)

	return &testStore{
		db:       db,
		provider: provider,
		router:   setupAPIRouter(resolver, log),
	}
}

func setupAPIRouter(source ServiceSource, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))

	v1 := router.Group("/api/v1")
	NewPropertyHandler(source).Register(v1.Group("/properties"))
	NewFacilityHandler(source).Register(v1.Group("/facilities"))
	v1.GET("/dashboard", NewDashboardHandler(source).Summary)

	return router
}

// do sends a request with an optional JSON body.
func (s *testStore) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out), w.Body.String())
	return out
}

// errorCode extracts error.code from an error envelope.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body.Error.Code
}

package controller

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kadgis/fieldstore/internal/config"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"),
	)
}

func openTestDatabase(t *testing.T, name string) *database.Database {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{
		Path:          filepath.Join(t.TempDir(), name),
		BusyTimeoutMS: 1000,
		JournalMode:   "WAL",
		MaxOpenConns:  1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_CreatesTables(t *testing.T) {
	ctx := context.Background()
	db := openTestDatabase(t, "store.db")

	c, err := New(ctx, db, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Same(t, db, c.Database())

	for _, schema := range Schemas {
		columns, err := database.TableColumns(ctx, db.DB, schema.Name)
		require.NoError(t, err)
		assert.Len(t, columns, len(schema.Columns), "table %s", schema.Name)
	}

	n, err := c.Properties.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = c.Facilities.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNew_ClosedDatabase(t *testing.T) {
	db := openTestDatabase(t, "closed.db")
	require.NoError(t, db.Close())

	c, err := New(context.Background(), db, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestNew_NilDatabase(t *testing.T) {
	c, err := New(context.Background(), nil, logger.Nop())
	assert.Error(t, err)
	assert.Nil(t, c)
}

func TestProvider_Get_ReturnsSameInstance(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(openTestDatabase(t, "store.db"), logger.Nop())

	assert.False(t, p.Ready())

	first, err := p.Get(ctx)
	require.NoError(t, err)
	second, err := p.Get(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.True(t, p.Ready())
	assert.Equal(t, 1, p.SetupRuns())
}

func TestProvider_Get_Concurrent(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(openTestDatabase(t, "store.db"), logger.Nop())

	const callers = 16
	results := make([]*Controller, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := p.Get(ctx)
			assert.NoError(t, err)
			results[i] = c
		}(i)
	}
	wg.Wait()

	for _, c := range results {
		assert.Same(t, results[0], c)
	}
	assert.Equal(t, 1, p.SetupRuns())
}

func TestProvider_Get_RetriesAfterFailure(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(openTestDatabase(t, "store.db"), logger.Nop())

	failures := 2
	p.setup = func(ctx context.Context, db *database.Database, log *logger.Logger) (*Controller, error) {
		if failures > 0 {
			failures--
			return nil, errors.New("storage unavailable")
		}
		return New(ctx, db, log)
	}

	for i := 0; i < 2; i++ {
		c, err := p.Get(ctx)
		assert.Error(t, err)
		assert.Nil(t, c)
		assert.False(t, p.Ready())
	}

	c, err := p.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, c)

	again, err := p.Get(ctx)
	require.NoError(t, err)
	assert.Same(t, c, again)
	assert.Equal(t, 3, p.SetupRuns())
}

func TestProvider_SharedConnection(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(openTestDatabase(t, "store.db"), logger.Nop())

	c, err := p.Get(ctx)
	require.NoError(t, err)

	id, err := c.Properties.Add(ctx, models.PropertyDraft{Name: "Shared", LandUse: "Residential"})
	require.NoError(t, err)

	again, err := p.Get(ctx)
	require.NoError(t, err)
	rec, err := again.Properties.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Shared", rec.Name)
}

func TestProvider_SchemaSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "restart.db")
	cfg := config.DatabaseConfig{Path: path, BusyTimeoutMS: 1000, JournalMode: "WAL", MaxOpenConns: 1}

	db, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	c, err := NewProvider(db, logger.Nop()).Get(ctx)
	require.NoError(t, err)
	_, err = c.Facilities.Add(ctx, models.FacilityDraft{Name: "Persisted", Category: models.CategoryOther})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// A new process start runs setup again against the existing file.
	db, err = database.Open(ctx, cfg)
	require.NoError(t, err)
	defer db.Close()

	c, err = NewProvider(db, logger.Nop()).Get(ctx)
	require.NoError(t, err)
	n, err := c.Facilities.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

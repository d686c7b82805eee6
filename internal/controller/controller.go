// Package controller binds the record repositories to the single open
// database and hands the result out once schema bootstrap has succeeded.
package controller

import (
	"context"
	"fmt"
	"sync"

	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/repository"
)

// Schemas lists every record table the controller bootstraps, in creation order.
var Schemas = []database.TableSchema{
	repository.PropertySchema,
	repository.FacilitySchema,
}

// Controller gives access to both record repositories over one connection.
type Controller struct {
	Properties repository.PropertyRepository
	Facilities repository.FacilityRepository

	db *database.Database
}

// New ensures the schema exists and returns a controller bound to db.
// On error no controller is returned.
func New(ctx context.Context, db *database.Database, log *logger.Logger) (*Controller, error) {
	if db == nil || db.DB == nil {
		return nil, fmt.Errorf("failed to set up store: database is not open")
	}

	log.Info("Ensuring record schema", map[string]interface{}{
		"path":   db.Path(),
		"tables": len(Schemas),
	})

	if err := database.EnsureSchema(ctx, db.DB, Schemas...); err != nil {
		log.Error("Schema setup failed", err, map[string]interface{}{
			"path": db.Path(),
		})
		return nil, fmt.Errorf("failed to set up store: %w", err)
	}

	log.Info("Record schema ready", map[string]interface{}{
		"path": db.Path(),
	})

	return &Controller{
		Properties: repository.NewPropertyRepository(db),
		Facilities: repository.NewFacilityRepository(db),
		db:         db,
	}, nil
}

// Database returns the connection the controller is bound to.
func (c *Controller) Database() *database.Database {
	return c.db
}

// setupFunc builds a controller; swapped in tests to inject failures.
type setupFunc func(ctx context.Context, db *database.Database, log *logger.Logger) (*Controller, error)

// Provider constructs the Controller at most once for the connection it was
// created with. Failed constructions are not cached: the next Get retries.
type Provider struct {
	db    *database.Database
	log   *logger.Logger
	setup setupFunc

	mu        sync.Mutex
	instance  *Controller
	setupRuns int
}

// NewProvider returns a provider bound to db. The connection cannot be
// replaced afterwards.
func NewProvider(db *database.Database, log *logger.Logger) *Provider {
	return &Provider{
		db:    db,
		log:   log.WithComponent("controller"),
		setup: New,
	}
}

// Get returns the shared controller, building it on the first successful call.
// Every later call returns the identical instance without re-running setup.
func (p *Provider) Get(ctx context.Context) (*Controller, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.instance != nil {
		return p.instance, nil
	}

	p.setupRuns++
	c, err := p.setup(ctx, p.db, p.log)
	if err != nil {
		return nil, err
	}

	p.instance = c
	return c, nil
}

// Ready reports whether a controller has been built.
func (p *Provider) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instance != nil
}

// SetupRuns reports how many times schema setup has been attempted.
func (p *Provider) SetupRuns() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setupRuns
}

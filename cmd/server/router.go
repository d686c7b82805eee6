package main

import (
	"github.com/gin-gonic/gin"
	"github.com/kadgis/fieldstore/internal/config"
	"github.com/kadgis/fieldstore/internal/controller"
	"github.com/kadgis/fieldstore/internal/database"
	"github.com/kadgis/fieldstore/internal/handlers"
	"github.com/kadgis/fieldstore/internal/logger"
	"github.com/kadgis/fieldstore/internal/metrics"
	"github.com/kadgis/fieldstore/internal/middleware"
	"github.com/kadgis/fieldstore/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type routerDeps struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *database.Database
	provider    *controller.Provider
	resolver    *services.Resolver
	registry    *prometheus.Registry
	httpMetrics *metrics.HTTPMetrics
}

func newRouter(d routerDeps) *gin.Engine {
	router := gin.New()

	// Middleware order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(d.log))
	router.Use(middleware.Recovery(d.log))
	router.Use(middleware.CORS(d.cfg.CORS.Origins))
	router.Use(middleware.Metrics(d.httpMetrics))

	healthHandler := handlers.NewHealthHandler(d.db, d.provider, d.cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/info", healthHandler.Info)
		v1.GET("/dashboard", handlers.NewDashboardHandler(d.resolver).Summary)

		handlers.NewPropertyHandler(d.resolver).Register(v1.Group("/properties"))
		handlers.NewFacilityHandler(d.resolver).Register(v1.Group("/facilities"))
	}

	return router
}

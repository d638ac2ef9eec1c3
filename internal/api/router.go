// Package api wires HTTP routes to handlers and middleware.
package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/campustrade/campustrade/internal/app"
	iauth "github.com/campustrade/campustrade/internal/auth"
	"github.com/campustrade/campustrade/internal/handlers"
	"github.com/campustrade/campustrade/internal/middleware"
	"github.com/campustrade/campustrade/internal/services"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	idLength := cfg.Directory.InstitutionalIDLength

	users, err := services.NewUserService(db, idLength)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	store, err := services.NewNotificationStore(db, idLength)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	tracker, err := services.NewReadTracker(db)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	feed, err := services.NewNotificationFeed(store, tracker, users)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	products, err := services.NewProductService(db)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	categories, err := services.NewCategoryService(db)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	reviews, err := services.NewReviewService(db)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}
	site, err := services.NewSiteService(db, store)
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.Metrics(),
		middleware.SecurityHeaders(),
		middleware.CORS(),
	)
	router.NoRoute(middleware.NotFoundHandler)

	health := handlers.NewHealthHandler(db)
	router.GET("/health", health.Health)

	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		router.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")

	registerAuthRoutes(api, jwt, handlers.NewAuthHandler(users, jwt))
	registerSiteRoutes(api, jwt, handlers.NewSiteHandler(site))
	registerNotificationRoutes(api, jwt, handlers.NewNotificationHandler(feed, store))
	registerCategoryRoutes(api, jwt, handlers.NewCategoryHandler(categories))
	registerProductRoutes(api, jwt, handlers.NewProductHandler(products, reviews))
	registerReviewRoutes(api, jwt, handlers.NewReviewHandler(reviews))
	registerUserRoutes(api, jwt, handlers.NewUserHandler(users))

	return router, nil
}

// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/offer-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/offer-tracker/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                   *gin.Engine
	healthController         *controller.HealthController
	personController         *controller.PersonController
	offerController          *controller.OfferController
	transactionController    *controller.TransactionController
	dashboardController      *controller.DashboardController
	recommendationController *controller.RecommendationController
	recommendationLimiter    *middleware.RateLimiter
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	personController *controller.PersonController,
	offerController *controller.OfferController,
	transactionController *controller.TransactionController,
	dashboardController *controller.DashboardController,
	recommendationController *controller.RecommendationController,
	recommendationLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		healthController:         healthController,
		personController:         personController,
		offerController:          offerController,
		transactionController:    transactionController,
		dashboardController:      dashboardController,
		recommendationController: recommendationController,
		recommendationLimiter:    recommendationLimiter,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		if r.personController != nil {
			people := v1.Group("/people")
			{
				people.GET("", r.personController.List)
				people.POST("", r.personController.Create)
				people.PATCH("/:id", r.personController.Update)
				people.DELETE("/:id", r.personController.Delete)
			}
		}

		if r.offerController != nil {
			offers := v1.Group("/offers")
			{
				offers.GET("", r.offerController.List)
				offers.POST("", r.offerController.Create)
				offers.GET("/:id", r.offerController.Get)
				offers.PATCH("/:id", r.offerController.Update)
				offers.DELETE("/:id", r.offerController.Delete)
				offers.POST("/:id/copy", r.offerController.Copy)
				offers.GET("/:id/progress", r.offerController.Progress)
			}
		}

		if r.transactionController != nil {
			transactions := v1.Group("/transactions")
			{
				transactions.GET("", r.transactionController.List)
				transactions.POST("", r.transactionController.Create)
				transactions.PATCH("/:id", r.transactionController.Update)
				transactions.DELETE("/:id", r.transactionController.Delete)
				transactions.GET("/:id/matching-offers", r.transactionController.MatchingOffers)
			}

			merchants := v1.Group("/merchants")
			{
				merchants.GET("", r.transactionController.Merchants)
				merchants.GET("/:name/categories", r.transactionController.MerchantCategories)
			}
		}

		if r.dashboardController != nil {
			v1.GET("/dashboard/offers", r.dashboardController.Get)
		}

		if r.recommendationController != nil {
			if r.recommendationLimiter != nil {
				v1.GET("/recommendations", r.recommendationLimiter.Handle(), r.recommendationController.Get)
			} else {
				v1.GET("/recommendations", r.recommendationController.Get)
			}
		}
	}
}

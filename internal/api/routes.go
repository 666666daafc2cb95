package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ridehail/internal/api/handlers"
)

type Router struct {
	destinationHandler *handlers.DestinationHandler
	rideHandler        *handlers.RideHandler
	locationHandler    *handlers.LocationHandler
}

func NewRouter(
	destinationHandler *handlers.DestinationHandler,
	rideHandler *handlers.RideHandler,
	locationHandler *handlers.LocationHandler,
) *Router {
	return &Router{
		destinationHandler: destinationHandler,
		rideHandler:        rideHandler,
		locationHandler:    locationHandler,
	}
}

// Setup registers all routes. auth gates everything except /health; pass
// middleware.SessionAuth in production and middleware.NoAuth for local runs.
func (r *Router) Setup(engine *gin.Engine, auth gin.HandlerFunc) {
	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Protected routes
	api := engine.Group("/")
	api.Use(auth)
	{
		destinations := api.Group("/destinations")
		{
			destinations.GET("/nearby", r.destinationHandler.Nearby)
			destinations.GET("/catalog", r.destinationHandler.Catalog)
		}

		api.POST("/ride/estimate", r.rideHandler.FareEstimate)

		location := api.Group("/location")
		{
			location.GET("/address", r.locationHandler.Address)
			location.GET("/map", r.locationHandler.Map)
		}
	}
}

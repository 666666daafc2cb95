package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"ridehail/internal/domain/entities"
	"ridehail/internal/services"
)

type RideHandler struct {
	rideService *services.RideService
}

func NewRideHandler(rideService *services.RideService) *RideHandler {
	return &RideHandler{
		rideService: rideService,
	}
}

type FareEstimateRequest struct {
	Source      LocationRequest `json:"source" binding:"required"`
	Destination LocationRequest `json:"destination" binding:"required"`
}

// LocationRequest uses pointers so that an explicit 0 passes "required" and
// reaches the unknown-location check instead of failing binding.
type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

func (r LocationRequest) toLocation() entities.Location {
	return entities.NewLocation(*r.Lat, *r.Lng)
}

// FareEstimate handles POST /ride/estimate
func (h *RideHandler) FareEstimate(c *gin.Context) {
	var req FareEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	estimate, err := h.rideService.CreateFareEstimate(requestContext(c), services.FareEstimateRequest{
		Source:      req.Source.toLocation(),
		Destination: req.Destination.toLocation(),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, estimate)
}
